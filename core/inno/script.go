package inno

import (
	_ "embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/fsutil"
	"github.com/ahiokk/dazzlepack/core/logger"
)

//go:embed installer.iss.tmpl
var scriptTemplate string

type scriptData struct {
	AppID            string
	AppName          string
	Publisher        string
	InstallDir       string
	OutputDir        string
	OutputBase       string
	Compression      string
	SolidCompression bool
	Elevated         bool
	Language         string
	LanguageFile     string
	DesktopIcon      bool
	LaunchAtLogin    bool
	BundleDir        string
	ExeName          string
	IconPath         string
	SettingsTemplate string
	RunAfterInstall  bool
	DefaultVersion   string
}

// RenderScript writes the installer-compiler script for the manifest to w.
// Paths are rendered absolute so the script is valid regardless of the
// compiler's working directory.
func RenderScript(root string, cfg *config.Config, w io.Writer) error {
	tmpl, err := template.New("installer.iss").Parse(scriptTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse installer script template: %w", err)
	}

	data := scriptData{
		AppID:            cfg.Installer.AppID,
		AppName:          cfg.App.Name,
		Publisher:        cfg.Installer.Publisher,
		InstallDir:       cfg.Installer.InstallDir,
		OutputDir:        filepath.Join(root, cfg.Installer.OutputDir),
		OutputBase:       cfg.Installer.OutputBase,
		Compression:      cfg.Installer.Compression,
		SolidCompression: cfg.Installer.SolidCompression,
		Elevated:         cfg.Build.Elevated,
		Language:         cfg.Installer.Language,
		LanguageFile:     languageFile(cfg.Installer.Language),
		DesktopIcon:      cfg.Installer.DesktopIcon,
		LaunchAtLogin:    cfg.Installer.LaunchAtLogin,
		BundleDir:        cfg.BundleDir(root),
		ExeName:          cfg.App.Name + ".exe",
		RunAfterInstall:  cfg.Installer.RunAfterInstall,
		DefaultVersion:   DefaultAppVersion,
	}

	if cfg.App.Icon != "" {
		icon := filepath.Join(root, cfg.App.Icon)
		if fsutil.Exists(icon) {
			data.IconPath = icon
		} else {
			logger.Warn("icon %s not found, installer will use the default setup icon", icon)
		}
	}

	if cfg.Installer.SettingsTemplate != "" {
		tpl := filepath.Join(root, cfg.Installer.SettingsTemplate)
		if fsutil.Exists(tpl) {
			data.SettingsTemplate = tpl
		} else {
			logger.Warn("settings template %s not found, installer will not stage default settings", tpl)
		}
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render installer script: %w", err)
	}
	return nil
}

// languageFile maps an installer language name to its message file. English
// ships as the compiler default; everything else is a named .isl.
func languageFile(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" || lang == "english" {
		return "Default.isl"
	}
	return strings.ToUpper(lang[:1]) + lang[1:] + ".isl"
}
