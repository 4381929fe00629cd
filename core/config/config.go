package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahiokk/dazzlepack/core/logger"
	"gopkg.in/yaml.v3"
)

const FileName = "dazzlepack.yaml"

type Config struct {
	App       App       `yaml:"app"`
	Build     Build     `yaml:"build"`
	Env       Env       `yaml:"env"`
	Installer Installer `yaml:"installer"`
	Release   Release   `yaml:"release"`
}

// App identifies the application being packaged.
type App struct {
	Name       string `yaml:"name"`
	Entrypoint string `yaml:"entrypoint"`
	Icon       string `yaml:"icon"`
	// Logo is an optional vector asset embedded next to the executable.
	Logo string `yaml:"logo,omitempty"`
	// VersionSource is the source file holding the APP_VERSION constant.
	VersionSource string `yaml:"version_source"`
}

// DataFile is a file embedded into the frozen bundle.
type DataFile struct {
	Src  string `yaml:"src"`
	Dest string `yaml:"dest"`
}

// Build holds the options passed to the freeze tool.
type Build struct {
	OutputDir         string     `yaml:"output_dir"`
	WorkDir           string     `yaml:"work_dir"`
	Windowed          bool       `yaml:"windowed"`
	Elevated          bool       `yaml:"elevated"`
	DataFiles         []DataFile `yaml:"data_files,omitempty"`
	CollectAll        []string   `yaml:"collect_all,omitempty"`
	CollectSubmodules []string   `yaml:"collect_submodules,omitempty"`
	HiddenImports     []string   `yaml:"hidden_imports,omitempty"`
	Excludes          []string   `yaml:"excludes,omitempty"`
}

// Env describes the isolated interpreter environment used for builds.
type Env struct {
	Dir              string   `yaml:"dir"`
	Requirements     []string `yaml:"requirements,omitempty"`
	RequirementsFile string   `yaml:"requirements_file,omitempty"`
}

// Installer holds the fields rendered into the installer-compiler script.
type Installer struct {
	AppID            string `yaml:"app_id"`
	Publisher        string `yaml:"publisher"`
	InstallDir       string `yaml:"install_dir"`
	OutputDir        string `yaml:"output_dir"`
	OutputBase       string `yaml:"output_base"`
	Compression      string `yaml:"compression"`
	SolidCompression bool   `yaml:"solid_compression"`
	Language         string `yaml:"language"`
	DesktopIcon      bool   `yaml:"desktop_icon"`
	LaunchAtLogin    bool   `yaml:"launch_at_login"`
	// SettingsTemplate is staged into the user's settings location only if
	// absent, and never removed on uninstall.
	SettingsTemplate string `yaml:"settings_template,omitempty"`
	RunAfterInstall  bool   `yaml:"run_after_install"`
}

// Release configures the update manifest the app's updater polls.
type Release struct {
	// BaseURL is the download location; "{version}" is replaced with the
	// released version.
	BaseURL      string `yaml:"base_url"`
	ManifestPath string `yaml:"manifest_path"`
	Notes        string `yaml:"notes,omitempty"`
}

func Default() *Config {
	return &Config{
		App: App{
			Name:          "Dazzle",
			Entrypoint:    "main.py",
			Icon:          filepath.Join("assets", "dazzle.ico"),
			Logo:          filepath.Join("assets", "dazzle.svg"),
			VersionSource: filepath.Join("tirika_importer", "version.py"),
		},
		Build: Build{
			OutputDir: "dist",
			WorkDir:   "build",
			Windowed:  true,
			Elevated:  true,
			DataFiles: []DataFile{
				{Src: ".ENV", Dest: "."},
			},
			CollectAll:        []string{"tirika_importer"},
			CollectSubmodules: []string{"win32com"},
			HiddenImports:     []string{"win32com.client", "win32timezone"},
			Excludes:          []string{"tkinter", "unittest", "pydoc"},
		},
		Env: Env{
			Dir:              ".venv-build",
			Requirements:     []string{"pyinstaller"},
			RequirementsFile: "requirements.txt",
		},
		Installer: Installer{
			AppID:            "{{6B1FA6F2-32AE-4C5B-97E0-4DA2F0B45E11}",
			Publisher:        "ahiokk",
			InstallDir:       `{autopf}\Dazzle`,
			OutputDir:        "installer",
			OutputBase:       "Dazzle-Setup",
			Compression:      "lzma2",
			SolidCompression: true,
			Language:         "russian",
			DesktopIcon:      true,
			LaunchAtLogin:    true,
			SettingsTemplate: "settings.template.json",
			RunAfterInstall:  true,
		},
		Release: Release{
			BaseURL:      "https://github.com/ahiokk/Dazzle/releases/download/v{version}/",
			ManifestPath: filepath.Join("updates", "latest.json"),
		},
	}
}

// Load reads dazzlepack.yaml from the project root, falling back to the
// default manifest when no file exists.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err != nil {
		logger.Debug("No %s found in %s, using default manifest", FileName, root)
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Debug("Loaded manifest from %s", path)

	return cfg, nil
}

// Save writes the manifest to dazzlepack.yaml in the project root.
func Save(root string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate checks the preconditions a build depends on.
func (c *Config) Validate(root string) error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name must not be empty")
	}
	if c.App.Entrypoint == "" {
		return fmt.Errorf("app.entrypoint must not be empty")
	}
	entry := filepath.Join(root, c.App.Entrypoint)
	if _, err := os.Stat(entry); err != nil {
		return fmt.Errorf("entry point not found: %s", entry)
	}
	return nil
}

// BundleDir is the directory the freeze tool writes the standalone bundle to.
func (c *Config) BundleDir(root string) string {
	return filepath.Join(root, c.Build.OutputDir, c.App.Name)
}
