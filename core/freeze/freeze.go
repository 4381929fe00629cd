// Package freeze orchestrates the freeze tool that turns the app into a
// standalone executable bundle.
package freeze

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/fsutil"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/ahiokk/dazzlepack/core/pyenv"
	"github.com/ahiokk/dazzlepack/core/runner"
)

type Builder struct {
	// SkipDeps skips environment provisioning for repeat builds.
	SkipDeps bool

	root    string
	cfg     *config.Config
	env     *pyenv.Env
	remover *fsutil.Remover

	runFn       func(dir, name string, args ...string) error
	provisionFn func() error
	goos        string
}

func NewBuilder(root string, cfg *config.Config) *Builder {
	env := pyenv.New(root, cfg.Env)
	b := &Builder{
		root:    root,
		cfg:     cfg,
		env:     env,
		remover: fsutil.NewRemover(),
		runFn:   runner.Run,
		goos:    runtime.GOOS,
	}
	b.provisionFn = env.Ensure
	return b
}

// Env exposes the build environment so callers can set interpreter overrides.
func (b *Builder) Env() *pyenv.Env {
	return b.env
}

// Build runs the full bundle pipeline: validate the manifest, provision the
// environment, clear stale output, invoke the freeze tool, and verify the
// bundle executable exists.
func (b *Builder) Build() error {
	if err := b.cfg.Validate(b.root); err != nil {
		return err
	}

	if b.SkipDeps {
		logger.Debug("Skipping environment provisioning")
	} else if err := b.provisionFn(); err != nil {
		return err
	}

	bundleDir := b.cfg.BundleDir(b.root)
	workDir := filepath.Join(b.root, b.cfg.Build.WorkDir)
	for _, stale := range []string{bundleDir, workDir} {
		if err := b.remover.Remove(stale); err != nil {
			return err
		}
	}

	args, warnings := b.freezeArgs()
	for _, warning := range warnings {
		logger.Warn("%s", warning)
	}

	logger.Info("Freezing %s into %s", b.cfg.App.Entrypoint, bundleDir)
	if err := b.runFn(b.root, b.env.PyInstaller(), args...); err != nil {
		return fmt.Errorf("freeze failed: %w", err)
	}

	exe := b.BundleExe()
	if _, err := os.Stat(exe); err != nil {
		return fmt.Errorf("freeze reported success but %s is missing", exe)
	}
	logger.Info("Bundle ready: %s", bundleDir)
	return nil
}

// BundleExe is the path of the frozen executable inside the bundle.
func (b *Builder) BundleExe() string {
	name := b.cfg.App.Name
	if b.goos == "windows" {
		name += ".exe"
	}
	return filepath.Join(b.cfg.BundleDir(b.root), name)
}

// dataSep is the freeze tool's --add-data separator: ";" on Windows, ":"
// elsewhere.
func (b *Builder) dataSep() string {
	if b.goos == "windows" {
		return ";"
	}
	return ":"
}

// freezeArgs constructs the freeze-tool argument list from the build
// manifest. Optional assets that are missing are dropped from the argument
// list and reported as warnings, one per asset.
func (b *Builder) freezeArgs() (args []string, warnings []string) {
	cfg := b.cfg
	sep := b.dataSep()

	args = []string{
		"--noconfirm",
		"--clean",
		"--name", cfg.App.Name,
	}
	if cfg.Build.Windowed {
		args = append(args, "--windowed")
	}
	if cfg.Build.Elevated {
		args = append(args, "--uac-admin")
	}

	if cfg.App.Icon != "" {
		icon := filepath.Join(b.root, cfg.App.Icon)
		if fsutil.Exists(icon) {
			args = append(args, "--icon", icon)
		} else {
			warnings = append(warnings, fmt.Sprintf("icon %s not found, building without an icon", icon))
		}
	}

	for _, df := range cfg.Build.DataFiles {
		src := filepath.Join(b.root, df.Src)
		args = append(args, "--add-data", src+sep+df.Dest)
	}

	if cfg.App.Logo != "" {
		logo := filepath.Join(b.root, cfg.App.Logo)
		if fsutil.Exists(logo) {
			args = append(args, "--add-data", logo+sep+".")
		} else {
			warnings = append(warnings, fmt.Sprintf("logo %s not found, building without the embedded logo", logo))
		}
	}

	for _, pkg := range cfg.Build.CollectAll {
		args = append(args, "--collect-all", pkg)
	}
	for _, pkg := range cfg.Build.CollectSubmodules {
		args = append(args, "--collect-submodules", pkg)
	}
	for _, mod := range cfg.Build.HiddenImports {
		args = append(args, "--hidden-import", mod)
	}
	for _, mod := range cfg.Build.Excludes {
		args = append(args, "--exclude-module", mod)
	}

	args = append(args,
		"--distpath", filepath.Join(b.root, cfg.Build.OutputDir),
		"--workpath", filepath.Join(b.root, cfg.Build.WorkDir),
		"--specpath", filepath.Join(b.root, cfg.Build.WorkDir),
	)
	args = append(args, filepath.Join(b.root, cfg.App.Entrypoint))
	return args, warnings
}
