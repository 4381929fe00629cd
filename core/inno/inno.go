// Package inno drives the installer compiler that wraps the frozen bundle
// into a single-file setup executable.
package inno

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/fsutil"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/ahiokk/dazzlepack/core/runner"
)

type Compiler struct {
	root    string
	cfg     *config.Config
	remover *fsutil.Remover

	locateFn func() (string, error)
	buildFn  func() error
	runFn    func(dir, name string, args ...string) error
}

// NewCompiler wires the packager to the given bundle build function, invoked
// when no bundle exists yet or a rebuild is forced.
func NewCompiler(root string, cfg *config.Config, buildFn func() error) *Compiler {
	return &Compiler{
		root:     root,
		cfg:      cfg,
		remover:  fsutil.NewRemover(),
		locateFn: Locate,
		buildFn:  buildFn,
		runFn:    runner.Run,
	}
}

// Package compiles the setup executable for the given version and returns
// the path of the produced artifact. The compiler is located before any
// build work starts so a missing tool fails fast.
func (c *Compiler) Package(version string, forceBuild bool) (string, error) {
	iscc, err := c.locateFn()
	if err != nil {
		return "", err
	}

	if err := c.ensureBundle(forceBuild); err != nil {
		return "", err
	}

	outputDir := filepath.Join(c.root, c.cfg.Installer.OutputDir)
	pattern := filepath.Join(outputDir, c.cfg.Installer.OutputBase+"-*.exe")
	if err := fsutil.RemoveMatches(pattern, c.remover); err != nil {
		return "", err
	}

	scriptPath, err := c.writeScript()
	if err != nil {
		return "", err
	}

	logger.Info("Compiling installer for %s %s", c.cfg.App.Name, version)
	if err := c.runFn(c.root, iscc, "/DAppVersion="+version, scriptPath); err != nil {
		return "", fmt.Errorf("installer compilation failed: %w", err)
	}

	artifact, err := fsutil.NewestMatch(pattern)
	if err != nil {
		return "", err
	}
	if artifact == "" {
		return "", fmt.Errorf("installer compiler finished but no artifact matching %s was produced", pattern)
	}
	return artifact, nil
}

func (c *Compiler) ensureBundle(force bool) error {
	bundleDir := c.cfg.BundleDir(c.root)
	if force {
		logger.Info("Rebuild forced, building bundle")
		return c.buildFn()
	}
	if !fsutil.Exists(bundleDir) {
		logger.Info("No bundle found in %s, building it first", bundleDir)
		return c.buildFn()
	}
	logger.Debug("Using existing bundle in %s", bundleDir)
	return nil
}

func (c *Compiler) writeScript() (string, error) {
	workDir := filepath.Join(c.root, c.cfg.Build.WorkDir)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create work directory %s: %w", workDir, err)
	}

	scriptPath := filepath.Join(workDir, "installer.iss")
	f, err := os.Create(scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to create installer script %s: %w", scriptPath, err)
	}
	defer f.Close()

	if err := RenderScript(c.root, c.cfg, f); err != nil {
		return "", err
	}
	logger.Debug("Rendered installer script to %s", scriptPath)
	return scriptPath, nil
}
