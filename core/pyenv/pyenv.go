// Package pyenv provisions the isolated interpreter environment builds run in.
package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/fsutil"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/ahiokk/dazzlepack/core/runner"
)

// Env is an isolated virtual environment under the project root.
type Env struct {
	// Python is an explicit interpreter path; when empty the platform
	// launcher is used.
	Python string
	// PythonVersion selects an interpreter via the Windows launcher
	// (py -3.12) when no explicit path is given.
	PythonVersion string

	root string
	cfg  config.Env

	runFn func(dir, name string, args ...string) error
	goos  string
}

func New(root string, cfg config.Env) *Env {
	return &Env{
		root:  root,
		cfg:   cfg,
		runFn: runner.Run,
		goos:  runtime.GOOS,
	}
}

func (e *Env) dir() string {
	return filepath.Join(e.root, e.cfg.Dir)
}

func (e *Env) binDir() string {
	if e.goos == "windows" {
		return filepath.Join(e.dir(), "Scripts")
	}
	return filepath.Join(e.dir(), "bin")
}

func (e *Env) exeSuffix() string {
	if e.goos == "windows" {
		return ".exe"
	}
	return ""
}

// PythonPath is the environment's own interpreter.
func (e *Env) PythonPath() string {
	return filepath.Join(e.binDir(), "python"+e.exeSuffix())
}

// PyInstaller is the freeze tool installed into the environment.
func (e *Env) PyInstaller() string {
	return filepath.Join(e.binDir(), "pyinstaller"+e.exeSuffix())
}

func (e *Env) interpreter() (string, []string) {
	if e.Python != "" {
		return e.Python, nil
	}
	if e.goos == "windows" {
		if e.PythonVersion != "" {
			return "py", []string{"-" + e.PythonVersion}
		}
		return "py", nil
	}
	return "python3", nil
}

// Ensure creates the environment if it does not exist yet and installs the
// packages a build requires. A nonzero installer exit is fatal to the run.
func (e *Env) Ensure() error {
	if !fsutil.Exists(e.PythonPath()) {
		name, args := e.interpreter()
		logger.Info("Creating build environment in %s", e.cfg.Dir)
		args = append(args, "-m", "venv", e.dir())
		if err := e.runFn(e.root, name, args...); err != nil {
			return fmt.Errorf("failed to create build environment: %w", err)
		}
	} else {
		logger.Debug("Build environment already present in %s", e.cfg.Dir)
	}

	args := []string{"-m", "pip", "install", "--upgrade"}
	args = append(args, e.cfg.Requirements...)
	if e.cfg.RequirementsFile != "" {
		reqFile := filepath.Join(e.root, e.cfg.RequirementsFile)
		if _, err := os.Stat(reqFile); err == nil {
			args = append(args, "-r", reqFile)
		} else {
			logger.Debug("No %s found, installing base requirements only", e.cfg.RequirementsFile)
		}
	}

	logger.Info("Installing build dependencies")
	if err := e.runFn(e.root, e.PythonPath(), args...); err != nil {
		return fmt.Errorf("failed to install build dependencies: %w", err)
	}
	return nil
}
