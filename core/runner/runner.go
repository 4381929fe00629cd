// Package runner executes external build tools as blocking child processes.
package runner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ahiokk/dazzlepack/core/logger"
)

// Run invokes a tool with stdio inherited from the pipeline and waits for it
// to finish. A nonzero exit becomes an error naming the tool and its status;
// a tool that could not be started at all is reported separately.
func Run(dir, name string, args ...string) error {
	logger.Debug("exec: %s %s (dir=%s)", name, strings.Join(args, " "), dir)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("%s exited with status %d", filepath.Base(name), exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return nil
}

// Capture invokes a tool and returns its combined output.
func Capture(dir, name string, args ...string) (string, error) {
	logger.Debug("exec (capture): %s %s (dir=%s)", name, strings.Join(args, " "), dir)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s exited with status %d", filepath.Base(name), exitErr.ExitCode())
		}
		return string(out), fmt.Errorf("failed to run %s: %w", name, err)
	}
	return string(out), nil
}
