package inno

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ahiokk/dazzlepack/core/logger"
)

// Locate finds the installer compiler (ISCC) on the command path or in its
// well-known installation directories.
func Locate() (string, error) {
	return locateIn(wellKnownDirs())
}

func locateIn(dirs []string) (string, error) {
	if path, err := exec.LookPath("ISCC"); err == nil {
		logger.Debug("Found installer compiler on PATH: %s", path)
		return path, nil
	}

	for _, dir := range dirs {
		candidate := filepath.Join(dir, "ISCC.exe")
		if _, err := os.Stat(candidate); err == nil {
			logger.Debug("Found installer compiler: %s", candidate)
			return candidate, nil
		}
	}

	return "", fmt.Errorf("installer compiler (ISCC) not found on PATH or in any known Inno Setup directory; install Inno Setup 6 or add ISCC to PATH")
}

func wellKnownDirs() []string {
	var dirs []string
	for _, env := range []string{"ProgramFiles(x86)", "ProgramFiles"} {
		if base := os.Getenv(env); base != "" {
			dirs = append(dirs,
				filepath.Join(base, "Inno Setup 6"),
				filepath.Join(base, "Inno Setup 5"),
			)
		}
	}
	if local := os.Getenv("LOCALAPPDATA"); local != "" {
		dirs = append(dirs, filepath.Join(local, "Programs", "Inno Setup 6"))
	}
	return dirs
}
