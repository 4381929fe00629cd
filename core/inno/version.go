package inno

import (
	"os"
	"regexp"
	"strings"

	"github.com/ahiokk/dazzlepack/core/logger"
)

// DefaultAppVersion is used when no override is given and no version can be
// parsed from the version source file.
const DefaultAppVersion = "1.0.0"

var appVersionPattern = regexp.MustCompile(`APP_VERSION\s*=\s*["']([^"']+)["']`)

// ResolveAppVersion picks the version to stamp into the installer: an
// explicit override wins, then the APP_VERSION constant in the version
// source file, then DefaultAppVersion.
func ResolveAppVersion(override, sourcePath string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		logger.Debug("Could not read version source %s: %v", sourcePath, err)
		return DefaultAppVersion
	}

	if m := appVersionPattern.FindSubmatch(data); m != nil {
		return string(m[1])
	}
	logger.Debug("No APP_VERSION found in %s, using default", sourcePath)
	return DefaultAppVersion
}
