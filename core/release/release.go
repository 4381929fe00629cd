// Package release publishes the update manifest the app's updater polls.
package release

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/logger"
)

// Manifest is the JSON document the running app downloads to discover
// updates. Field names are part of the updater's wire contract.
type Manifest struct {
	Version        string `json:"version"`
	URL            string `json:"url"`
	SHA256         string `json:"sha256"`
	Notes          string `json:"notes,omitempty"`
	ReleasePageURL string `json:"release_page_url,omitempty"`
}

// SHA256File hashes a file and returns the lowercase hex digest.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Publish hashes the installer artifact and writes the update manifest,
// returning the manifest path.
func Publish(root string, cfg *config.Config, version, installerPath, notes string) (string, error) {
	sum, err := SHA256File(installerPath)
	if err != nil {
		return "", err
	}

	manifest := Manifest{
		Version: version,
		URL:     DownloadURL(cfg.Release.BaseURL, version, filepath.Base(installerPath)),
		SHA256:  sum,
		Notes:   notes,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal update manifest: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(root, cfg.Release.ManifestPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write update manifest %s: %w", path, err)
	}

	logger.Info("Update manifest written to %s", path)
	return path, nil
}

// DownloadURL expands the "{version}" placeholder in the configured base URL
// and appends the artifact name.
func DownloadURL(baseURL, version, artifactName string) string {
	url := strings.ReplaceAll(baseURL, "{version}", version)
	if url != "" && !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url + artifactName
}
