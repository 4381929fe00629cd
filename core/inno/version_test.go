package inno

import (
	"os"
	"path/filepath"
	"testing"
)

func writeVersionSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "version.py")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write version source: %v", err)
	}
	return path
}

func TestResolveAppVersion(t *testing.T) {
	tests := []struct {
		name     string
		override string
		source   string
		want     string
	}{
		{
			name:   "double quoted constant",
			source: "APP_NAME = \"Dazzle\"\nAPP_VERSION = \"2.4.1\"\n",
			want:   "2.4.1",
		},
		{
			name:   "single quoted constant",
			source: "APP_VERSION = '3.0.0'\n",
			want:   "3.0.0",
		},
		{
			name:   "extra whitespace",
			source: "APP_VERSION   =   \"1.2.3\"\n",
			want:   "1.2.3",
		},
		{
			name:     "override wins over source",
			override: "9.9.9",
			source:   "APP_VERSION = \"2.4.1\"\n",
			want:     "9.9.9",
		},
		{
			name:     "override is trimmed",
			override: "  5.0.0  ",
			source:   "APP_VERSION = \"2.4.1\"\n",
			want:     "5.0.0",
		},
		{
			name:   "no version field falls back to default",
			source: "APP_NAME = \"Dazzle\"\n",
			want:   DefaultAppVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := writeVersionSource(t, tt.source)
			got := ResolveAppVersion(tt.override, source)
			if got != tt.want {
				t.Errorf("ResolveAppVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveAppVersion_MissingSourceFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "version.py")
	if got := ResolveAppVersion("", missing); got != DefaultAppVersion {
		t.Errorf("expected default version %q, got %q", DefaultAppVersion, got)
	}
}

func TestResolveAppVersion_OverrideWithoutSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "version.py")
	if got := ResolveAppVersion("4.2.0", missing); got != "4.2.0" {
		t.Errorf("expected override to win, got %q", got)
	}
}
