package inno

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahiokk/dazzlepack/core/config"
)

type compilerFixture struct {
	compiler   *Compiler
	root       string
	cfg        *config.Config
	buildCalls int
	runCalls   int
}

func newCompilerFixture(t *testing.T) *compilerFixture {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.App.Logo = ""
	cfg.Installer.SettingsTemplate = ""

	f := &compilerFixture{root: root, cfg: cfg}
	f.compiler = NewCompiler(root, cfg, func() error {
		f.buildCalls++
		return nil
	})
	f.compiler.locateFn = func() (string, error) { return "ISCC.exe", nil }
	f.compiler.runFn = func(dir, name string, args ...string) error {
		f.runCalls++
		// Simulate the compiler producing its output artifact.
		out := filepath.Join(root, cfg.Installer.OutputDir)
		if err := os.MkdirAll(out, 0755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(out, cfg.Installer.OutputBase+"-1.2.3.exe"), []byte("setup"), 0644)
	}
	return f
}

func (f *compilerFixture) makeBundle(t *testing.T) {
	t.Helper()
	if err := os.MkdirAll(f.cfg.BundleDir(f.root), 0755); err != nil {
		t.Fatalf("failed to create bundle dir: %v", err)
	}
}

func TestPackage_MissingCompilerFailsBeforeBuild(t *testing.T) {
	f := newCompilerFixture(t)
	f.compiler.locateFn = func() (string, error) {
		return "", errors.New("installer compiler (ISCC) not found")
	}

	_, err := f.compiler.Package("1.2.3", false)
	if err == nil {
		t.Fatal("expected error when compiler is missing")
	}
	if f.buildCalls != 0 {
		t.Errorf("bundle build should not run when the compiler is missing, ran %d times", f.buildCalls)
	}
	if f.runCalls != 0 {
		t.Errorf("compiler should not run when missing, ran %d times", f.runCalls)
	}
}

func TestPackage_BuildsBundleWhenMissing(t *testing.T) {
	f := newCompilerFixture(t)

	artifact, err := f.compiler.Package("1.2.3", false)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if f.buildCalls != 1 {
		t.Errorf("expected 1 bundle build, got %d", f.buildCalls)
	}
	if !strings.HasSuffix(artifact, "Dazzle-Setup-1.2.3.exe") {
		t.Errorf("unexpected artifact path: %s", artifact)
	}
}

func TestPackage_SkipsBuildWhenBundleExists(t *testing.T) {
	f := newCompilerFixture(t)
	f.makeBundle(t)

	if _, err := f.compiler.Package("1.2.3", false); err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if f.buildCalls != 0 {
		t.Errorf("expected no bundle build, got %d", f.buildCalls)
	}
}

func TestPackage_ForceBuildRebuildsExistingBundle(t *testing.T) {
	f := newCompilerFixture(t)
	f.makeBundle(t)

	if _, err := f.compiler.Package("1.2.3", true); err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if f.buildCalls != 1 {
		t.Errorf("expected forced bundle build, got %d builds", f.buildCalls)
	}
}

func TestPackage_RemovesStaleArtifacts(t *testing.T) {
	f := newCompilerFixture(t)
	f.makeBundle(t)

	out := filepath.Join(f.root, f.cfg.Installer.OutputDir)
	if err := os.MkdirAll(out, 0755); err != nil {
		t.Fatalf("failed to create output dir: %v", err)
	}
	stale := filepath.Join(out, "Dazzle-Setup-0.9.0.exe")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatalf("failed to write stale artifact: %v", err)
	}

	artifact, err := f.compiler.Package("1.2.3", false)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale artifact was not removed")
	}
	if !strings.HasSuffix(artifact, "Dazzle-Setup-1.2.3.exe") {
		t.Errorf("unexpected artifact path: %s", artifact)
	}
}

func TestPackage_FailsWhenNoArtifactProduced(t *testing.T) {
	f := newCompilerFixture(t)
	f.makeBundle(t)
	f.compiler.runFn = func(dir, name string, args ...string) error {
		return nil // compiler "succeeds" but writes nothing
	}

	_, err := f.compiler.Package("1.2.3", false)
	if err == nil {
		t.Fatal("expected error when no artifact is produced")
	}
	if !strings.Contains(err.Error(), "no artifact") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPackage_PassesVersionDefine(t *testing.T) {
	f := newCompilerFixture(t)
	f.makeBundle(t)

	var gotArgs []string
	f.compiler.runFn = func(dir, name string, args ...string) error {
		gotArgs = args
		out := filepath.Join(f.root, f.cfg.Installer.OutputDir)
		if err := os.MkdirAll(out, 0755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(out, "Dazzle-Setup-2.0.0.exe"), []byte("setup"), 0644)
	}

	if _, err := f.compiler.Package("2.0.0", false); err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	if len(gotArgs) == 0 || gotArgs[0] != "/DAppVersion=2.0.0" {
		t.Errorf("version define missing from compiler args: %v", gotArgs)
	}
}

func TestLocateIn_FindsCompilerInKnownDir(t *testing.T) {
	dir := t.TempDir()
	iscc := filepath.Join(dir, "ISCC.exe")
	if err := os.WriteFile(iscc, []byte("bin"), 0755); err != nil {
		t.Fatalf("failed to write fake compiler: %v", err)
	}

	got, err := locateIn([]string{filepath.Join(dir, "missing"), dir})
	if err != nil {
		t.Fatalf("locateIn failed: %v", err)
	}
	if got != iscc {
		t.Errorf("expected %s, got %s", iscc, got)
	}
}

func TestLocateIn_NotFound(t *testing.T) {
	_, err := locateIn([]string{t.TempDir()})
	if err == nil {
		t.Skip("an installer compiler is on PATH in this environment")
	}
	if !strings.Contains(err.Error(), "ISCC") {
		t.Errorf("error should name the missing tool: %v", err)
	}
}
