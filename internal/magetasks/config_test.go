package magetasks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitialize(t *testing.T) {
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer os.Chdir(originalDir)

	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	if err := Initialize(); err != nil {
		t.Errorf("Initialize() returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "bin")); os.IsNotExist(err) {
		t.Errorf("Initialize() should create bin directory, but it doesn't exist")
	}

	expectedRoot, _ := filepath.EvalSymlinks(tmpDir)
	actualRoot, _ := filepath.EvalSymlinks(ProjectRoot)
	if actualRoot != expectedRoot {
		t.Errorf("ProjectRoot = %s, want %s", actualRoot, expectedRoot)
	}
}

func TestPaths(t *testing.T) {
	if ModulePath != "github.com/dkoosis/chasten" {
		t.Errorf("ModulePath = %s", ModulePath)
	}
	if BinPath != "./bin/chasten" || MainPackage != "./cmd/chasten" {
		t.Errorf("BinPath = %s, MainPackage = %s", BinPath, MainPackage)
	}
}

func TestLdflags(t *testing.T) {
	got := Ldflags("v1.2.0", "abc123", "2024-01-01T00:00:00Z")
	for _, want := range []string{
		"-X 'github.com/dkoosis/chasten/internal/version.Version=v1.2.0'",
		"-X 'github.com/dkoosis/chasten/internal/version.CommitHash=abc123'",
		"-X 'github.com/dkoosis/chasten/internal/version.BuildDate=2024-01-01T00:00:00Z'",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Ldflags() = %q, missing %q", got, want)
		}
	}
}

func TestEnvDefaultsToPureGo(t *testing.T) {
	t.Setenv("CGO_ENABLED", "")
	if got := env(nil)["CGO_ENABLED"]; got != "0" {
		t.Errorf("CGO_ENABLED = %q, want 0", got)
	}
	if got := env(map[string]string{"CGO_ENABLED": "1"})["CGO_ENABLED"]; got != "1" {
		t.Errorf("override lost: CGO_ENABLED = %q", got)
	}
}
