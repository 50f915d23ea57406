// Package magetasks implements the build targets invoked from magefile.go.
package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/chasten"

	// BinPath is the output path of the chasten binary.
	BinPath = "./bin/chasten"

	// MainPackage is the package built into BinPath.
	MainPackage = "./cmd/chasten"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string
)

// Initialize records the project root and creates bin/.
// Call this from the Magefile init() function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(ProjectRoot, "bin"), 0o750)
}
