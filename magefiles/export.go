//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Export builds the CLI and runs a debug export for query into papers.csv.
func Export(query string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), query, "--debug", "--file", "papers.csv")
}
