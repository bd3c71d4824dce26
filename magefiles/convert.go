//go:build mage

package main

import "github.com/magefile/mage/mg"

// Convert extracts plain text from the codebook PDFs under codebooks/raw.
func Convert() error {
	mg.Deps(Build)
	return runBin("convert")
}
