//go:build mage

package main

import "github.com/magefile/mage/mg"

// Merge applies the manual override table to the fuzzy matches.
func Merge() error {
	mg.Deps(Build)
	return runBin("merge")
}
