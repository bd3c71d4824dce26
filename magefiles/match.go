//go:build mage

package main

import "github.com/magefile/mage/mg"

// Match runs the staged fuzzy matcher over the part tables.
func Match() error {
	mg.Deps(Build)
	return runBin("match")
}
