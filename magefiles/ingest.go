//go:build mage

package main

import "github.com/magefile/mage/mg"

// Ingest loads the generated tables into the SQLite lookup database.
func Ingest() error {
	mg.Deps(Build)
	return runBin("store", "ingest")
}
