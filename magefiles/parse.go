//go:build mage

package main

import "github.com/magefile/mage/mg"

// Parse builds the lookup tables for both editions from the converted text.
func Parse() error {
	mg.Deps(Build)
	if err := runBin("parse", "--edition", "icd9"); err != nil {
		return err
	}
	return runBin("parse", "--edition", "icd10")
}
