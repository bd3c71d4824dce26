//go:build mage

package main

import "github.com/magefile/mage/mg"

// Pipeline runs every stage in order: convert, parse, match, merge,
// ingest. Each stage reuses what an earlier run already produced, so a
// rerun only redoes what changed.
func Pipeline() error {
	mg.SerialDeps(Convert, Parse, Match, Merge, Ingest)
	return nil
}
