// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/icd-engine/internal/codebook"
	"github.com/pdiddy/icd-engine/internal/merge"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// TableSet holds the generated tables one validation run checks. Tables
// absent from the maps are skipped; HasConversions distinguishes a
// missing conversion table from an empty one.
type TableSet struct {
	Full map[types.Edition][]types.CodeRecord
	Part map[types.Edition][]types.CodeRecord

	Conversions    []types.Conversion
	HasConversions bool
}

// LoadTables reads whichever generated tables exist under dir. A partial
// pipeline run is fine; an empty dir is not.
func LoadTables(dir string) (TableSet, error) {
	set := TableSet{
		Full: make(map[types.Edition][]types.CodeRecord),
		Part: make(map[types.Edition][]types.CodeRecord),
	}

	found := false
	for _, edition := range types.AllEditions {
		for _, variant := range types.AllVariants {
			path := filepath.Join(dir, codebook.TableFilename(edition, variant))
			if _, err := os.Stat(path); err != nil {
				continue
			}
			records, err := codebook.ReadTable(path)
			if err != nil {
				return TableSet{}, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
			}
			found = true
			switch variant {
			case types.VariantFull:
				set.Full[edition] = records
			case types.VariantPart:
				set.Part[edition] = records
			}
		}
	}

	convPath := filepath.Join(dir, merge.ConversionFilename)
	if _, err := os.Stat(convPath); err == nil {
		rows, err := merge.ReadConversions(convPath)
		if err != nil {
			return TableSet{}, fmt.Errorf("loading %s: %w", merge.ConversionFilename, err)
		}
		set.Conversions = rows
		set.HasConversions = true
		found = true
	}

	if !found {
		return TableSet{}, fmt.Errorf("no generated tables found in %s", dir)
	}
	return set, nil
}
