package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/icd-engine/internal/codebook"
	"github.com/pdiddy/icd-engine/internal/match"
	"github.com/pdiddy/icd-engine/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Propose ICD-10 equivalents for the ICD-9 codes",
	Long: `Match runs the staged fuzzy matcher over the part lookup tables: curated
manual assignments first, then subcategory-name matching within the shared
common category, then per-code description matching for subcategories the
skip list marks as misleading. Codes nothing matches are recorded with
stage none for the merge stage to resolve.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("tables-dir", defaultTablesDir, "directory holding the part tables, receives "+match.EquivalenceFilename)
	matchCmd.Flags().String("scorer", match.DefaultScorer, "similarity scorer: "+strings.Join(match.ScorerNames(), ", "))
	matchCmd.Flags().Int("subcategory-cutoff", match.DefaultSubcategoryCutoff, "0-100 acceptance threshold for subcategory matching")
	matchCmd.Flags().Int("description-cutoff", match.DefaultDescriptionCutoff, "0-100 acceptance threshold for description matching")
	matchCmd.Flags().String("curated", "", "YAML file overriding the shipped skip list and manual map")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := types.MatchConfig{
		TablesDir:         stringSetting(cmd, "tables-dir", "match.tables_dir"),
		Scorer:            stringSetting(cmd, "scorer", "match.scorer"),
		SubcategoryCutoff: intSetting(cmd, "subcategory-cutoff", "match.subcategory_cutoff"),
		DescriptionCutoff: intSetting(cmd, "description-cutoff", "match.description_cutoff"),
		CuratedFile:       stringSetting(cmd, "curated", "match.curated_file"),
	}

	curated := match.DefaultCurated()
	if cfg.CuratedFile != "" {
		var err error
		curated, err = match.LoadCurated(cfg.CuratedFile)
		if err != nil {
			return err
		}
	}

	m, err := match.NewMatcher(cfg, curated)
	if err != nil {
		return err
	}

	icd9, err := codebook.ReadTable(filepath.Join(cfg.TablesDir, codebook.TableFilename(types.EditionICD9, types.VariantPart)))
	if err != nil {
		return fmt.Errorf("reading icd9 part table: %w", err)
	}
	icd10, err := codebook.ReadTable(filepath.Join(cfg.TablesDir, codebook.TableFilename(types.EditionICD10, types.VariantPart)))
	if err != nil {
		return fmt.Errorf("reading icd10 part table: %w", err)
	}

	rows, summary, err := m.Match(icd9, icd10, os.Stdout)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.TablesDir, match.EquivalenceFilename)
	if err := match.WriteEquivalences(outPath, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d rows)\n\n", outPath, len(rows))
	summary.Report(os.Stdout)
	return nil
}
