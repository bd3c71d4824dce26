package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/icd-engine/internal/match"
	"github.com/pdiddy/icd-engine/internal/merge"
	"github.com/pdiddy/icd-engine/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Apply the manual override table to the fuzzy matches",
	Long: `Merge reconciles the matcher's equivalence table with the hand-reviewed
override table into the final conversion table. A reviewer verdict always
wins over a fuzzy proposal; codes with neither carry the no-conversion
sentinel.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("tables-dir", defaultTablesDir, "directory holding "+match.EquivalenceFilename+", receives "+merge.ConversionFilename)
	mergeCmd.Flags().String("ref-dir", defaultRefDir, "directory holding "+merge.OverridesFilename)

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := types.MergeConfig{
		TablesDir: stringSetting(cmd, "tables-dir", "merge.tables_dir"),
		RefDir:    stringSetting(cmd, "ref-dir", "merge.ref_dir"),
	}

	fuzzy, err := match.ReadEquivalences(filepath.Join(cfg.TablesDir, match.EquivalenceFilename))
	if err != nil {
		return fmt.Errorf("reading equivalence table: %w", err)
	}

	// Before any review pass there is no override table; the fuzzy
	// results stand on their own.
	overridesPath := filepath.Join(cfg.RefDir, merge.OverridesFilename)
	overrides, err := merge.ReadOverrides(overridesPath)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("no override table at %s; keeping fuzzy results\n", overridesPath)
		overrides = nil
	} else if err != nil {
		return fmt.Errorf("reading overrides: %w", err)
	}

	rows, summary, err := merge.Reconcile(fuzzy, overrides, os.Stdout)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.TablesDir, merge.ConversionFilename)
	if err := merge.WriteConversions(outPath, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d rows)\n\n", outPath, len(rows))
	summary.Report(os.Stdout)
	return nil
}
