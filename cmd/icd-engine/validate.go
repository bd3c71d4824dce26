package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/icd-engine/internal/validate"
	"github.com/pdiddy/icd-engine/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the generated tables for data-quality issues",
	Long: `Validate loads whichever generated tables exist and checks them for
duplicate codes, part codes missing from the full table, records outside
any heading, unmapped categories, and conversion-table contract
violations. Exits non-zero only when error-severity issues are found;
warnings are informational.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("tables-dir", defaultTablesDir, "directory holding the generated tables")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := types.ValidateConfig{
		TablesDir: stringSetting(cmd, "tables-dir", "validate.tables_dir"),
	}

	set, err := validate.LoadTables(cfg.TablesDir)
	if err != nil {
		return err
	}

	issues := validate.Run(set)
	validate.Report(issues, os.Stdout)

	if validate.HasErrors(issues) {
		return fmt.Errorf("validation found errors")
	}
	return nil
}
