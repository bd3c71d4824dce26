package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/icd-engine/internal/codebook"
	"github.com/pdiddy/icd-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Build lookup tables from converted codebook text",
	Long: `Parse classifies each line of a converted codebook as a category, a
subcategory, a code, or a continuation, joins the common categories from
the categorization table, and writes the edition's full and part lookup
tables. Lines that fit no pattern are flagged, sampled in the report, and
never fatal.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("edition", "", "codebook edition: icd9 or icd10 (required)")
	parseCmd.Flags().String("text-dir", defaultTextDir, "directory holding converted codebook text")
	parseCmd.Flags().String("ref-dir", defaultRefDir, "directory holding the categorization and subcategory reference files")
	parseCmd.Flags().String("tables-dir", defaultTablesDir, "output directory for generated tables")
	parseCmd.Flags().Int("sample-limit", codebook.DefaultSampleLimit, "flagged-line samples shown per flag kind")
	_ = parseCmd.MarkFlagRequired("edition")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	editionFlag, _ := cmd.Flags().GetString("edition")
	edition, err := types.ParseEdition(editionFlag)
	if err != nil {
		return err
	}

	cfg := types.ParseConfig{
		TextDir:     stringSetting(cmd, "text-dir", "parse.text_dir"),
		RefDir:      stringSetting(cmd, "ref-dir", "parse.ref_dir"),
		TablesDir:   stringSetting(cmd, "tables-dir", "parse.tables_dir"),
		SampleLimit: intSetting(cmd, "sample-limit", "parse.sample_limit"),
	}

	_, err = codebook.ParseBook(edition, cfg, os.Stdout)
	return err
}
