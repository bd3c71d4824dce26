// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/icd-engine/internal/store"
	"github.com/pdiddy/icd-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the lookup database (ingest, lookup, export)",
	Long: `Store manages a local SQLite database built from the generated lookup
and conversion tables. Use subcommands to ingest the tables, look codes
up, or export the conversion table.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the generated tables into the lookup database",
	Long: `Ingest reads the generated lookup and conversion tables from the tables
directory into a SQLite database with a full-text index over the code
descriptions. Unchanged files are skipped on subsequent runs.`,
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	cfg := storeConfig(cmd)

	s, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.IngestTables(context.Background(), cfg.TablesDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d table(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- lookup subcommand ---

var storeLookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Look up codes by exact code or description search",
	Long: `Lookup queries the database by exact code (--code) or by full-text
search over the descriptions (--query or positional words), optionally
filtered by edition and table variant. ICD-9 results carry the recorded
conversion when one exists.

Use --trace to print each result with its headings and conversion
provenance instead of the table view.`,
	RunE: runStoreLookup,
}

func runStoreLookup(cmd *cobra.Command, args []string) error {
	cfg := storeConfig(cmd)

	opts, err := lookupOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return fmt.Errorf("lookup needs --code, --query, or search words")
	}

	s, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.Lookup(context.Background(), opts)
	if err != nil {
		return err
	}

	trace, _ := cmd.Flags().GetBool("trace")
	return formatLookupOutput(results, trace)
}

func formatLookupOutput(results []store.LookupResult, trace bool) error {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if trace {
		for i, r := range results {
			if i > 0 {
				fmt.Println()
			}
			r.Trace(os.Stdout)
		}
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-7s  %-5s  %-8s  %-50s  %s\n",
		"Edition", "Table", "Code", "Description", "Conversion")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range results {
		desc := r.Record.Description
		if len(desc) > 50 {
			desc = desc[:47] + "..."
		}
		conversion := ""
		if r.Conversion != nil {
			conversion = r.Conversion.ICD10Subcategory
		}
		fmt.Fprintf(os.Stdout, "%-7s  %-5s  %-8s  %-50s  %s\n",
			r.Edition, r.Variant, r.Record.Code, desc, conversion)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion table to YAML or JSON",
	Long: `Export writes the merged conversion table, joined with the ICD-9 record
categories, to stdout or --output in stable code order.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	cfg := storeConfig(cmd)
	s, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	w := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml", "":
		err = s.ExportYAML(context.Background(), w)
	case "json":
		err = s.ExportJSON(context.Background(), w)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Printf("Exported to %s\n", output)
	}
	return nil
}

// --- shared helpers ---

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	return types.StoreConfig{
		TablesDir:  stringSetting(cmd, "tables-dir", "store.tables_dir"),
		IndexDir:   stringSetting(cmd, "index-dir", "store.index_dir"),
		MaxResults: intSetting(cmd, "max-results", "store.max_results"),
	}
}

func lookupOptsFromFlags(cmd *cobra.Command, args []string) (store.LookupOptions, error) {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	code, _ := cmd.Flags().GetString("code")

	opts := store.LookupOptions{
		Code:  code,
		Query: query,
	}

	if editionFlag, _ := cmd.Flags().GetString("edition"); editionFlag != "" {
		edition, err := types.ParseEdition(editionFlag)
		if err != nil {
			return store.LookupOptions{}, err
		}
		opts.Edition = edition
	}
	if variantFlag, _ := cmd.Flags().GetString("variant"); variantFlag != "" {
		variant, err := types.ParseVariant(variantFlag)
		if err != nil {
			return store.LookupOptions{}, err
		}
		opts.Variant = variant
	}

	opts.Limit, _ = cmd.Flags().GetInt("limit")
	return opts, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("tables-dir", defaultTablesDir, "directory holding the generated tables")
	storeCmd.PersistentFlags().String("index-dir", defaultIndexDir, "directory holding the SQLite database")
	storeCmd.PersistentFlags().Int("max-results", 20, "default maximum number of lookup results")

	// Lookup flags.
	storeLookupCmd.Flags().String("code", "", "exact code to look up")
	storeLookupCmd.Flags().String("query", "", "full-text search over descriptions")
	storeLookupCmd.Flags().String("edition", "", "filter by edition: icd9 or icd10")
	storeLookupCmd.Flags().String("variant", "", "filter by table variant: full or part")
	storeLookupCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeLookupCmd.Flags().Bool("trace", false, "print headings and conversion provenance per result")

	// Export flags.
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("output", "", "write to a file instead of stdout")

	// Wire subcommands.
	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeLookupCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
