package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/icd-engine/internal/convert"
	"github.com/pdiddy/icd-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf...]",
	Short: "Extract plain text from codebook PDFs",
	Long: `Convert runs pdftotext in layout mode over codebook PDFs, producing the
plain-text files the parse stage consumes. With no arguments every PDF
under the raw directory is converted; existing text files are skipped
unless --force is given.

Uses the host pdftotext when installed, falling back to the poppler
container image under docker or podman.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("backend", "auto", "conversion backend: auto, pdftotext, or container")
	convertCmd.Flags().String("raw-dir", defaultRawDir, "directory holding source codebook PDFs")
	convertCmd.Flags().String("text-dir", defaultTextDir, "output directory for converted text")
	convertCmd.Flags().Bool("force", false, "reconvert even when the text output exists")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := types.ConvertConfig{
		Backend: types.ConversionBackend(stringSetting(cmd, "backend", "convert.backend")),
		RawDir:  stringSetting(cmd, "raw-dir", "convert.raw_dir"),
		TextDir: stringSetting(cmd, "text-dir", "convert.text_dir"),
	}
	cfg.Force, _ = cmd.Flags().GetBool("force")

	tool, err := convert.DetectTool(cfg.Backend)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var result convert.BatchResult
	if len(args) > 0 {
		result = convert.ConvertPaths(ctx, tool, args, cfg.TextDir, cfg.Force, os.Stdout)
	} else {
		result, err = convert.ConvertBatch(ctx, tool, cfg, os.Stdout)
		if err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d codebook(s) failed conversion", len(result.Failed))
	}
	return nil
}
