// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the icd-engine CLI. Each pipeline
// stage is a subcommand: convert, parse, match, merge, store, validate.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// Default workspace layout, created by mage init.
const (
	defaultRawDir    = "codebooks/raw"
	defaultTextDir   = "codebooks/text"
	defaultRefDir    = "codebooks/ref"
	defaultTablesDir = "tables"
	defaultIndexDir  = "index"
)

// rootCmd is the base command for the icd-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "icd-engine",
	Short: "ICD-9 to ICD-10 codebook conversion pipeline",
	Long: `icd-engine builds ICD-9 and ICD-10 lookup tables from codebook PDFs and
derives an ICD-9 to ICD-10 conversion table by staged fuzzy matching plus
a hand-reviewed override table.

Each pipeline stage is a subcommand: convert extracts plain text from the
codebook PDFs, parse builds the lookup tables, match proposes ICD-10
equivalents for the ICD-9 codes, merge applies the override table, store
loads everything into a queryable SQLite database, and validate checks
the generated tables.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./icd-engine.yaml or ~/.icd-engine/icd-engine.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("icd-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".icd-engine"))
		}
	}

	viper.SetEnvPrefix("ICD_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a string config value: an explicitly set flag
// wins, then the config file, then the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// intSetting resolves an int config value the same way.
func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
