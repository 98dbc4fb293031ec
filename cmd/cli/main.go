package main

import (
	"fmt"
	"log"
	"os"

	"diarylens/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:          "diarylens",
		Short:        "Lexicon and statistics analysis of a personal diary",
		SilenceUsage: true,
	}

	var opts sourceOptions
	rootCmd.PersistentFlags().StringVar(&opts.kind, "source", "", "Entry source: file or postgres (default from ENTRY_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&opts.file, "file", "", "Entry spreadsheet (.xlsx or .csv); default from ENTRY_FILE")
	rootCmd.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "Worksheet name for .xlsx files")

	rootCmd.AddCommand(
		newAnalyzeCmd(&opts),
		newReportCmd(&opts),
		newNarrateCmd(&opts),
		newHistoryCmd(),
		newEntryCmd(),
		newLexiconCmd(),
		newImportCmd(&opts),
		newMigrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(opts *sourceOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts == nil {
		return cfg, nil
	}
	if opts.kind != "" {
		cfg.Source.Kind = opts.kind
	}
	if opts.file != "" {
		cfg.Source.EntryFile = opts.file
	}
	if opts.sheet != "" {
		cfg.Source.SheetName = opts.sheet
	}
	return cfg, nil
}
