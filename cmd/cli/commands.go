package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"diarylens/adapters/excel"
	"diarylens/adapters/postgres"
	"diarylens/app"
	"diarylens/domain/analytics"
	"diarylens/domain/diary"
	"diarylens/internal/errors"
	"diarylens/internal/migration"
	"diarylens/internal/report"

	"github.com/spf13/cobra"
)

type productFunc func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error)

var products = map[string]productFunc{
	"all": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.Overview(cmd.Context(), entries)
	},
	"monthly": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.Monthly(cmd.Context(), entries)
	},
	"daily": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.Daily(cmd.Context(), entries)
	},
	"elevation-monthly": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.ElevationMonthly(cmd.Context(), entries)
	},
	"elevation-daily": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.ElevationDaily(cmd.Context(), entries)
	},
	"stability": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.StabilityByYear(cmd.Context(), entries)
	},
	"overall-stability": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.OverallStability(cmd.Context(), entries)
	},
	"trend-shifts": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.TrendShifts(cmd.Context(), entries)
	},
	"seasonal": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.Seasonal(cmd.Context(), entries)
	},
	"vocabulary-depth": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.VocabularyDepth(cmd.Context(), entries)
	},
	"first-person": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.FirstPersonShift(cmd.Context(), entries)
	},
	"predictive": func(cmd *cobra.Command, svc *app.AnalysisService, entries []diary.Entry) (interface{}, error) {
		return svc.Predictive(cmd.Context(), entries)
	},
}

func productNames() string {
	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func newAnalyzeCmd(opts *sourceOptions) *cobra.Command {
	var product string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute an analysis product and print it as JSON",
		Long: `Compute an analysis product over every entry and print it as JSON.

Example: diarylens analyze --file diary.xlsx --product trend-shifts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := products[product]
			if !ok {
				return errors.InvalidInput(fmt.Sprintf("unknown product %q (want %s)", product, productNames()))
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			entries, err := loadEntries(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			svc := app.NewAnalysisService(analysisOptions(cfg), nil, nil, nil)
			result, err := run(cmd, svc, entries)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&product, "product", "all", "Product to compute: "+productNames())
	return cmd
}

func newReportCmd(opts *sourceOptions) *cobra.Command {
	var asHTML bool
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the analysis overview as markdown or HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			entries, err := loadEntries(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			svc := app.NewAnalysisService(analysisOptions(cfg), nil, nil, nil)
			overview, err := svc.Overview(cmd.Context(), entries)
			if err != nil {
				return err
			}

			var body []byte
			if asHTML {
				body = report.HTML(overview)
			} else {
				body = []byte(report.Markdown(overview))
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			return os.WriteFile(out, body, 0o644)
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of markdown")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newNarrateCmd(opts *sourceOptions) *cobra.Command {
	var analysisType string

	cmd := &cobra.Command{
		Use:   "narrate",
		Short: "Generate a narrative summary of an analysis with the configured LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			generator, err := newGenerator(cfg)
			if err != nil {
				return err
			}
			cache, logs, closer, err := narrativeStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			entries, err := loadEntries(ctx, cfg)
			if err != nil {
				return err
			}

			svc := app.NewAnalysisService(analysisOptions(cfg), generator, cache, logs)
			overview, err := svc.Overview(ctx, entries)
			if err != nil {
				return err
			}

			entry, err := svc.Narrate(ctx, analytics.AnalysisType(analysisType), overview)
			if entry != nil {
				if entry.Stale {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: generator unavailable, showing narrative from %s\n",
						entry.UpdatedAt.Format("2006-01-02 15:04"))
				}
				fmt.Fprintln(cmd.OutOrStdout(), entry.Result)
			}
			if entry != nil && entry.Stale {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&analysisType, "type", string(analytics.AnalysisOverview),
		"Analysis type: overview|trend_shifts|seasonal|first_person|predictive")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var analysisType string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent narrative generation attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			cache, logs, closer, err := narrativeStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			svc := app.NewAnalysisService(analysisOptions(cfg), nil, cache, logs)
			entries, err := svc.NarrativeHistory(ctx, analytics.AnalysisType(analysisType), limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVar(&analysisType, "type", "", "Filter by analysis type")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries")
	return cmd
}

func newImportCmd(opts *sourceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import a spreadsheet of entries into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.Source.EntryFile == "" {
				return errors.ConfigInvalid("--file is required")
			}

			entries, err := excel.NewDataReader(excel.ExcelConfig{
				FilePath:  cfg.Source.EntryFile,
				SheetName: cfg.Source.SheetName,
			}).ListEntries(ctx)
			if err != nil {
				return err
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			inserted, err := postgres.NewEntryRepository(db).SaveEntries(ctx, entries)
			if err != nil {
				return errors.DatabaseError("failed to save entries", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d entries\n", inserted, len(entries))
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the PostgreSQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %s\n", migration.NewRunner().Version())
			return nil
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
