package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/blaisecz/nightlog/internal/config"
	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/export"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/internal/metrics"
	"github.com/blaisecz/nightlog/internal/normalizer"
	"github.com/blaisecz/nightlog/internal/repository"
	"github.com/blaisecz/nightlog/internal/service"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newTransformCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Normalize a raw tracker export into transformed.json",
		Long: `Read a raw tracker export and write the normalized batch as indented JSON.

Example: nightlog transform --in raw_data.json --out transformed.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBatch(in, false)
			if err != nil {
				return err
			}
			if err := writeJSONFile(out, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s (%s)\n",
				len(data.Sleeps), out, normalizer.Summarize(data.Sleeps))
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "raw_data.json", "Raw tracker export")
	cmd.Flags().StringVar(&out, "out", "transformed.json", "Normalized output file")
	return cmd
}

func newLoadCmd() *cobra.Command {
	var in string
	var normalized bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a batch into the database, replacing the user's records",
		Long: `Load a raw export (or, with --normalized, a transformed.json) for one user.
The user is created on first load; loading again replaces their nights.

DATABASE_URL and the other settings are read from the environment or .env.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBatch(in, normalized)
			if err != nil {
				return err
			}

			cfg := config.Load()
			db, err := config.NewDatabase(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			if err := db.AutoMigrate(&domain.User{}, &domain.SleepRecord{}); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			ingest := service.NewIngestService(
				repository.NewUserRepository(db),
				repository.NewSleepRecordRepository(db),
				nil,
				metrics.New(nil),
			)
			res, err := ingest.Store(cmd.Context(), data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d records for %s %s (%s)\n",
				res.Report.Records, res.User.FirstName, res.User.LastName, res.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "raw_data.json", "Input file")
	cmd.Flags().BoolVar(&normalized, "normalized", false, "Input is already normalized")
	return cmd
}

func newExportCmd() *cobra.Command {
	var in, out string
	var normalized bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the normalized nights to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBatch(in, normalized)
			if err != nil {
				return err
			}
			if err := export.SaveXLSX(out, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(data.Sleeps), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "raw_data.json", "Input file")
	cmd.Flags().StringVar(&out, "out", "sleeps.xlsx", "Workbook to write")
	cmd.Flags().BoolVar(&normalized, "normalized", false, "Input is already normalized")
	return cmd
}

func newKPICmd() *cobra.Command {
	var in, from, to string
	var days int
	var normalized bool

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Print the current vs previous window comparison as JSON",
		Long: `Compute the KPI comparison for a batch without a database.

The current window is --from/--to (YYYY-MM-DD, both inclusive) or the --days
days ending on the last night in the batch.

Example: nightlog kpi --in raw_data.json --from 2025-05-01 --to 2025-05-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBatch(in, normalized)
			if err != nil {
				return err
			}

			w, err := resolveWindow(data.Sleeps, from, to, days)
			if err != nil {
				return err
			}

			engine := kpi.NewEngine(config.Load().KPI())
			cmp := engine.CompareWindows(data.Sleeps, w)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cmp)
		},
	}

	cmd.Flags().StringVar(&in, "in", "raw_data.json", "Input file")
	cmd.Flags().StringVar(&from, "from", "", "First day of the current window")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the current window")
	cmd.Flags().IntVar(&days, "days", kpi.DefaultWindowDays, "Window length when no dates are given")
	cmd.Flags().BoolVar(&normalized, "normalized", false, "Input is already normalized")
	cmd.MarkFlagsRequiredTogether("from", "to")
	return cmd
}

// readBatch loads either a raw export, normalizing it, or a normalized batch.
func readBatch(path string, normalized bool) (domain.NormalizedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.NormalizedData{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if normalized {
		var data domain.NormalizedData
		if err := json.NewDecoder(f).Decode(&data); err != nil {
			return domain.NormalizedData{}, fmt.Errorf("%w: %s: %v", domain.ErrMalformedInput, path, err)
		}
		return data, nil
	}

	raw, err := normalizer.Decode(f)
	if err != nil {
		return domain.NormalizedData{}, fmt.Errorf("%s: %w", path, err)
	}
	data := normalizer.Normalize(raw)
	log.Printf("[transform] %s: %s", path, normalizer.Summarize(data.Sleeps))
	return data, nil
}

func writeJSONFile(path string, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(body, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// resolveWindow uses explicit dates when given, otherwise the trailing days
// ending on the latest placed night.
func resolveWindow(records []domain.NormalizedSleepRecord, from, to string, days int) (kpi.Window, error) {
	if from != "" || to != "" {
		start, err := time.Parse(dateLayout, from)
		if err != nil {
			return kpi.Window{}, fmt.Errorf("%w: from: %v", domain.ErrInvalidWindow, err)
		}
		end, err := time.Parse(dateLayout, to)
		if err != nil {
			return kpi.Window{}, fmt.Errorf("%w: to: %v", domain.ErrInvalidWindow, err)
		}
		w := kpi.DayWindow(start, end)
		return w, w.Validate()
	}

	var last time.Time
	for _, r := range records {
		if t, ok := kpi.PreferredTime(r); ok && t.After(last) {
			last = t
		}
	}
	if last.IsZero() {
		return kpi.Window{}, fmt.Errorf("%w: no dated nights in batch", domain.ErrInvalidWindow)
	}
	return kpi.TrailingWindow(last, days), nil
}
