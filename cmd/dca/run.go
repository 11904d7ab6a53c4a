package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/batch"
	"github.com/JahnaviK1725/dca-collection/internal/common"
	"github.com/JahnaviK1725/dca-collection/internal/engine"
	"github.com/JahnaviK1725/dca-collection/internal/normalize"
	"github.com/JahnaviK1725/dca-collection/internal/oracle"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one scoring pass over the case collection",
		Long: `Run one full scoring pass: rebuild company payment profiles from closed
cases, score every open case through the prediction model, derive SLA
deadlines, and write zones and actions back to the store.

The job is idempotent: re-running with unchanged history produces the same
profiles and classifications.

Examples:
  dca run                         # score as of today
  dca run --today 2026-03-01      # score against a fixed reference date`,
		RunE: runRun,
	}

	cmd.Flags().String("today", "", "reference date for classification (format: 2006-01-02, default: today)")
	cmd.Flags().Int("batch-size", batch.DefaultBatchSize, "max document updates per store commit")

	_ = viper.BindPFlag("run.today", cmd.Flags().Lookup("today"))
	_ = viper.BindPFlag("run.batch_size", cmd.Flags().Lookup("batch-size"))

	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx)
	if err != nil {
		return common.NewUserError("could not open the case store", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close store", "error", closeErr)
		}
	}()

	predictor, err := oracle.NewClient(oracle.Config{
		Provider:       viper.GetString("oracle.provider"),
		Endpoint:       viper.GetString("oracle.endpoint"),
		APIKey:         viper.GetString("oracle.api_key"),
		TimeoutSeconds: viper.GetInt("oracle.timeout_seconds"),
	})
	if err != nil {
		return fmt.Errorf("failed to create oracle client: %w", err)
	}

	config := engine.DefaultConfig()
	if batchSize := viper.GetInt("run.batch_size"); batchSize > 0 {
		config.BatchOptions.BatchSize = batchSize
	}

	if today := viper.GetString("run.today"); today != "" {
		parsed, parseErr := time.Parse("2006-01-02", today)
		if parseErr != nil {
			return fmt.Errorf("invalid --today value %q: %w", today, parseErr)
		}
		day := normalize.Day(parsed)
		config.Now = func() time.Time { return day }
	}

	bar := progressbar.NewOptions(5,
		progressbar.OptionSetDescription("scoring"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)
	config.OnPhase = func(name string) {
		bar.Describe(name)
		_ = bar.Add(1)
	}

	stats, err := engine.NewWithConfig(store, predictor, config).Run(ctx)
	if err != nil {
		return fmt.Errorf("scoring run failed: %w", err)
	}
	_ = bar.Finish()

	fmt.Printf("Run %s complete: %d cases (%d open), %d profiles, %d scored in %s\n",
		stats.RunID, stats.TotalCases, stats.OpenRecords,
		stats.ProfilesWritten, stats.CasesScored, stats.Duration.Round(time.Millisecond))
	for zone, count := range stats.ZoneCounts {
		fmt.Printf("  %-7s %d\n", zone, count)
	}
	if stats.SkippedBatches > 0 {
		fmt.Printf("  %d batch(es) skipped on contention; next run converges them\n", stats.SkippedBatches)
	}

	return nil
}
