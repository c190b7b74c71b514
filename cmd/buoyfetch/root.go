package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/buoy-fetch/internal/adapter/jsonfile"
	"github.com/couchcryptid/buoy-fetch/internal/adapter/kafka"
	"github.com/couchcryptid/buoy-fetch/internal/adapter/ndbc"
	"github.com/couchcryptid/buoy-fetch/internal/config"
	"github.com/couchcryptid/buoy-fetch/internal/domain"
	"github.com/couchcryptid/buoy-fetch/internal/observability"
	"github.com/couchcryptid/buoy-fetch/internal/pipeline"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "buoyfetch",
		Short: "Write the latest NDBC buoy observations to a fallback JSON document",
		Long: `Fetches the standard meteorological (.txt) and spectral summary (.spec)
reports for one NDBC station, filters missing-data sentinels, converts units
and replaces the output document. A report that cannot be fetched or parsed
is written as null; only a failure to write the document is an error.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				slog.Error("failed to load config", "error", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, observability.NewLogger(cfg))
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file (BUOY_* environment variables take precedence)")
	return cmd
}

// run wires the adapters for one fetch-parse-write cycle.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	fetcher := ndbc.NewClient(cfg.FetchTimeout, metrics, logger)
	writer := jsonfile.NewWriter(cfg.OutputPath, logger)

	var publishers []pipeline.Loader
	if cfg.KafkaEnabled() {
		kw := kafka.NewWriter(cfg, logger)
		defer func() {
			if err := kw.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publishers = append(publishers, kw)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(fetcher, cfg.SpectralLayout, writer, logger, metrics, publishers...)

	job := pipeline.Job{
		Station:     cfg.Station,
		StandardURL: ndbc.ReportURL(cfg.NDBCBaseURL, cfg.Station.ID, domain.ReportStandard),
		SpectralURL: ndbc.ReportURL(cfg.NDBCBaseURL, cfg.Station.ID, domain.ReportSpectral),
	}

	_, runErr := p.Run(ctx, job)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("metrics not written", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		return fmt.Errorf("buoyfetch: %w", runErr)
	}
	return nil
}
