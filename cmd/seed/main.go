package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"web-analytics-dashboard/internal/config"
	"web-analytics-dashboard/internal/log"
	"web-analytics-dashboard/internal/sessions/adapters/store"
	sessionsUsecase "web-analytics-dashboard/internal/sessions/core/usecase"
)

type options struct {
	store     string
	domains   string
	count     int
	batchSize int
	days      int
	migrate   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the sessions table with random sessions",
		Long: "seed writes random sessions to the analytics store configured through the\n" +
			"CLICKHOUSE_* / POSTGRES_* environment variables, so the dashboard has data to show.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.store, "store", "", "store to seed: clickhouse or postgres (default: $DASHBOARD_STORE)")
	flags.StringVar(&opts.domains, "domains", "localhost,mywebsite.localhost,foo.mywebsite.localhost", "comma separated list of domains")
	flags.IntVar(&opts.count, "count", 10_000, "number of sessions to generate")
	flags.IntVar(&opts.batchSize, "batch-size", 1_000, "sessions per insert batch")
	flags.IntVar(&opts.days, "days", 30, "spread session start times over the last N days")
	flags.BoolVar(&opts.migrate, "migrate", false, "create the sessions table when it does not exist")

	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.store != "" {
		cfg.Store = opts.store
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := log.New("seed", os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	sessionStore, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	if opts.migrate {
		if err := sessionStore.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info().Msg("sessions table ready")
	}

	uc := sessionsUsecase.NewSeedSessionsUseCase(sessionStore, nil)

	res, err := uc.Execute(ctx, sessionsUsecase.SeedSessionsInput{
		Domains:   splitDomains(opts.domains),
		Count:     opts.count,
		BatchSize: opts.batchSize,
		Days:      opts.days,
	})
	logSeedResult(logger, res, err)

	return err
}

func logSeedResult(logger zerolog.Logger, res sessionsUsecase.SeedSessionsResult, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}
	event.Int("inserted", res.Inserted).Int("batches", res.Batches).Msg("seeding done")
}

func splitDomains(raw string) []string {
	var domains []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}
