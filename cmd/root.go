package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/config"
	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/store"
	"github.com/fieldhouse-group/facility-cli/pkg/narrative"
	"github.com/fieldhouse-group/facility-cli/pkg/sheets"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "facility-cli",
	Short: "Sports facility planning toolkit",
	Long:  "Cost estimation, business-plan building, and lead capture for indoor sports facilities.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initStore opens the configured store and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, cfg.Store.Pool)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// loadCatalog returns the configured catalog file or the compiled-in one.
func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog.File != "" {
		return catalog.LoadFile(cfg.Catalog.File)
	}
	return catalog.Default(), nil
}

// newDispatcher wires the lead dispatcher from config. The sheet sink is
// optional; without a webhook URL leads stay pending until one is configured.
func newDispatcher(st store.Store) *lead.Dispatcher {
	var sink lead.SheetAppender
	if cfg.Sheets.WebhookURL != "" {
		sink = sheets.NewClient(cfg.Sheets.WebhookURL, sheets.WithRateLimit(cfg.Sheets.RateLimitRPS))
	}

	limiter := lead.NewLimiter(time.Duration(cfg.Lead.RateLimitSecs)*time.Second, cfg.Lead.RateBurst)

	return lead.NewDispatcher(st, sink, limiter, lead.DispatcherOptions{
		SyncRetries:   cfg.Lead.SyncRetries,
		ResyncWorkers: cfg.Lead.ResyncWorkers,
	})
}

// newGenerator returns the narrative generator: model-backed when an API key
// is configured, the static fallback otherwise.
func newGenerator() narrative.Generator {
	if cfg.Anthropic.Key == "" {
		return narrative.Static{}
	}
	return narrative.NewClient(cfg.Anthropic.Key, narrative.WithModel(cfg.Anthropic.Model))
}
