package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the planning API server",
	Long:  "Serves catalog lookups, quote and estimate calculations, plan drafts, and lead capture for the marketing site.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		// Abandoned drafts pile up; sweep the stale ones at startup.
		if ttl := cfg.Estimate.DraftTTLHours; ttl > 0 {
			n, err := st.DeleteStaleDrafts(ctx, time.Duration(ttl)*time.Hour)
			if err != nil {
				zap.L().Warn("sweep stale drafts", zap.Error(err))
			} else if n > 0 {
				zap.L().Info("swept stale drafts", zap.Int("count", n))
			}
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := server.New(cat, st, newDispatcher(st), server.Config{
			Port:             port,
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			RegionMultiplier: cfg.Estimate.RegionMultiplier,
			Tier:             catalog.Tier(cfg.Estimate.Tier),
		})

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
