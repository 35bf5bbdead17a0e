package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/visits"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = 24 * time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Start(cfg.Addr())
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	if cfg.WatchContent && cfg.ContentPath != "" {
		g.Go(func() error {
			logger.Info("watching content for changes", zap.String("path", cfg.ContentPath))
			return a.store.Watch(gctx)
		})
	}

	if a.ledger != nil && cfg.Ledger.Retention > 0 {
		g.Go(func() error {
			pruneLoop(gctx, a.ledger, cfg.Ledger.Retention, logger)
			return nil
		})
	}

	return g.Wait()
}

// pruneLoop drops ledger rows past retention at startup and then daily.
func pruneLoop(ctx context.Context, ledger *visits.Ledger, retention time.Duration, log *zap.Logger) {
	prune := func() {
		n, err := ledger.Prune(ctx, retention)
		if err != nil {
			log.Error("privacy cleanup failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("privacy cleanup removed old visit records", zap.Int64("removed", n), zap.Duration("retention", retention))
		}
	}

	prune()
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
