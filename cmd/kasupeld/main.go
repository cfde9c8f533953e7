package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/kasupel/kasupel/internal/config"
	"github.com/kasupel/kasupel/internal/match"
	"github.com/kasupel/kasupel/internal/obslog"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	mgr, err := match.NewManager(cfg.RedisURL, cfg.GameTTL.Std())
	if err != nil {
		obslog.L().Fatal("match manager init error", zap.Error(err))
	}
	mgr.SetRatingKFactor(cfg.EloKFactor)

	var repo *match.Repository
	if cfg.DatabaseURL != "" {
		repo, err = match.NewRepository(cfg.DatabaseURL)
		if err != nil {
			obslog.L().Fatal("repository init error", zap.Error(err))
		}
		mgr.AttachRepository(repo)
	} else {
		obslog.L().Warn("DATABASE_URL not set; results and ratings will not be persisted")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obslog.L().Info("kasupeld started",
		zap.Duration("sweep_interval", cfg.SweepInterval.Std()),
		zap.Duration("game_ttl", cfg.GameTTL.Std()),
	)

	ticker := time.NewTicker(cfg.SweepInterval.Std())
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, cfg.SweepInterval.Std())
			if n := mgr.SweepTimeouts(sweepCtx); n > 0 {
				obslog.L().Info("timeout sweep", zap.Int("concluded", n))
			}
			cancel()
		case <-ctx.Done():
			obslog.L().Info("shutting down")
			_ = mgr.Close()
			if repo != nil {
				_ = repo.Close()
			}
			os.Exit(0)
		}
	}
}
