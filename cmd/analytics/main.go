package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/ougirez/malaria-analytics/internal/api"
	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/pkg/logger"
	"github.com/ougirez/malaria-analytics/internal/pkg/store"
	"github.com/ougirez/malaria-analytics/internal/pkg/store/xpgx"
	"github.com/ougirez/malaria-analytics/internal/service/analytics"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(viper.GetViper(), *configPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	if err = logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		logger.Fatal(ctx, err)
	}
	defer logger.Sync()

	if cfg.Auth.Secret == "" {
		logger.Warnf(ctx, "auth.secret is empty, admin endpoints are disabled")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := xpgx.Connect(connectCtx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	cancel()
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("postgres connect: %w", err))
	}
	defer pool.Close()

	st := store.NewStore(xpgx.Wrap(pool), store.RetryPolicy{
		Count:    cfg.Store.RetryCount,
		Interval: cfg.Store.RetryInterval,
	})

	service := analytics.NewService(st, analytics.Opts{
		Limits:     cfg.Limits,
		Heuristics: cfg.Heuristics,
	})

	svc, err := api.NewAPIService(*cfg, service, st)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(cfg.HTTP.Addr)
	logger.Infof(ctx, "listening on %s", cfg.HTTP.Addr)

	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err = svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}
