package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stakeScope/internal/config"
	"stakeScope/internal/httpapi"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadServe(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder, closeClient, err := newBuilder(ctx, cfg.Config, cfg.Errors, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	handler := httpapi.NewStakingHandler(builder, cfg.CacheSize, cfg.CacheTTL, logger)
	srv := httpapi.NewServer(httpapi.ServerConfig{
		Addr:        cfg.Addr,
		CORSOrigins: cfg.CORSOrigins,
		MetricsPath: cfg.MetricsPath,
	}, handler)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("serve start",
		zap.String("addr", cfg.Addr),
		zap.String("pool", cfg.Pool.String()),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("cache_size", cfg.CacheSize),
		zap.Strings("cors_origins", cfg.CORSOrigins),
		zap.String("metrics_path", cfg.MetricsPath),
	)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
