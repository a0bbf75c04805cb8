package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/jekabolt/wedding-rsvp/app"
	"github.com/jekabolt/wedding-rsvp/config"
	"github.com/jekabolt/wedding-rsvp/internal/store"
	"github.com/jekabolt/wedding-rsvp/log"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := log.New(cfg.Logger, os.Stdout)
	slog.SetDefault(logger)

	a := app.New(cfg)
	if err := a.Start(ctx); err != nil {
		_ = a.Stop(ctx)
		return fmt.Errorf("cannot start the application %v", err.Error())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	select {
	case s := <-sigCh:
		logger.With("signal", s.String()).Warn("signal received, exiting")
		if err := a.Stop(ctx); err != nil {
			logger.Error("application stopped with an error", slog.String("err", err.Error()))
		}
		logger.Info("application exited")
	case <-a.Done():
		logger.Error("application exited")
		_ = a.Stop(ctx)
	}

	return nil
}

func migrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	slog.SetDefault(log.New(cfg.Logger, os.Stdout))

	if cfg.Store.Type != config.StoreSQL {
		slog.Default().Info("nothing to migrate", slog.String("store", cfg.Store.Type))
		return nil
	}
	n, err := store.Migrate(context.Background(), cfg.Store.SQL)
	if err != nil {
		return fmt.Errorf("cannot apply migrations: %w", err)
	}
	slog.Default().Info("migrations applied",
		slog.String("driver", cfg.Store.SQL.Driver),
		slog.Int("count", n),
	)
	return nil
}
