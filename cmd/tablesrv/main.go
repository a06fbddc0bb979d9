package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"narcos/internal/config"
	"narcos/internal/ports/ws"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("tablesrv failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := config.GetEnvDefault("ADDR", "localhost")
	port := config.GetEnvDefault("PORT", "9090")
	configPath := config.GetEnvDefault("NARCOS_CONFIG", "data/game_config.json")
	bots, err := config.GetEnvBool("NARCOS_BOTS", true)
	if err != nil {
		slog.WarnContext(ctx, "invalid NARCOS_BOTS, bots stay enabled", "err", err)
	}
	insecure, err := config.GetEnvBool("NARCOS_INSECURE_ORIGINS", false)
	if err != nil {
		slog.WarnContext(ctx, "invalid NARCOS_INSECURE_ORIGINS, origin check stays on", "err", err)
	}

	if err := config.LoadGameConfig(configPath); err != nil {
		slog.WarnContext(ctx, "using default game rules", "path", configPath, "err", err)
	}
	rules := config.GetRules()

	table, err := ws.NewServer(ws.Options{
		Rules:      rules,
		NumPlayers: rules.NumPlayers,
		TickRate:   30,
		Bots:       bots,

		InsecureSkipVerify: insecure,
	})
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", addr, port),
		Handler: table.Handler(),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return table.Run(ctx)
	})
	eg.Go(func() error {
		slog.InfoContext(ctx, "server listening", "addr", srv.Addr, "players", rules.NumPlayers, "bots", bots)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		slog.InfoContext(ctx, "shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "graceful shutdown failed", "error", err)
			return srv.Close()
		}
		return nil
	})

	err = eg.Wait()
	slog.Info("server shutdown complete")
	return err
}
