package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/failoverd/failoverd/internal/agent"
	"github.com/failoverd/failoverd/internal/config"
	"github.com/failoverd/failoverd/internal/probe"
	"github.com/failoverd/failoverd/internal/remedy"
	"github.com/failoverd/failoverd/internal/status"
)

func main() {
	configPath := flag.String("config", "/etc/failoverd/config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("failoverd starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"enabled", cfg.Enabled,
		"listen", cfg.Listen,
		"command_socket", cfg.CommandSocket,
		"options", len(cfg.Options),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := status.NewRegistry()
	col := status.NewCollector()
	runner := &remedy.EAPIClient{SocketPath: cfg.CommandSocket}
	machine := agent.New(cfg, probe.HTTPChecker{}, remedy.NewApplier(runner), reg, col)

	if cfg.Listen != "" {
		go func() {
			if err := status.Serve(ctx, cfg.Listen, status.NewServer(reg, col)); err != nil {
				slog.Error("status server stopped", "err", err)
			}
		}()
	}

	// Watch the config file for hot-reload; updates are applied between ticks.
	go func() {
		if err := config.Watch(ctx, *configPath, machine.Update); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	machine.Run(ctx)
	slog.Info("failoverd shutting down")
}
