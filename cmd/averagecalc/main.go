// Package main is the entry point for the AverageCalc GUI application.
// cmd/ only does assembly and I/O; all logic lives in internal/.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/whhaicheng/AverageCalc/internal/app/usecase"
	"github.com/whhaicheng/AverageCalc/internal/domain/config"
	"github.com/whhaicheng/AverageCalc/internal/infra/logging"
	"github.com/whhaicheng/AverageCalc/internal/infra/metrics"
	"github.com/whhaicheng/AverageCalc/internal/infra/source"
	"github.com/whhaicheng/AverageCalc/internal/transport/ui"
)

func main() {
	// Set locale to avoid Fyne warning
	if os.Getenv("LANG") == "" || os.Getenv("LANG") == "C" {
		os.Setenv("LANG", "en_US.UTF-8")
	}

	// 1. Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logging to both file and console
	logFile, closer, err := logging.Setup("averagecalc", cfg.Advanced.LogLevel, cfg.Advanced.LogDir, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	slog.Info("Starting AverageCalc", "log_file", logFile,
		"default_kind", cfg.Defaults.Kind, "default_count", cfg.Defaults.Count)

	// 3. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		slog.Error("Failed to register metrics", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Advanced.MetricsAddr != "" {
		srv, err := metrics.Listen(cfg.Advanced.MetricsAddr, reg)
		if err != nil {
			slog.Error("Failed to start metrics endpoint", "addr", cfg.Advanced.MetricsAddr, "error", err)
			os.Exit(1)
		}
		go func() {
			if err := srv.Serve(ctx); err != nil {
				slog.Error("Metrics endpoint stopped", "error", err)
			}
		}()
	}

	// 4. Sources and use cases
	registry := source.NewDefaultRegistry(cfg.Remote, nil)
	slog.Info("Sources registered", "kinds", registry.List())

	provider := usecase.NewSequenceUseCase(registry, m)
	ctrl := usecase.NewRequestController(provider, usecase.ControllerOptions{
		Kind:     cfg.Defaults.Kind,
		Count:    cfg.Defaults.Count,
		MaxCount: cfg.Limits.MaxCount,
		Metrics:  m,
	})
	defer ctrl.Close()

	// 5. Start GUI
	slog.Info("Starting GUI")
	app := ui.NewApplication(ctrl)
	app.Run()

	slog.Info("AverageCalc stopped")
}
