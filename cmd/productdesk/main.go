package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"productdesk/internal/api"
	"productdesk/internal/config"
	"productdesk/internal/logger"
	"productdesk/internal/telemetry"
	"productdesk/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default productdesk.yaml)")
	envFile := flag.String("env-file", "", "path to a dotenv file (default .env)")
	baseURL := flag.String("base-url", "", "override api.baseUrl")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: productdesk [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Terminal client for the product REST API.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, *envFile, *baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envFile, baseURL string) error {
	cfg, err := config.Load(config.Options{File: configPath, EnvFile: envFile})
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	// The terminal belongs to Bubble Tea, so logs go to a file.
	log, closeLog, err := logger.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info("productdesk starting", "config", cfg.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := telemetry.NewProvider(ctx, telemetry.Options{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	client, err := api.NewClient(cfg.API.BaseURL, api.Options{
		Timeout:        cfg.API.Timeout,
		Logger:         log,
		TracerProvider: tp.TracerProvider(),
	})
	if err != nil {
		return err
	}

	model := ui.NewAppModel(ctx, client, log).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	log.Info("productdesk stopped")
	return nil
}
