// Command productdesk-mockapi serves an in-memory product API for local
// development and demos of productdesk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"productdesk/internal/config"
	"productdesk/internal/logger"
	"productdesk/internal/mockapi"
	"productdesk/internal/product"
)

const shutdownTimeout = 10 * time.Second

var seed = []product.Product{
	{ID: 1, Name: "Laptop Stand", Cost: 1499, Company: "Deskworks", Contact: "sales@deskworks.example"},
	{ID: 2, Name: "USB-C Hub", Cost: 2299.5, Company: "PortCo", Contact: "+91 98765 43210"},
	{ID: 3, Name: "Mechanical Keyboard", Cost: 6799.99, Company: "Clacky", Contact: "hello@clacky.example"},
}

type flags struct {
	configPath string
	addr       string
	bareSingle bool
	empty      bool
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to the YAML config file (default productdesk.yaml)")
	flag.StringVar(&f.addr, "addr", "", "listen address (overrides mockapi.addr)")
	flag.BoolVar(&f.bareSingle, "bare-single", false, "answer /viewall with a bare object when exactly one product exists")
	flag.BoolVar(&f.empty, "empty", false, "start with no products")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		log.Printf("mock API failed: %v", err)
		os.Exit(1)
	}
	log.Println("mock API stopped gracefully")
}

// run serves the mock API until ctx is cancelled, then shuts the server down.
func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(config.Options{File: f.configPath})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if f.addr != "" {
		cfg.MockAPI.Addr = f.addr
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	appLog := logger.New(os.Stdout, level)
	slog.SetDefault(appLog)

	products := seed
	if f.empty {
		products = nil
	}
	srv := mockapi.New(appLog, products...)
	srv.BareSingle = f.bareSingle

	server := &http.Server{
		Addr:              cfg.MockAPI.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLog.Info("mock product API listening",
			slog.String("addr", server.Addr),
			slog.Int("products", len(products)),
			slog.Bool("bare_single", srv.BareSingle))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		appLog.Info("Shutting down mock product API", slog.Int64("requests_served", srv.Requests()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
