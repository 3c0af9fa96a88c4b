package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/mini-dns/internal/dns/common/clock"
	"github.com/haukened/mini-dns/internal/dns/common/log"
	"github.com/haukened/mini-dns/internal/dns/config"
	"github.com/haukened/mini-dns/internal/dns/gateways/transport"
	"github.com/haukened/mini-dns/internal/dns/gateways/wire"
	"github.com/haukened/mini-dns/internal/dns/services/responder"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "mini-dnsd"
)

// Application holds all the components of the DNS server
type Application struct {
	config    *config.AppConfig
	transport transport.ServerTransport
	responder responder.DNSResponder
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info(map[string]any{
		"app":         appName,
		"version":     version,
		"env":         cfg.Env,
		"log_level":   cfg.LogLevel,
		"address":     cfg.Address(),
		"reuse_port":  cfg.ReusePort,
		"max_workers": cfg.MaxWorkers,
	}, "Starting mini-dns server")

	app := buildApplication(cfg)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	// Socket setup failures end up here and exit with status 1.
	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Server failed")
	}

	log.Info(nil, "mini-dns server stopped gracefully")
}

// buildApplication constructs all components and wires them together
func buildApplication(cfg *config.AppConfig) *Application {
	logger := log.GetLogger()

	codec := wire.NewUDPCodec(logger)

	dnsResponder := responder.NewResponder(responder.Options{
		Logger: logger,
	})

	udpTransport := transport.NewUDPTransport(transport.UDPOptions{
		Addr:       cfg.Address(),
		ReusePort:  cfg.ReusePort,
		MaxWorkers: cfg.MaxWorkers,
		Codec:      codec,
		Logger:     logger,
		Clock:      clock.RealClock{},
	})

	return &Application{
		config:    cfg,
		transport: udpTransport,
		responder: dnsResponder,
	}
}

// Run starts the DNS server and blocks until context is cancelled
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.responder); err != nil {
		return fmt.Errorf("failed to start UDP transport: %w", err)
	}

	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "UDP",
	}, "DNS server started")

	<-ctx.Done()

	log.Info(nil, "Shutdown initiated")

	if err := app.transport.Stop(); err != nil {
		log.Warn(map[string]any{"error": err.Error()}, "Error during transport shutdown")
	}

	log.Info(nil, "Graceful shutdown completed")
	return nil
}
