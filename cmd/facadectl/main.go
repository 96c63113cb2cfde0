// Command facadectl runs facade operations against the configured ERP from
// the command line and prints the results as JSON.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/erp/odoo-facade/internal/bootstrap"
	"github.com/erp/odoo-facade/internal/infrastructure/config"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args, loadBackend, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// loadBackend wires the services the same way the server does. Logs go to
// stderr so stdout stays valid JSON.
func loadBackend(_ context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logCfg := cfg.Log.Logger()
	logCfg.Output = "stderr"
	if cfg.Log.Level == "info" {
		logCfg.Level = "warn"
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	services, err := bootstrap.NewServices(cfg, noop.NewMeterProvider().Meter("facadectl"), log)
	if err != nil {
		return nil, err
	}
	return &backend{
		status:     services.Sessions,
		customers:  services.Customers,
		deliveries: services.Deliveries,
		orders:     services.Orders,
	}, nil
}
