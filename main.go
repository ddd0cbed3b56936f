package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/robert-malhotra/go-stac-bridge/api"
	"github.com/robert-malhotra/go-stac-bridge/auth"
	"github.com/robert-malhotra/go-stac-bridge/catalog"
	"github.com/robert-malhotra/go-stac-bridge/config"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "path to the YAML configuration file",
	Value:   "config.yml",
}

func main() {
	cmd := &cli.Command{
		Name:   "stac-bridge",
		Usage:  "STAC API bridge over a native geospatial catalog service",
		Flags:  []cli.Flag{configFlag},
		Action: serve,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String(configFlag.Name))
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cat, err := newCatalogClient(cfg.Catalog, log)
	if err != nil {
		return err
	}

	handler := api.NewHandler(cat, log, api.NewMetrics(prometheus.DefaultRegisterer),
		cfg.Service.PublicURL, cfg.Service.DefaultPageSize, cfg.Service.MaxPageSize)
	router := api.NewRouter(handler, log, cfg.Service.Debug)

	server := &http.Server{
		Addr:         cfg.Service.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", server.Addr),
			zap.String("public_url", cfg.Service.PublicURL),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newCatalogClient(cfg config.CatalogConfig, log *zap.Logger) (*catalog.Client, error) {
	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &auth.BearerTokenTransport{Token: cfg.Token},
	}

	opts := []catalog.ClientOption{
		catalog.WithBaseURL(cfg.URL),
		catalog.WithHTTPClient(httpClient),
		catalog.WithLogger(api.NewCatalogLogger(log)),
	}
	if cfg.CloudTag != "" {
		opts = append(opts, catalog.WithCloudTag(cfg.CloudTag))
	}
	return catalog.New(opts...)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
