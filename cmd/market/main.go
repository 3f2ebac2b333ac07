package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Leeroy133/seller-apis/config"
	"github.com/Leeroy133/seller-apis/internal/market/app"
	"github.com/Leeroy133/seller-apis/internal/remnants"
	"github.com/Leeroy133/seller-apis/metrics"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to yaml config")
	flag.Parse()

	log.SetPrefix("MARKET SYNC | ")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %s", err)
		os.Exit(2)
	}
	creds, err := config.LoadCredentials()
	if err != nil {
		log.Printf("Failed to load credentials: %s", err)
		os.Exit(2)
	}
	if err := creds.ValidateMarket(); err != nil {
		log.Printf("%s", err)
		os.Exit(2)
	}

	metrics.Serve(cfg.Metrics.Addr)

	source, err := remnants.NewSource(cfg.Source, os.Stdout)
	if err != nil {
		log.Printf("Failed to create remnants source: %s", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := app.NewMarketServer(cfg, creds, source, os.Stdout)
	reports, err := server.Run(ctx)
	for _, report := range reports {
		report.Log(logWriter{})
	}
	if err != nil {
		log.Printf("Sync failed: %s", err)
		os.Exit(1)
	}
}

// logWriter адаптирует стандартный лог под logger.Logger для отчёта.
type logWriter struct{}

func (logWriter) Log(format string, v ...interface{}) { log.Printf(format, v...) }
func (logWriter) SetPrefix(prefix string)             { log.SetPrefix(prefix) }
