package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ukparliament/outage-importer/pkg/alerts"
	"github.com/ukparliament/outage-importer/pkg/api"
	"github.com/ukparliament/outage-importer/pkg/config"
	"github.com/ukparliament/outage-importer/pkg/importer"
	"github.com/ukparliament/outage-importer/pkg/lifecycle"
	"github.com/ukparliament/outage-importer/pkg/pingdom"
	"github.com/ukparliament/outage-importer/pkg/stream"
	"github.com/ukparliament/outage-importer/pkg/timeseries"
)

func main() {
	configPath := flag.String("config", "/etc/outage-importer/importer.json", "Path to config file")
	once := flag.Bool("once", false, "Run a single import pass and exit")
	flag.Parse()

	// Optional; the token can come straight from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: failed to load .env: %v", err)
	}

	var cfg importer.Config
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	token := os.Getenv("PINGDOM_API_TOKEN")
	if token == "" {
		log.Fatal("PINGDOM_API_TOKEN is not set")
	}

	source, err := pingdom.NewClient(pingdom.Config{
		APIURL: cfg.APIURL,
		Token:  token,
	})
	if err != nil {
		log.Fatalf("Failed to create Pingdom client: %v", err)
	}

	store, err := timeseries.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open interval store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	var alerters []alerts.AlertService
	for _, webhook := range cfg.Webhooks {
		if webhook.Enabled {
			alerters = append(alerters, alerts.NewWebhookAlerter(webhook))
		}
	}

	ctx := context.Background()

	hub := stream.NewHub()
	go hub.Run(ctx)

	svc, err := importer.New(cfg, source, store, alerters, hub)
	if err != nil {
		log.Fatalf("Failed to create importer: %v", err)
	}

	if *once {
		summary, err := svc.Run(ctx)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}

		log.Printf("INFO: run %s finished: %d endpoints, %d written, %d discarded, %d truncated, %d failed",
			summary.RunID, summary.Endpoints, summary.Written, summary.Discarded, summary.Truncated, summary.Failed)

		return
	}

	apiServer := api.NewServer(store, cfg.Measurement, svc, hub)

	if err := lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ListenAddr:  cfg.ListenAddr,
		ServiceName: "outage-importer",
		Service:     svc,
		HTTPServer:  apiServer,
	}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
