package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"immo-scraper/api"
	"immo-scraper/config"
	"immo-scraper/models"
	"immo-scraper/pipeline"
	"immo-scraper/schema"
	"immo-scraper/scraper/coinafrique"
	"immo-scraper/scraper/expatdakar"
	"immo-scraper/scraper/logerdakar"
	"immo-scraper/services"
	"immo-scraper/storage"
	"immo-scraper/utils"
)

// sourceScraper is what every site-specific scraper looks like to main.
type sourceScraper interface {
	Scrape() ([]models.RawRecord, error)
}

func main() {
	serve := flag.Bool("serve", false, "serve the read-only API over stored data instead of crawling")
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Immobilier Scraping System starting ===")
	logger.Info("Config — driver: %s | concurrency: %d | rate: %dms | retries: %d",
		cfg.Driver, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.MaxRetries)

	store, err := storage.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		logger.Error("Failed to open storage: %v", err)
		logger.Error("Make sure the database is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	if *serve {
		if err := api.NewServer(store, logger).ListenAndServe(cfg.APIAddr); err != nil {
			logger.Error("API server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		logger.Error("Failed to load sources: %v", err)
		os.Exit(1)
	}

	var summaries []models.ListingSummary
	for _, src := range sources.Enabled() {
		sc, _ := schema.ByName(src.Schema) // validated at load

		if err := store.Migrate(sc); err != nil {
			logger.Error("Migration for %s failed: %v", sc.Table, err)
			os.Exit(1)
		}

		records := crawl(cfg, src, sc, logger)
		if len(records) == 0 {
			logger.Warn("No records extracted from %s", src.Name)
			continue
		}

		snapshotRaw(cfg, src, sc, records, logger)

		run := pipeline.NewRun(sc, store, logger)
		for _, raw := range records {
			run.Process(raw)
		}
		persisted, rejected, failed := run.Summary()
		logger.Info("[%s] Run done — persisted: %d | rejected: %d | failed: %d",
			src.Name, persisted, rejected, failed)

		rows, err := store.FetchAll(sc)
		if err != nil {
			logger.Error("Failed to fetch %s rows for insights: %v", sc.Table, err)
			continue
		}
		for _, rec := range rows {
			summaries = append(summaries, services.Summarize(rec))
		}
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(summaries))

	fmt.Printf("  Done. Raw CSVs → %s | Clean data → %s\n\n", cfg.CSVOutputDir, cfg.Driver)
}

func crawl(cfg *config.Config, src config.Source, sc schema.Schema, logger *utils.Logger) []models.RawRecord {
	var s sourceScraper
	switch sc.Source {
	case "coinafrique":
		s = coinafrique.New(cfg, src, logger)
	case "expat_dakar":
		s = expatdakar.New(cfg, src, logger)
	case "loger_dakar":
		s = logerdakar.New(cfg, src, logger)
	default:
		logger.Error("No scraper registered for schema %s", sc.Source)
		return nil
	}

	records, err := s.Scrape()
	if err != nil {
		logger.Error("Crawl of %s stopped early: %v", src.Name, err)
	}
	return records
}

// snapshotRaw dumps the uncoerced extractions to CSV before ingestion.
func snapshotRaw(cfg *config.Config, src config.Source, sc schema.Schema, records []models.RawRecord, logger *utils.Logger) {
	fields := make([]string, 0, len(sc.Columns))
	for _, col := range sc.Columns {
		if col.Name == "id" || col.Name == "scraped_at" {
			continue
		}
		fields = append(fields, col.Name)
	}

	path := filepath.Join(cfg.CSVOutputDir, src.Name+"_raw.csv")
	w, err := storage.NewCSVWriter(path, fields)
	if err != nil {
		logger.Warn("CSV snapshot for %s skipped: %v", src.Name, err)
		return
	}
	defer w.Close()

	if err := w.WriteRaw(records); err != nil {
		logger.Warn("CSV snapshot for %s failed: %v", src.Name, err)
		return
	}
	logger.Info("[%s] Raw snapshot saved to %s", src.Name, path)
}
