// Package logerdakar crawls www.loger-dakar.com listings. Unlike the other
// sources, the listing card carries the title, so it is threaded through to
// the detail record.
package logerdakar

import (
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"immo-scraper/config"
	"immo-scraper/models"
	"immo-scraper/scraper"
	"immo-scraper/utils"
)

const source = "loger_dakar"

// Scraper drives pagination and detail-page extraction for loger-dakar.
type Scraper struct {
	cfg     *config.Config
	src     config.Source
	logger  *utils.Logger
	fetch   scraper.Fetcher
	pool    *utils.WorkerPool
	visited *utils.VisitedSet
	retry   *utils.RetryConfig

	mu      sync.Mutex
	records []models.RawRecord
}

// New creates a ready-to-use loger-dakar Scraper.
func New(cfg *config.Config, src config.Source, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		src:     src,
		logger:  logger,
		fetch:   scraper.NewHTTPFetcher("https://www.loger-dakar.com"),
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewVisitedSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape walks listing pages up to the configured limit and returns every
// extracted record.
func (s *Scraper) Scrape() ([]models.RawRecord, error) {
	s.logger.Info("[loger-dakar] Starting crawl at %s (max %d pages)",
		s.src.StartURL, s.src.MaxPages)

	page := s.src.StartURL
	for i := 0; i < s.src.MaxPages && page != ""; i++ {
		var doc *goquery.Document
		err := s.retry.Do("loger-dakar listing page", func() error {
			var ferr error
			doc, ferr = s.fetch.Fetch(page)
			return ferr
		})
		if err != nil {
			s.pool.Wait()
			return s.records, err
		}

		cards, next := parseListing(doc, page)
		s.logger.Info("[loger-dakar] Page %d: %d listings", i+1, len(cards))
		for _, card := range cards {
			if !s.visited.Add(card.href) {
				continue
			}
			s.scrapeDetail(card)
		}
		page = next
	}

	s.pool.Wait()
	s.logger.Info("[loger-dakar] Crawl done: %d records", len(s.records))
	return s.records, nil
}

func (s *Scraper) scrapeDetail(card listingCard) {
	s.pool.Submit(func() {
		var doc *goquery.Document
		err := s.retry.Do("loger-dakar detail page", func() error {
			var ferr error
			doc, ferr = s.fetch.Fetch(card.href)
			return ferr
		})
		if err != nil {
			s.logger.Warn("[loger-dakar] Skipping %s: %v", card.href, err)
			return
		}

		rec := parseDetail(doc, card)
		s.mu.Lock()
		s.records = append(s.records, rec)
		s.mu.Unlock()
	})
}
