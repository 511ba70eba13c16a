// Package coinafrique crawls the sn.coinafrique.com real-estate category
// and emits one RawRecord per listing detail page.
package coinafrique

import (
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"immo-scraper/config"
	"immo-scraper/models"
	"immo-scraper/scraper"
	"immo-scraper/utils"
)

const source = "coinafrique"

// Scraper drives pagination and detail-page extraction for coinafrique.
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

// New creates a ready-to-use coinafrique Scraper.
func New(cfg *config.Config, src config.Source, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		src:     src,
		logger:  logger,
		fetch:   scraper.NewHTTPFetcher("https://sn.coinafrique.com"),
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewVisitedSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape walks listing pages up to the configured limit, fanning detail
// fetches out over the worker pool, and returns every extracted record.
func (s *Scraper) Scrape() ([]models.RawRecord, error) {
	s.logger.Info("[coinafrique] Starting crawl at %s (max %d pages)",
		s.src.StartURL, s.src.MaxPages)

	page := s.src.StartURL
	for i := 0; i < s.src.MaxPages && page != ""; i++ {
		var doc *goquery.Document
		err := s.retry.Do("coinafrique listing page", func() error {
			var ferr error
			doc, ferr = s.fetch.Fetch(page)
			return ferr
		})
		if err != nil {
			s.pool.Wait()
			return s.records, err
		}

		links, next := parseListing(doc, page)
		s.logger.Info("[coinafrique] Page %d: %d listings", i+1, len(links))
		for _, link := range links {
			if !s.visited.Add(link) {
				continue
			}
			s.scrapeDetail(link)
		}
		page = next
	}

	s.pool.Wait()
	s.logger.Info("[coinafrique] Crawl done: %d records", len(s.records))
	return s.records, nil
}

func (s *Scraper) scrapeDetail(link string) {
	s.pool.Submit(func() {
		var doc *goquery.Document
		err := s.retry.Do("coinafrique detail page", func() error {
			var ferr error
			doc, ferr = s.fetch.Fetch(link)
			return ferr
		})
		if err != nil {
			s.logger.Warn("[coinafrique] Skipping %s: %v", link, err)
			return
		}

		rec := parseDetail(doc, link)
		s.mu.Lock()
		s.records = append(s.records, rec)
		s.mu.Unlock()
	})
}
