// Package expatdakar crawls www.expat-dakar.com/immobilier. The site's
// anti-bot layer rejects plain HTTP clients, so pages are rendered in
// headless Chrome before extraction.
package expatdakar

import (
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"immo-scraper/config"
	"immo-scraper/models"
	"immo-scraper/scraper"
	"immo-scraper/utils"
)

const source = "expat_dakar"

// Scraper drives pagination and detail-page extraction for expat-dakar.
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

// New creates a ready-to-use expat-dakar Scraper.
func New(cfg *config.Config, src config.Source, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		src:     src,
		logger:  logger,
		fetch:   scraper.NewBrowserFetcher(cfg.ChromeBin),
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
	s.logger.Info("[expat-dakar] Starting crawl at %s (max %d pages)",
		s.src.StartURL, s.src.MaxPages)

	page := s.src.StartURL
	for i := 0; i < s.src.MaxPages && page != ""; i++ {
		var doc *goquery.Document
		err := s.retry.Do("expat-dakar listing page", func() error {
			var ferr error
			doc, ferr = s.fetch.Fetch(page)
			return ferr
		})
		if err != nil {
			s.pool.Wait()
			return s.records, err
		}

		links, next := parseListing(doc, page)
		s.logger.Info("[expat-dakar] Page %d: %d listings", i+1, len(links))
		for _, link := range links {
			if !s.visited.Add(link) {
				continue
			}
			s.scrapeDetail(link)
		}
		page = next
	}

	s.pool.Wait()
	s.logger.Info("[expat-dakar] Crawl done: %d records", len(s.records))
	return s.records, nil
}

func (s *Scraper) scrapeDetail(link string) {
	s.pool.Submit(func() {
		var doc *goquery.Document
		err := s.retry.Do("expat-dakar detail page", func() error {
			var ferr error
			doc, ferr = s.fetch.Fetch(link)
			return ferr
		})
		if err != nil {
			s.logger.Warn("[expat-dakar] Skipping %s: %v", link, err)
			return
		}

		rec := parseDetail(doc, link)
		s.mu.Lock()
		s.records = append(s.records, rec)
		s.mu.Unlock()
	})
}
