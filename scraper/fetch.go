// Package scraper holds the fetch layer shared by the source spiders.
// Spiders turn fetched pages into RawRecords; everything after that is the
// pipeline's problem.
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// userAgents is rotated across requests so no source sees a constant UA.
var userAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
}

// Fetcher turns a URL into a parsed document.
type Fetcher interface {
	Fetch(pageURL string) (*goquery.Document, error)
}

// HTTPFetcher fetches pages with a plain HTTP client. Good enough for the
// sources that serve static HTML.
type HTTPFetcher struct {
	client  *http.Client
	referer string
}

// NewHTTPFetcher creates an HTTPFetcher sending the given Referer header.
func NewHTTPFetcher(referer string) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		referer: referer,
	}
}

// Fetch downloads and parses one page.
func (f *HTTPFetcher) Fetch(pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// BrowserFetcher renders pages in headless Chrome before parsing. Used for
// sources whose anti-bot layer rejects plain HTTP clients.
type BrowserFetcher struct {
	chromeBin string
	timeout   time.Duration
}

// NewBrowserFetcher creates a BrowserFetcher. chromeBin may be empty, in
// which case the binary is looked up on PATH.
func NewBrowserFetcher(chromeBin string) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &BrowserFetcher{chromeBin: chromeBin, timeout: 60 * time.Second}
}

// Fetch navigates to the page, waits for the body, and parses the rendered
// HTML.
func (f *BrowserFetcher) Fetch(pageURL string) (*goquery.Document, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgents[0]),
	)
	if f.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(f.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, f.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch: render %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// findChromeBinary probes the usual binary names on PATH.
func findChromeBinary() string {
	for _, name := range []string{
		"google-chrome", "google-chrome-stable", "chromium", "chromium-browser",
	} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// Resolve joins a possibly relative href against the page it appeared on.
func Resolve(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
