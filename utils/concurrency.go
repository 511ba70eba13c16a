package utils

import (
	"sync"
	"time"
)

// WorkerPool runs detail-page fetches with bounded concurrency and a
// minimum interval between starts, so no source sees request bursts.
type WorkerPool struct {
	rateLimitMs int
	semaphore   chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	lastStart   time.Time
}

// NewWorkerPool creates a WorkerPool with the given concurrency and rate limit.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	return &WorkerPool{
		rateLimitMs: rateLimitMs,
		semaphore:   make(chan struct{}, maxWorkers),
		lastStart:   time.Now(),
	}
}

// Submit enqueues a job for execution in the pool.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.enforceRateLimit()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) enforceRateLimit() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	minInterval := time.Duration(wp.rateLimitMs) * time.Millisecond
	elapsed := time.Since(wp.lastStart)
	if elapsed < minInterval {
		time.Sleep(minInterval - elapsed)
	}
	wp.lastStart = time.Now()
}

// VisitedSet is a thread-safe set of pages a scraper has already queued,
// keeping pagination loops from revisiting the same URL.
type VisitedSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *VisitedSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Contains returns true if the URL has already been visited.
func (s *VisitedSet) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of unique URLs tracked.
func (s *VisitedSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
