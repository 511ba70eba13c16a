// Package pipeline ingests raw extracted listings: it normalizes their
// fields, validates them, deduplicates them by URL within the run, and
// persists them with upsert semantics. Each record passes through the four
// stages exactly once and yields exactly one Outcome.
package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"

	"immo-scraper/models"
	"immo-scraper/schema"
	"immo-scraper/utils"
)

// Persister is the slice of the store the runner needs. The store keeps one
// connection per run; Upsert must therefore never be called concurrently,
// which Run guarantees.
type Persister interface {
	Upsert(sc schema.Schema, rec models.Record) error
}

// Identity derives a listing's stable identity from its canonical URL.
// Identical URLs always hash to the same 32-character digest, across runs
// and processes; the digest is both the dedup key and the row primary key.
func Identity(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Run owns the per-run shared state: the seen-identity set and the store
// connection. Both live exactly as long as the run and are only touched
// under the single-writer lock, so producers may call Process from
// multiple goroutines.
type Run struct {
	schema schema.Schema
	store  Persister
	logger *utils.Logger
	now    func() time.Time

	mu     sync.Mutex
	seen   map[string]struct{}
	counts [3]int
}

// NewRun creates a run for one source schema against an open store.
func NewRun(sc schema.Schema, store Persister, logger *utils.Logger) *Run {
	return &Run{
		schema: sc,
		store:  store,
		logger: logger,
		now:    time.Now,
		seen:   make(map[string]struct{}),
	}
}

// Process takes one raw record through Normalize, Validate, Deduplicate,
// and Persist, short-circuiting into a terminal Outcome at the first stage
// that drops it. Validation and duplicate drops are ordinary outcomes;
// only storage failures carry an error, and they never stop the run.
func (r *Run) Process(raw models.RawRecord) Outcome {
	rec := Normalize(raw, r.schema)

	if reason, ok := r.validate(rec); !ok {
		r.logger.Debug("[pipeline] %s rejected: %s", r.schema.Source, reason)
		return r.tally(Rejected(reason))
	}

	url, _ := rec.Text("url")

	r.mu.Lock()
	defer r.mu.Unlock()

	id := Identity(url)
	if _, dup := r.seen[id]; dup {
		r.logger.Debug("[pipeline] %s duplicate url skipped: %s", r.schema.Source, url)
		return r.tallyLocked(Rejected(ReasonDuplicateURL))
	}
	r.seen[id] = struct{}{}
	rec["id"] = id

	if err := r.store.Upsert(r.schema, rec); err != nil {
		r.logger.Error("[pipeline] %s persist failed for %s: %v", r.schema.Source, url, err)
		return r.tallyLocked(Failed(err))
	}

	r.logger.Debug("[pipeline] %s persisted %s as %s", r.schema.Source, url, id)
	return r.tallyLocked(Persisted(id))
}

// validate enforces the schema's required-field contract and stamps the
// ingestion time on accepted records.
func (r *Run) validate(rec models.Record) (string, bool) {
	for _, name := range r.schema.Required() {
		if name == "id" {
			continue // attached by the deduplicator
		}
		if _, ok := rec[name]; !ok {
			return MissingFieldReason(name), false
		}
	}
	rec["scraped_at"] = r.now().UTC()
	return "", true
}

func (r *Run) tally(o Outcome) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tallyLocked(o)
}

func (r *Run) tallyLocked(o Outcome) Outcome {
	r.counts[o.Status]++
	return o
}

// Summary returns how many records reached each terminal state so far.
func (r *Run) Summary() (persisted, rejected, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[StatusPersisted], r.counts[StatusRejected], r.counts[StatusFailed]
}
