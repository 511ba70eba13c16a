package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"immo-scraper/models"
)

// CSVWriter snapshots raw (uncoerced) records to a CSV file before the
// pipeline touches them, so a bad run can be replayed from disk.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
	fields []string
}

// NewCSVWriter creates (or truncates) the CSV file at the given path with
// one column per field name. Intermediate directories are created
// automatically.
func NewCSVWriter(path string, fields []string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w, fields: fields}, nil
}

// WriteRaw appends one row per record. Multi-valued fields are joined with
// " | " so nothing the extractor saw is lost; absent fields stay empty.
func (c *CSVWriter) WriteRaw(records []models.RawRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	row := make([]string, len(c.fields))
	for _, rec := range records {
		for i, name := range c.fields {
			row[i] = strings.Join(rec.Get(name).Values(), " | ")
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
