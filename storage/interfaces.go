package storage

import (
	"immo-scraper/models"
	"immo-scraper/schema"
)

// RecordStore is the interface any relational backend must satisfy.
type RecordStore interface {
	Migrate(sc schema.Schema) error
	Upsert(sc schema.Schema, rec models.Record) error
	FetchAll(sc schema.Schema) ([]models.Record, error)
	Close() error
}

// RawRecordWriter is the interface for snapshotting unprocessed extractions.
type RawRecordWriter interface {
	WriteRaw(records []models.RawRecord) error
	Close() error
}
