package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"immo-scraper/models"
	"immo-scraper/schema"
)

// Store holds the single relational connection a run writes through.
// Opened once at run start, closed at run end; every record of the run
// goes through it one at a time.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the relational store. driver is "postgres" or "sqlite";
// the DSN shape follows the driver. A failure here is fatal to the run —
// the caller must not feed any record into a pipeline without a store.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// one writer, which is all the pipeline ever needs
		db.SetMaxOpenConns(1)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping failed after retries: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close releases the connection. Safe to defer on every exit path.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema's table if it does not exist yet.
func (s *Store) Migrate(sc schema.Schema) error {
	defs := make([]string, 0, len(sc.Columns))
	for _, col := range sc.Columns {
		def := col.Name + " " + s.columnType(col)
		if col.PrimaryKey {
			def += " PRIMARY KEY"
		}
		if col.Unique {
			def += " UNIQUE"
		}
		defs = append(defs, def)
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		sc.Table, strings.Join(defs, ",\n\t"))
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("storage: migrate %s: %w", sc.Table, err)
	}
	return nil
}

func (s *Store) columnType(col schema.Column) string {
	switch col.Kind {
	case schema.Integer:
		return "INTEGER"
	case schema.Real:
		return "REAL"
	case schema.Timestamp:
		return "TIMESTAMP"
	default:
		if col.PrimaryKey {
			return "VARCHAR(32)"
		}
		return "TEXT"
	}
}

// Upsert writes one normalized record, keyed by the schema's conflict
// column. A new URL inserts a full row; a known URL refreshes only the
// schema's mutable set (price, scraped_at), leaving every other stored
// value untouched. The statement runs in its own transaction and is rolled
// back on failure, so a bad record never leaves a partial row behind.
func (s *Store) Upsert(sc schema.Schema, rec models.Record) error {
	cols := make([]string, 0, len(sc.Columns))
	marks := make([]string, 0, len(sc.Columns))
	args := make([]any, 0, len(sc.Columns))

	for _, col := range sc.Columns {
		cols = append(cols, col.Name)
		marks = append(marks, s.placeholder(len(args)+1))
		if v, ok := rec[col.Name]; ok {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}

	updates := make([]string, 0, len(sc.UpdateSet))
	for _, name := range sc.UpdateSet {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", name, name))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		sc.Table,
		strings.Join(cols, ", "),
		strings.Join(marks, ", "),
		sc.ConflictKey,
		strings.Join(updates, ", "),
	)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("storage: upsert %s: %w", sc.Table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit %s: %w", sc.Table, err)
	}
	return nil
}

func (s *Store) placeholder(n int) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// FetchAll reads every stored row of the schema's table back as normalized
// records, feeding the insight report and the API.
func (s *Store) FetchAll(sc schema.Schema) ([]models.Record, error) {
	cols := make([]string, 0, len(sc.Columns))
	for _, col := range sc.Columns {
		cols = append(cols, col.Name)
	}

	rows, err := s.db.Query(fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), sc.Table, sc.ConflictKey))
	if err != nil {
		return nil, fmt.Errorf("storage: fetch %s: %w", sc.Table, err)
	}
	defer rows.Close()

	var recs []models.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("storage: scan %s: %w", sc.Table, err)
		}

		rec := make(models.Record, len(cols))
		for i, name := range cols {
			if v := coerce(vals[i]); v != nil {
				rec[name] = v
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// coerce folds driver-specific scan types back onto the Record value set.
func coerce(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return x
	}
}
