package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver registration
)

// defaultBusyTimeout is the SQLite busy timeout in milliseconds.
const defaultBusyTimeout = 5000

const schema = `
CREATE TABLE IF NOT EXISTS laptops (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	brand            TEXT NOT NULL,
	model            TEXT NOT NULL,
	price            INTEGER NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	gpu_intensity    TEXT NOT NULL,
	display_quality  TEXT NOT NULL,
	portability      TEXT NOT NULL,
	multitasking     TEXT NOT NULL,
	processing_speed TEXT NOT NULL,
	UNIQUE (brand, model)
);
CREATE INDEX IF NOT EXISTS idx_laptops_price ON laptops (price);
`

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface guard.
var _ Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the catalog database at the given path.
// The database uses WAL mode, a 5 s busy timeout, and a single connection
// (SQLite serialises writes). The schema is migrated automatically.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("catalog: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: enable WAL: %w", err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d", defaultBusyTimeout)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: set busy_timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all laptops ordered by ID.
func (s *SQLiteStore) List(ctx context.Context) ([]Laptop, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, brand, model, price, description,
		       gpu_intensity, display_quality, portability, multitasking, processing_speed
		FROM laptops ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list laptops: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanLaptops(rows)
}

// Get returns the laptop with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (Laptop, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, brand, model, price, description,
		       gpu_intensity, display_quality, portability, multitasking, processing_speed
		FROM laptops WHERE id = ?`, id)

	var l Laptop
	err := row.Scan(&l.ID, &l.Brand, &l.Model, &l.Price, &l.Description,
		&l.GPUIntensity, &l.DisplayQuality, &l.Portability, &l.Multitasking, &l.ProcessingSpeed)
	if err == sql.ErrNoRows {
		return Laptop{}, ErrNotFound
	}
	if err != nil {
		return Laptop{}, fmt.Errorf("catalog: get laptop %d: %w", id, err)
	}
	return l, nil
}

// Upsert inserts or replaces a laptop keyed by (brand, model).
func (s *SQLiteStore) Upsert(ctx context.Context, l Laptop) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO laptops
			(brand, model, price, description,
			 gpu_intensity, display_quality, portability, multitasking, processing_speed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (brand, model) DO UPDATE SET
			price = excluded.price,
			description = excluded.description,
			gpu_intensity = excluded.gpu_intensity,
			display_quality = excluded.display_quality,
			portability = excluded.portability,
			multitasking = excluded.multitasking,
			processing_speed = excluded.processing_speed`,
		l.Brand, l.Model, l.Price, l.Description,
		string(l.GPUIntensity), string(l.DisplayQuality), string(l.Portability),
		string(l.Multitasking), string(l.ProcessingSpeed))
	if err != nil {
		return 0, fmt.Errorf("catalog: upsert laptop: %w", err)
	}
	return res.LastInsertId()
}

// Count returns the number of laptops in the catalog.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM laptops").Scan(&count); err != nil {
		return 0, fmt.Errorf("catalog: count laptops: %w", err)
	}
	return count, nil
}

func scanLaptops(rows *sql.Rows) ([]Laptop, error) {
	var laptops []Laptop
	for rows.Next() {
		var l Laptop
		if err := rows.Scan(&l.ID, &l.Brand, &l.Model, &l.Price, &l.Description,
			&l.GPUIntensity, &l.DisplayQuality, &l.Portability,
			&l.Multitasking, &l.ProcessingSpeed); err != nil {
			return nil, fmt.Errorf("catalog: scan laptop: %w", err)
		}
		laptops = append(laptops, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate laptops: %w", err)
	}
	return laptops, nil
}
