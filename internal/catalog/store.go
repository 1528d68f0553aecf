package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a laptop does not exist in the store.
var ErrNotFound = errors.New("catalog: laptop not found")

// Store provides access to the persistent laptop catalog.
// Implementations must be safe for concurrent use.
type Store interface {
	// List returns all laptops in the catalog.
	List(ctx context.Context) ([]Laptop, error)

	// Get returns the laptop with the given ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (Laptop, error)

	// Upsert inserts or replaces a laptop and returns its ID.
	Upsert(ctx context.Context, l Laptop) (int64, error)

	// Count returns the number of laptops in the catalog.
	Count(ctx context.Context) (int, error)
}
