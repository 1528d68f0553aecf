package cron

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/lverne/lapwise/internal/catalog"
)

// fakeSessions implements SessionStore.
type fakeSessions struct {
	gotMaxIdle time.Duration
	pruned     int
}

func (f *fakeSessions) Prune(maxIdle time.Duration) int {
	f.gotMaxIdle = maxIdle
	return f.pruned
}

// fakeCatalog implements catalog.Store with an in-memory slice.
type fakeCatalog struct {
	laptops []catalog.Laptop
}

func (f *fakeCatalog) List(context.Context) ([]catalog.Laptop, error) { return f.laptops, nil }
func (f *fakeCatalog) Get(context.Context, int64) (catalog.Laptop, error) {
	return catalog.Laptop{}, catalog.ErrNotFound
}
func (f *fakeCatalog) Upsert(_ context.Context, l catalog.Laptop) (int64, error) {
	f.laptops = append(f.laptops, l)
	return int64(len(f.laptops)), nil
}
func (f *fakeCatalog) Count(context.Context) (int, error) { return len(f.laptops), nil }

func TestSessionPruneJob(t *testing.T) {
	t.Parallel()

	store := &fakeSessions{pruned: 2}
	j := &SessionPruneJob{Store: store, MaxIdle: 30 * time.Minute, Logger: slog.Default()}

	if j.Name() != "session_prune" {
		t.Errorf("name = %q", j.Name())
	}
	if j.Schedule() != "*/5 * * * *" {
		t.Errorf("schedule = %q", j.Schedule())
	}
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.gotMaxIdle != 30*time.Minute {
		t.Errorf("maxIdle = %v, want 30m", store.gotMaxIdle)
	}
}

func TestCatalogReseedJob_EmptyCatalog(t *testing.T) {
	t.Parallel()

	store := &fakeCatalog{}
	j := &CatalogReseedJob{Store: store, Logger: slog.Default()}

	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.laptops) == 0 {
		t.Error("empty catalog was not reseeded")
	}
}

func TestCatalogReseedJob_NonEmptyCatalogUntouched(t *testing.T) {
	t.Parallel()

	store := &fakeCatalog{laptops: []catalog.Laptop{{Brand: "ASUS", Model: "X", Price: 500}}}
	j := &CatalogReseedJob{Store: store, Logger: slog.Default()}

	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.laptops) != 1 {
		t.Errorf("catalog size = %d, want 1 (untouched)", len(store.laptops))
	}
}
