package catalog

import (
	"context"
	"errors"
	"testing"
)

// fakeStore is an in-memory Store for ranker tests.
type fakeStore struct {
	laptops []Laptop
	err     error
}

func (f *fakeStore) List(_ context.Context) ([]Laptop, error) { return f.laptops, f.err }

func (f *fakeStore) Get(_ context.Context, id int64) (Laptop, error) {
	for _, l := range f.laptops {
		if l.ID == id {
			return l, nil
		}
	}
	return Laptop{}, ErrNotFound
}

func (f *fakeStore) Upsert(_ context.Context, l Laptop) (int64, error) {
	f.laptops = append(f.laptops, l)
	return int64(len(f.laptops)), nil
}

func (f *fakeStore) Count(_ context.Context) (int, error) { return len(f.laptops), f.err }

func allHigh(budget int) Requirements {
	return Requirements{
		GPUIntensity:    TierHigh,
		DisplayQuality:  TierHigh,
		Portability:     TierHigh,
		Multitasking:    TierHigh,
		ProcessingSpeed: TierHigh,
		Budget:          budget,
	}
}

func TestRank_BudgetFilterAndOrdering(t *testing.T) {
	t.Parallel()

	store := &fakeStore{laptops: []Laptop{
		{Brand: "A", Model: "cheap-weak", Price: 400, GPUIntensity: TierLow, DisplayQuality: TierLow, Portability: TierLow, Multitasking: TierLow, ProcessingSpeed: TierLow},
		{Brand: "B", Model: "strong", Price: 900, GPUIntensity: TierHigh, DisplayQuality: TierHigh, Portability: TierHigh, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
		{Brand: "C", Model: "over-budget", Price: 2000, GPUIntensity: TierHigh, DisplayQuality: TierHigh, Portability: TierHigh, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
		{Brand: "D", Model: "mid", Price: 700, GPUIntensity: TierHigh, DisplayQuality: TierMedium, Portability: TierMedium, Multitasking: TierHigh, ProcessingSpeed: TierMedium},
	}}

	cands, err := NewRanker(store).Rank(context.Background(), allHigh(1000))
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want 3", len(cands))
	}
	if cands[0].Laptop.Model != "strong" || cands[0].Score != 5 {
		t.Errorf("top candidate = %s score %d, want strong score 5", cands[0].Laptop.Model, cands[0].Score)
	}
	for _, c := range cands {
		if c.Laptop.Model == "over-budget" {
			t.Error("over-budget laptop was not filtered")
		}
	}
}

func TestRank_TieBreaksByPrice(t *testing.T) {
	t.Parallel()

	store := &fakeStore{laptops: []Laptop{
		{Brand: "A", Model: "pricier", Price: 900, GPUIntensity: TierHigh, DisplayQuality: TierHigh, Portability: TierHigh, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
		{Brand: "B", Model: "cheaper", Price: 800, GPUIntensity: TierHigh, DisplayQuality: TierHigh, Portability: TierHigh, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
	}}

	cands, err := NewRanker(store).Rank(context.Background(), allHigh(1000))
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if cands[0].Laptop.Model != "cheaper" {
		t.Errorf("top candidate = %s, want cheaper on tie", cands[0].Laptop.Model)
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	t.Parallel()

	cands, err := NewRanker(&fakeStore{}).Rank(context.Background(), allHigh(1000))
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("got %d candidates from empty catalog, want 0", len(cands))
	}
}

func TestRank_StoreError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("db gone")
	_, err := NewRanker(&fakeStore{err: wantErr}).Rank(context.Background(), allHigh(1000))
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	l := Laptop{GPUIntensity: TierMedium, DisplayQuality: TierHigh, Portability: TierLow, Multitasking: TierMedium, ProcessingSpeed: TierHigh}
	req := Requirements{GPUIntensity: TierMedium, DisplayQuality: TierMedium, Portability: TierMedium, Multitasking: TierHigh, ProcessingSpeed: TierHigh}

	// gpu meets, display exceeds, portability misses, multitasking misses, speed meets.
	if got := score(l, req); got != 3 {
		t.Errorf("score = %d, want 3", got)
	}
}

func TestTierAtLeast_UnknownValue(t *testing.T) {
	t.Parallel()

	if Tier("ultra").AtLeast(TierLow) {
		t.Error("unknown tier should never satisfy a requirement")
	}
	if !TierLow.AtLeast(Tier("")) {
		t.Error("any known tier should satisfy an unset requirement")
	}
}
