package catalog

import (
	"context"
	"fmt"
	"sort"
)

// maxCandidates is how many ranked laptops are handed to validation.
const maxCandidates = 3

// featureCount is the number of scored capability dimensions.
const featureCount = 5

// Ranker scores catalog laptops against a requirement profile.
type Ranker struct {
	store Store
}

// NewRanker creates a Ranker over the given store.
func NewRanker(store Store) *Ranker {
	return &Ranker{store: store}
}

// Rank returns up to three candidates ordered by descending match score.
// Laptops above budget are excluded outright; the remaining laptops earn one
// point per capability that meets or exceeds the required tier. Ties break
// by lower price.
func (r *Ranker) Rank(ctx context.Context, req Requirements) ([]Candidate, error) {
	laptops, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: rank: %w", err)
	}

	var candidates []Candidate
	for _, l := range laptops {
		if req.Budget > 0 && l.Price > req.Budget {
			continue
		}
		candidates = append(candidates, Candidate{Laptop: l, Score: score(l, req)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Laptop.Price < candidates[j].Laptop.Price
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates, nil
}

// score counts the capabilities where the laptop meets the required tier.
func score(l Laptop, req Requirements) int {
	n := 0
	if l.GPUIntensity.AtLeast(req.GPUIntensity) {
		n++
	}
	if l.DisplayQuality.AtLeast(req.DisplayQuality) {
		n++
	}
	if l.Portability.AtLeast(req.Portability) {
		n++
	}
	if l.Multitasking.AtLeast(req.Multitasking) {
		n++
	}
	if l.ProcessingSpeed.AtLeast(req.ProcessingSpeed) {
		n++
	}
	return n
}
