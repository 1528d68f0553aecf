// Package catalog holds the laptop catalog: persistent storage, the ranking
// of laptops against a user requirement profile, and validation of ranked
// candidates before they are shown to a user.
package catalog

import "fmt"

// Tier grades how strongly a laptop serves a capability, and how strongly
// a user needs it. Tiers are ordered: low < medium < high.
type Tier string

// Tier constants.
const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// rank returns the ordinal of the tier. Unknown values rank below low so
// malformed data never satisfies a requirement.
func (t Tier) rank() int {
	switch t {
	case TierLow:
		return 1
	case TierMedium:
		return 2
	case TierHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the tier is one of the known grades.
func (t Tier) Valid() bool {
	return t.rank() > 0
}

// AtLeast reports whether the tier meets or exceeds the required tier.
func (t Tier) AtLeast(required Tier) bool {
	return t.rank() >= required.rank()
}

// Requirements is the structured requirement profile extracted from a
// confirmed user intent. Every field is derivable from the user's own words.
type Requirements struct {
	GPUIntensity    Tier `json:"gpu_intensity"`
	DisplayQuality  Tier `json:"display_quality"`
	Portability     Tier `json:"portability"`
	Multitasking    Tier `json:"multitasking"`
	ProcessingSpeed Tier `json:"processing_speed"`
	Budget          int  `json:"budget"`
}

// Validate reports whether the profile is complete enough to rank against:
// every capability tier must be a known grade and the budget positive.
func (r Requirements) Validate() error {
	for _, t := range []Tier{r.GPUIntensity, r.DisplayQuality, r.Portability, r.Multitasking, r.ProcessingSpeed} {
		if !t.Valid() {
			return fmt.Errorf("catalog: invalid tier %q in requirements", t)
		}
	}
	if r.Budget <= 0 {
		return fmt.Errorf("catalog: budget must be positive, got %d", r.Budget)
	}
	return nil
}

// Laptop is one catalog entry. The capability tiers mirror the Requirements
// fields so ranking is a field-by-field comparison.
type Laptop struct {
	ID          int64  `json:"id"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Price       int    `json:"price"`
	Description string `json:"description"`

	GPUIntensity    Tier `json:"gpu_intensity"`
	DisplayQuality  Tier `json:"display_quality"`
	Portability     Tier `json:"portability"`
	Multitasking    Tier `json:"multitasking"`
	ProcessingSpeed Tier `json:"processing_speed"`
}

// Candidate is a laptop paired with its requirement match score.
type Candidate struct {
	Laptop Laptop `json:"laptop"`
	Score  int    `json:"score"`
}
