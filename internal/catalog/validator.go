package catalog

// minValidScore is the match score a candidate must exceed to be shown.
// A laptop matching two or fewer of the five capabilities is not a
// recommendation worth making.
const minValidScore = 2

// Validate filters ranked candidates down to the set acceptable for display.
// It is a pure function of its input and preserves order. An empty result is
// a valid outcome meaning no laptop in the catalog fits the requirements.
func Validate(candidates []Candidate) []Candidate {
	validated := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score <= minValidScore {
			continue
		}
		if c.Laptop.Brand == "" || c.Laptop.Model == "" || c.Laptop.Price <= 0 {
			continue
		}
		validated = append(validated, c)
	}
	return validated
}
