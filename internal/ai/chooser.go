package ai

import "math/rand"

// Chooser picks one of n options by index. This allows us to swap out
// random and deterministic selection strategies.
type Chooser interface {
	Choose(n int) int
}

// --- Implementations ---

// RandomChooser implements the Chooser interface by picking an index randomly.
type RandomChooser struct {
	rand *rand.Rand
}

// NewRandomChooser creates a new random chooser.
func NewRandomChooser(rand *rand.Rand) *RandomChooser {
	return &RandomChooser{rand: rand}
}

func (r *RandomChooser) Choose(n int) int {
	if n <= 0 {
		return -1
	}
	return r.rand.Intn(n)
}

// DeterministicChooser always picks the first option. Callers present
// options in a stable order, so this is used for predictable testing.
type DeterministicChooser struct{}

func (d *DeterministicChooser) Choose(n int) int {
	if n <= 0 {
		return -1
	}
	return 0
}
