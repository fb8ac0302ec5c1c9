package belief

import "math/rand"

// TieBreaker decides whether an equally good candidate replaces the current
// best one. This lets tests swap the coin flip for a fixed answer.
type TieBreaker interface {
	Replace() bool
}

// CoinFlip replaces the current best with probability one half.
type CoinFlip struct {
	rand *rand.Rand
}

// NewCoinFlip creates a tie-breaker drawing from rand.
func NewCoinFlip(rand *rand.Rand) *CoinFlip {
	return &CoinFlip{rand: rand}
}

func (c *CoinFlip) Replace() bool {
	return c.rand.Intn(2) == 0
}

// FirstWins never replaces, so the earliest candidate in scan order is kept.
type FirstWins struct{}

func (FirstWins) Replace() bool { return false }
