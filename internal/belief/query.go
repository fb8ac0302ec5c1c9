package belief

import (
	"fmt"
	"sort"

	"fish-toolbox/internal/card"
)

// SlotView is a read-only copy of one slot.
type SlotView struct {
	Owner    int
	Possible card.Mask
}

// Snapshot returns every slot ordered by owner, then by how many cards the
// slot still allows, then by the raw mask.
func (e *Engine) Snapshot() []SlotView {
	views := make([]SlotView, 0, len(e.slots))
	for _, s := range e.slots {
		views = append(views, SlotView{Owner: s.owner, Possible: s.possible})
	}
	sort.Slice(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.Owner != b.Owner {
			return a.Owner < b.Owner
		}
		if a.Possible.Count() != b.Possible.Count() {
			return a.Possible.Count() < b.Possible.Count()
		}
		return a.Possible < b.Possible
	})
	return views
}

// Matrix returns, per player, the union of what their slots could hold.
func (e *Engine) Matrix() map[int]card.Mask {
	m := make(map[int]card.Mask, e.params.Players)
	for p := 0; p < e.params.Players; p++ {
		m[p] = 0
	}
	for _, s := range e.slots {
		m[s.owner] |= s.possible
	}
	return m
}

// Resolved returns the cards known for certain to be in player's hand.
func (e *Engine) Resolved(player int) []card.Card {
	var known card.Mask
	for _, s := range e.slots {
		if s.owner == player && s.possible.Single() {
			known |= s.possible
		}
	}
	return known.Cards()
}

// HandSize returns how many slots the engine attributes to player.
func (e *Engine) HandSize(player int) int {
	n := 0
	for _, s := range e.slots {
		if s.owner == player {
			n++
		}
	}
	return n
}

// CheckConsistent cross-checks the belief state against the true hands: every
// player must own as many slots as they hold cards, and their cards must be
// assignable one-to-one onto those slots. It is meant for tests and debug
// runs.
func (e *Engine) CheckConsistent(hands [][]card.Card) error {
	if len(hands) != e.params.Players {
		return fmt.Errorf("%w: %d hands for %d players", ErrInconsistent, len(hands), e.params.Players)
	}
	for player, hand := range hands {
		var owned []card.Mask
		for _, s := range e.slots {
			if s.owner == player {
				owned = append(owned, s.possible)
			}
		}
		if len(owned) != len(hand) {
			return fmt.Errorf("%w: player %d holds %d cards but owns %d slots",
				ErrInconsistent, player, len(hand), len(owned))
		}
		if !perfectMatching(hand, owned) {
			return fmt.Errorf("%w: hand %v of player %d does not fit its slots",
				ErrInconsistent, card.MaskOf(hand...), player)
		}
	}
	return nil
}

// perfectMatching reports whether every card can be given its own slot that
// allows it, using augmenting paths.
func perfectMatching(cards []card.Card, slots []card.Mask) bool {
	slotCard := make([]int, len(slots))
	for i := range slotCard {
		slotCard[i] = -1
	}
	var augment func(ci int, seen []bool) bool
	augment = func(ci int, seen []bool) bool {
		for si, m := range slots {
			if seen[si] || !m.Has(cards[ci]) {
				continue
			}
			seen[si] = true
			if slotCard[si] < 0 || augment(slotCard[si], seen) {
				slotCard[si] = ci
				return true
			}
		}
		return false
	}
	for ci := range cards {
		if !augment(ci, make([]bool, len(slots))) {
			return false
		}
	}
	return true
}

// Guess assigns every card of book to the member of player's team with the
// most slots that could hold it, lowest seat first on ties. It is the best
// available declaration when the team cannot pin the book down exactly.
func (e *Engine) Guess(player int, book card.Book) map[int]card.Mask {
	team := e.params.Team(player)
	guesses := make(map[int]card.Mask)
	for p := 0; p < e.params.Players; p++ {
		if e.params.Team(p) == team {
			guesses[p] = 0
		}
	}
	for _, c := range e.bookMask(book).Cards() {
		best, bestCount := player, -1
		for p := 0; p < e.params.Players; p++ {
			if e.params.Team(p) != team {
				continue
			}
			n := 0
			for _, s := range e.slots {
				if s.owner == p && s.possible.Has(c) {
					n++
				}
			}
			if n > bestCount {
				best, bestCount = p, n
			}
		}
		guesses[best] |= c.Mask()
	}
	return guesses
}
