package belief

import (
	"fmt"

	"fish-toolbox/internal/card"
)

// slot is one physical card position dealt to some hand.
type slot struct {
	possible card.Mask // identities this position could still hold
	owner    int       // player currently believed to hold it
	dirty    bool      // needs a pass of the propagator
}

// store is the ordered collection of slots of one engine.
type store []slot

func (s store) clone() store {
	out := make(store, len(s))
	copy(out, s)
	return out
}

func (s store) applyAsk(a Ask) error {
	if err := s.hasBook(a.Asker, a.Card.Book()); err != nil {
		return err
	}
	if a.Success {
		return s.moveCard(a.Askee, a.Asker, a.Card)
	}
	// Only the requested card is ruled out, not the rest of its book.
	s.notOwnCard(a.Asker, a.Card)
	s.notOwnCard(a.Askee, a.Card)
	return nil
}

func (s *store) applyDeclaration(bookMask card.Mask, d Declaration) error {
	for _, player := range d.players() {
		for _, c := range d.Removed[player].Cards() {
			idx, ok := s.findCard(player, c)
			if !ok {
				return fmt.Errorf("%w: player %d, card %v", ErrCardNotFound, player, c)
			}
			*s = append((*s)[:idx], (*s)[idx+1:]...)
		}
	}
	for i := range *s {
		sl := &(*s)[i]
		if sl.possible.Intersects(bookMask) {
			sl.possible &^= bookMask
			sl.dirty = true
		}
	}
	return nil
}

// hasBook records that player holds at least one card of book. If a slot of
// the player is already confined to the book nothing changes; otherwise the
// first slot that could hold a card of the book is narrowed to it.
func (s store) hasBook(player int, book card.Book) error {
	bm := book.Mask()
	for i := range s {
		if s[i].owner == player && s[i].possible.Within(bm) {
			return nil
		}
	}
	for i := range s {
		if s[i].owner == player && s[i].possible.Intersects(bm) {
			s[i].possible &= bm
			s[i].dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: player %d, book %v", ErrNoSlotAvailable, player, book)
}

// findCard returns the most specific slot of player that can hold c: one
// pinned to c, else one confined to c's book, else any.
func (s store) findCard(player int, c card.Card) (int, bool) {
	cm, bm := c.Mask(), c.Book().Mask()
	for i := range s {
		if s[i].owner == player && s[i].possible == cm {
			return i, true
		}
	}
	for i := range s {
		if s[i].owner == player && s[i].possible.Within(bm) && s[i].possible.Has(c) {
			return i, true
		}
	}
	for i := range s {
		if s[i].owner == player && s[i].possible.Has(c) {
			return i, true
		}
	}
	return 0, false
}

func (s store) moveCard(from, to int, c card.Card) error {
	idx, ok := s.findCard(from, c)
	if !ok {
		return fmt.Errorf("%w: player %d, card %v", ErrCardNotFound, from, c)
	}
	s[idx].owner = to
	s[idx].possible = c.Mask()
	s[idx].dirty = true
	return nil
}

func (s store) notOwnCard(player int, c card.Card) {
	for i := range s {
		if s[i].owner == player {
			s[i].possible &^= c.Mask()
			s[i].dirty = true
		}
	}
}
