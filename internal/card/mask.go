package card

import (
	"math/bits"
	"strings"
)

// Mask is a set of card ids, bit i standing for Card(i).
type Mask uint64

// AllMask returns the set of the first n card ids.
func AllMask(n int) Mask {
	if n >= MaxDeckSize {
		return ^Mask(0)
	}
	return Mask(1)<<n - 1
}

// MaskOf returns the union of the given cards.
func MaskOf(cards ...Card) Mask {
	var m Mask
	for _, c := range cards {
		m |= c.Mask()
	}
	return m
}

// Count returns the number of cards in m.
func (m Mask) Count() int { return bits.OnesCount64(uint64(m)) }

// Has reports whether c is in m.
func (m Mask) Has(c Card) bool { return m&c.Mask() != 0 }

// Intersects reports whether m and o share a card.
func (m Mask) Intersects(o Mask) bool { return m&o != 0 }

// Within reports whether every card of m is in o.
func (m Mask) Within(o Mask) bool { return m&^o == 0 }

// Single reports whether m holds exactly one card.
func (m Mask) Single() bool { return m != 0 && m&(m-1) == 0 }

// Lowest returns the smallest card in m. It must not be called on an empty set.
func (m Mask) Lowest() Card { return Card(bits.TrailingZeros64(uint64(m))) }

// Cards returns the members of m in id order.
func (m Mask) Cards() []Card {
	cards := make([]Card, 0, m.Count())
	for rest := m; rest != 0; rest &= rest - 1 {
		cards = append(cards, rest.Lowest())
	}
	return cards
}

func (m Mask) String() string {
	parts := make([]string, 0, m.Count())
	for _, c := range m.Cards() {
		parts = append(parts, c.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
