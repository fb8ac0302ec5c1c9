package belief

import (
	"testing"

	"fish-toolbox/internal/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasBookIsIdempotent(t *testing.T) {
	// GIVEN a player with two unconstrained slots
	s := store{
		{owner: 0, possible: card.AllMask(12)},
		{owner: 0, possible: card.AllMask(12)},
		{owner: 1, possible: card.AllMask(12)},
	}

	// WHEN the book constraint is recorded twice
	require.NoError(t, s.hasBook(0, card.HighDiamonds))
	once := s.clone()
	require.NoError(t, s.hasBook(0, card.HighDiamonds))

	// THEN only the first call changed anything
	assert.Equal(t, card.HighDiamonds.Mask(), s[0].possible)
	assert.Equal(t, card.AllMask(12), s[1].possible)
	assert.Equal(t, once, s)
}

func TestHasBookKeepsExactSlots(t *testing.T) {
	// GIVEN a player already pinned to a card of the book in a later slot
	s := store{
		{owner: 0, possible: card.AllMask(12)},
		{owner: 0, possible: masks(7)},
	}

	// WHEN the book constraint is recorded
	require.NoError(t, s.hasBook(0, card.HighDiamonds))

	// THEN the unconstrained slot is not narrowed
	assert.Equal(t, card.AllMask(12), s[0].possible)
	assert.False(t, s[0].dirty)
}

func TestFindCardPrefersTheMostSpecificSlot(t *testing.T) {
	tests := []struct {
		name  string
		slots store
		want  int
	}{
		{
			name: "exact slot first",
			slots: store{
				{owner: 1, possible: masks(2, 30)},
				{owner: 1, possible: masks(1, 2)},
				{owner: 1, possible: masks(2)},
			},
			want: 2,
		},
		{
			name: "book-confined slot next",
			slots: store{
				{owner: 1, possible: masks(2, 30)},
				{owner: 0, possible: masks(2)},
				{owner: 1, possible: masks(1, 2)},
			},
			want: 2,
		},
		{
			name: "any slot holding the card last",
			slots: store{
				{owner: 1, possible: masks(3, 4)},
				{owner: 1, possible: masks(2, 30)},
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.slots.findCard(1, 2)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := store{{owner: 1, possible: masks(3)}}.findCard(1, 2)
	assert.False(t, ok)
}

func TestPruneHallSet(t *testing.T) {
	// GIVEN two slots confined to {0,1} and a third that could also be 2
	s := store{
		{owner: 0, possible: masks(0, 1), dirty: true},
		{owner: 1, possible: masks(0, 1)},
		{owner: 1, possible: masks(0, 1, 2)},
	}

	// WHEN propagating
	s.prune()

	// THEN 0 and 1 are claimed and the third slot must be 2
	assert.Equal(t, masks(2), s[2].possible)
	assert.Equal(t, masks(0, 1), s[0].possible)
	for i := range s {
		assert.False(t, s[i].dirty, "slot %d left dirty", i)
	}
}

func TestPruneCascades(t *testing.T) {
	// GIVEN a chain where each resolution unlocks the next
	s := store{
		{owner: 0, possible: masks(0), dirty: true},
		{owner: 1, possible: masks(0, 1)},
		{owner: 1, possible: masks(0, 1, 2)},
		{owner: 0, possible: masks(0, 1, 2, 3)},
	}

	s.prune()

	assert.Equal(t, []card.Mask{masks(0), masks(1), masks(2), masks(3)},
		[]card.Mask{s[0].possible, s[1].possible, s[2].possible, s[3].possible})
}

func TestPruneIgnoresOverfullSets(t *testing.T) {
	// GIVEN more slots than cards in a set, which cannot be a Hall set
	s := store{
		{owner: 0, possible: masks(0, 1), dirty: true},
		{owner: 1, possible: masks(0, 1)},
		{owner: 1, possible: masks(0, 1)},
		{owner: 1, possible: masks(0, 1, 2)},
	}

	s.prune()

	assert.Equal(t, masks(0, 1, 2), s[3].possible)
}

func TestPruneIsIdempotent(t *testing.T) {
	s := store{
		{owner: 0, possible: masks(4, 5), dirty: true},
		{owner: 1, possible: masks(4, 5), dirty: true},
		{owner: 2, possible: masks(3, 4, 5, 6), dirty: true},
		{owner: 3, possible: masks(3, 6, 7), dirty: true},
	}
	s.prune()
	settled := s.clone()

	for i := range s {
		s[i].dirty = true
	}
	s.prune()

	assert.Equal(t, settled, s)
}
