package belief

import (
	"math/rand"
	"testing"

	"fish-toolbox/internal/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideDeclaresAFullyKnownBook(t *testing.T) {
	// GIVEN a player dealt the whole first book
	e, err := New(Params{Players: 2, Teams: 2, Cards: 12}, 0, cards(0, 1, 2, 3, 4, 5), quietLogger(), FirstWins{})
	require.NoError(t, err)

	// THEN the engine recommends declaring it, with the player holding all six
	d := e.Decision()
	assert.Equal(t, KindDeclare, d.Kind)
	assert.Equal(t, card.LowDiamonds, d.Book)
	assert.Equal(t, map[int]card.Mask{0: card.LowDiamonds.Mask()}, d.Guesses)
}

func TestDecideDeclaresAcrossTeammates(t *testing.T) {
	// GIVEN player 0 holding half of the first book
	params := Params{Players: 4, Teams: 2, Cards: 24}
	e, err := New(params, 0, cards(0, 1, 2, 12, 13, 14), quietLogger(), FirstWins{})
	require.NoError(t, err)

	// WHEN teammate 2 is seen taking 3 and 4 from an opponent, which also
	// proves it already held 5
	for _, c := range []card.Card{3, 4} {
		require.NoError(t, e.Update(Ask{Asker: 2, Askee: 1, Card: c, Success: true}))
	}

	// THEN the team declares the book and names who holds what
	d := e.Decision()
	require.Equal(t, KindDeclare, d.Kind)
	assert.Equal(t, card.LowDiamonds, d.Book)
	assert.Equal(t, map[int]card.Mask{0: masks(0, 1, 2), 2: masks(3, 4, 5)}, d.Guesses)
}

func TestDecideAsksForCertainCard(t *testing.T) {
	// GIVEN player 0 of four, holding three cards of each of the first two books
	params := Params{Players: 4, Teams: 2, Cards: 24}
	e, err := New(params, 0, cards(0, 1, 2, 6, 7, 8), quietLogger(), NewCoinFlip(rand.New(rand.NewSource(7))))
	require.NoError(t, err)

	// WHEN teammate 2 asks opponent 1 for card 3 and misses
	require.NoError(t, e.Update(Ask{Asker: 2, Askee: 1, Card: 3, Success: false}))

	// THEN the only opponent who can hold card 3 is asked for it
	assert.Equal(t, Decision{Kind: KindAsk, Askee: 3, Card: 3}, e.Decision())
}

func TestDecideTieBreakIsInjectable(t *testing.T) {
	params := Params{Players: 4, Teams: 2, Cards: 24}
	hand := cards(0, 1, 2, 6, 7, 8)

	t.Run("first candidate wins with a fixed tie-breaker", func(t *testing.T) {
		e, err := New(params, 0, hand, quietLogger(), FirstWins{})
		require.NoError(t, err)

		// every opponent is equally likely to hold every missing card
		assert.Equal(t, Decision{Kind: KindAsk, Askee: 1, Card: 3}, e.Decision())
	})

	t.Run("same seed gives the same choice", func(t *testing.T) {
		a, err := New(params, 0, hand, quietLogger(), NewCoinFlip(rand.New(rand.NewSource(42))))
		require.NoError(t, err)
		b, err := New(params, 0, hand, quietLogger(), NewCoinFlip(rand.New(rand.NewSource(42))))
		require.NoError(t, err)

		assert.Equal(t, a.Decision(), b.Decision())
		d := a.Decision()
		assert.Equal(t, KindAsk, d.Kind)
		assert.Contains(t, []int{1, 3}, d.Askee)
		assert.Contains(t, cards(3, 4, 5, 9, 10, 11), d.Card)
	})
}

type alwaysReplace struct{ calls int }

func (a *alwaysReplace) Replace() bool {
	a.calls++
	return true
}

func TestDecideLastTieWinsWhenAlwaysReplacing(t *testing.T) {
	params := Params{Players: 4, Teams: 2, Cards: 24}
	tie := &alwaysReplace{}
	e, err := New(params, 0, cards(0, 1, 2, 6, 7, 8), quietLogger(), tie)
	require.NoError(t, err)

	// the last opponent for the last candidate card is kept
	assert.Equal(t, Decision{Kind: KindAsk, Askee: 3, Card: 11}, e.Decision())
	assert.Positive(t, tie.calls)
}

func TestDecideOnlyAsksWithinHeldBooks(t *testing.T) {
	// GIVEN a player holding cards of the first three books but none of the fourth
	params := Params{Players: 2, Teams: 2, Cards: 24}
	hand := cards(0, 1, 6, 7, 8, 9, 10, 12, 13, 14, 15, 16)
	e, err := New(params, 0, hand, quietLogger(), &alwaysReplace{})
	require.NoError(t, err)

	// THEN even when every tie is replaced, the last candidate comes from a held book
	d := e.Decision()
	require.Equal(t, KindAsk, d.Kind)
	assert.Equal(t, 1, d.Askee)
	assert.Equal(t, card.Card(17), d.Card)
}

func TestDecideNothingWithEmptyHand(t *testing.T) {
	// GIVEN player 0 whose only card is taken away
	params := Params{Players: 2, Teams: 2, Cards: 2}
	e, err := New(params, 0, cards(0), quietLogger(), FirstWins{})
	require.NoError(t, err)
	require.NoError(t, e.Update(Ask{Asker: 1, Askee: 0, Card: 0, Success: true}))

	// THEN there is nothing to ask for
	assert.Equal(t, KindNone, e.Decision().Kind)
	assert.Equal(t, "no action", e.Decision().String())
}

func TestGuessFollowsSlotCounts(t *testing.T) {
	// GIVEN player 0 holding 0-2 of the first book
	params := Params{Players: 4, Teams: 2, Cards: 24}
	e, err := New(params, 0, cards(0, 1, 2, 12, 13, 14), quietLogger(), FirstWins{})
	require.NoError(t, err)

	// WHEN teammate 2 takes card 3
	require.NoError(t, e.Update(Ask{Asker: 2, Askee: 1, Card: 3, Success: true}))

	// THEN the guess keeps player 0's own cards and hands the rest to player 2
	assert.Equal(t, map[int]card.Mask{0: masks(0, 1, 2), 2: masks(3, 4, 5)}, e.Guess(0, card.LowDiamonds))
}
