package game

import (
	"math/rand"
	"testing"

	"fish-toolbox/internal/card"
	"fish-toolbox/internal/config"
	"fish-toolbox/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tally counts the events a simulation publishes.
type tally struct {
	asks, declarations, gameOver int
	last                         events.GameOverEvent
}

func (t *tally) HandleEvent(e events.Event) {
	switch ev := e.(type) {
	case events.AskResolvedEvent:
		t.asks++
	case events.DeclarationEvent:
		t.declarations++
	case events.GameOverEvent:
		t.gameOver++
		t.last = ev
	}
}

func setupSimulation(t *testing.T, cfg *config.GameConfig, seed int64) (*Game, *tally) {
	t.Helper()
	builder := NewBuilder(cfg, quietLogger(), rand.New(rand.NewSource(seed))).WithHumanPlayers(0)
	counter := &tally{}
	builder.EventManager().Subscribe(counter)
	game, err := builder.Build()
	require.NoError(t, err)
	return game, counter
}

func TestSimulationKeepsEveryEngineSound(t *testing.T) {
	shapes := map[string]*config.GameConfig{
		"reference table": {Players: 6, Teams: 2, Cards: 54, MaxTurns: 400, AssertSanity: true},
		"four players":    {Players: 4, Teams: 2, Cards: 24, MaxTurns: 400, AssertSanity: true},
		"three teams":     {Players: 6, Teams: 3, Cards: 36, MaxTurns: 400, AssertSanity: true},
	}
	for name, cfg := range shapes {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				// GIVEN a table of bots with sanity checks after every event
				game, counter := setupSimulation(t, cfg, seed)

				// WHEN the simulation runs
				res, err := game.RunSimulation()

				// THEN no engine ever contradicts the true hands
				require.NoError(t, err, "seed %d", seed)

				// AND the books, scores and cards add up
				books := game.Books()
				total := 0
				for _, s := range res.Scores {
					total += s
				}
				assert.Equal(t, len(books), total, "seed %d", seed)
				assert.Equal(t, counter.declarations, len(books), "seed %d", seed)
				assert.Equal(t, counter.asks+counter.declarations, res.Turns, "seed %d", seed)

				var declared, held card.Mask
				for b := range books {
					declared |= b.Mask()
				}
				for seat := range game.Players {
					held |= card.MaskOf(game.Hand(seat)...)
				}
				assert.False(t, declared.Intersects(held), "seed %d", seed)
				assert.Equal(t, card.AllMask(cfg.Cards), (declared&card.AllMask(cfg.Cards))|held, "seed %d", seed)

				// AND the game ends either finished or at the turn cap
				assert.True(t, res.Finished || res.Turns == cfg.MaxTurns, "seed %d", seed)
				assert.Equal(t, res.Finished, game.Over())
				assert.Equal(t, 1, counter.gameOver)
				assert.Equal(t, res.Scores, counter.last.Scores)
			}
		})
	}
}

func TestSimulationIsReproducible(t *testing.T) {
	cfg := &config.GameConfig{Players: 6, Teams: 2, Cards: 54, MaxTurns: 300}

	first, _ := setupSimulation(t, cfg, 42)
	second, _ := setupSimulation(t, cfg, 42)

	a, err := first.RunSimulation()
	require.NoError(t, err)
	b, err := second.RunSimulation()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, first.Books(), second.Books())
}

func TestSimulationStopsAtHumanTurn(t *testing.T) {
	cfg := &config.GameConfig{Players: 2, Teams: 2, Cards: 12, Humans: 2, MaxTurns: 10}
	game, err := NewBuilder(cfg, quietLogger(), rand.New(rand.NewSource(1))).Build()
	require.NoError(t, err)

	_, err = game.RunSimulation()

	assert.ErrorIs(t, err, ErrHumanTurn)
}
