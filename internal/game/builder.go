package game

import (
	"fmt"
	"math/rand"

	"fish-toolbox/internal/ai"
	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
	"fish-toolbox/internal/config"
	"fish-toolbox/internal/events"
	"fish-toolbox/internal/player"

	"github.com/sirupsen/logrus"
)

// GameBuilder provides a step-by-step API for constructing a Game object.
type GameBuilder struct {
	cfg           *config.GameConfig
	eventManager  *events.Manager
	log           *logrus.Logger
	rand          *rand.Rand
	numHumans     int
	hands         [][]card.Card
	deterministic bool
}

// NewBuilder creates a new GameBuilder with its required dependencies. The
// number of human seats starts at the configured value.
func NewBuilder(cfg *config.GameConfig, logger *logrus.Logger, rand *rand.Rand) *GameBuilder {
	return &GameBuilder{
		cfg:          cfg,
		log:          logger,
		rand:         rand,
		numHumans:    cfg.Humans,
		eventManager: events.NewManager(),
	}
}

// EventManager is a public getter for the unexported field.
func (b *GameBuilder) EventManager() *events.Manager {
	return b.eventManager
}

// WithHumanPlayers makes the last n seats human.
func (b *GameBuilder) WithHumanPlayers(n int) *GameBuilder {
	b.numHumans = n
	return b
}

// WithDeal replaces the first shuffle with fixed hands, indexed by seat.
func (b *GameBuilder) WithDeal(hands [][]card.Card) *GameBuilder {
	b.hands = hands
	return b
}

// WithDeterministicBots gives every bot a chooser that always takes the
// first option.
func (b *GameBuilder) WithDeterministicBots() *GameBuilder {
	b.deterministic = true
	return b
}

// Build constructs the Game object after all options have been configured.
func (b *GameBuilder) Build() (*Game, error) {
	cfg := b.cfg.Copy()
	cfg.Humans = b.numHumans
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params := cfg.Params()
	if err := b.checkDeal(params); err != nil {
		return nil, err
	}

	game := &Game{
		Config:       cfg,
		EventManager: b.eventManager,
		fixedDeal:    b.hands,
		log:          b.log,
		rand:         b.rand,
	}

	// Create players, inject dependencies, and subscribe them to events
	firstHuman := params.Players - cfg.Humans
	for seat := 0; seat < params.Players; seat++ {
		// every seat draws from its own source
		seatRand := rand.New(rand.NewSource(b.rand.Int63()))
		var p player.Player
		if seat >= firstHuman {
			p = player.NewHumanPlayer(seat, params, b.log, belief.NewCoinFlip(seatRand), b.eventManager)
		} else {
			var chooser ai.Chooser = ai.NewRandomChooser(seatRand)
			if b.deterministic {
				chooser = &ai.DeterministicChooser{}
			}
			p = ai.NewBot(seat, params, b.log, seatRand, chooser)
		}
		game.Players = append(game.Players, p)
		b.eventManager.Subscribe(p)
	}

	game.dealCards()
	b.eventManager.Publish(events.GameReadyEvent{Players: len(game.Players), FirstToAct: game.current})

	return game, nil
}

// checkDeal verifies that fixed hands are a legal deal.
func (b *GameBuilder) checkDeal(params belief.Params) error {
	if b.hands == nil {
		return nil
	}
	if len(b.hands) != params.Players {
		return fmt.Errorf("%w: %d hands for %d players", config.ErrInvalidConfig, len(b.hands), params.Players)
	}
	var seen card.Mask
	for p, hand := range b.hands {
		m := card.MaskOf(hand...)
		if len(hand) != params.HandSize() || m.Count() != len(hand) {
			return fmt.Errorf("%w: seat %d has %d distinct cards, want %d", config.ErrInvalidConfig, p, m.Count(), params.HandSize())
		}
		if seen.Intersects(m) || !m.Within(card.AllMask(params.Cards)) {
			return fmt.Errorf("%w: seat %d holds a duplicate or unknown card", config.ErrInvalidConfig, p)
		}
		seen |= m
	}
	return nil
}
