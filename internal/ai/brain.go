package ai

import (
	"math/rand"

	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
	"fish-toolbox/internal/player"

	"github.com/sirupsen/logrus"
)

// Bot is a computer-controlled seat. It owns exactly one belief engine,
// rebuilt on every deal, and acts on the first strategy that has a move.
type Bot struct {
	*player.Tracker
	strategies []Strategy
	chooser    Chooser
	log        logrus.FieldLogger
}

// NewBot is the constructor for the AI player. It injects dependencies: rand
// drives the engine's tie-breaks and chooser the fallback moves.
func NewBot(seat int, params belief.Params, logger *logrus.Logger, rand *rand.Rand, chooser Chooser) *Bot {
	log := logger.WithField("seat", seat)
	return &Bot{
		Tracker: player.NewTracker(seat, params, logger, belief.NewCoinFlip(rand)),
		chooser: chooser,
		log:     log,
		strategies: []Strategy{
			&EngineStrategy{},
			&TeamBookStrategy{},
			&RandomAskStrategy{},
			&GuessDeclareStrategy{},
		},
	}
}

func (b *Bot) IsHuman() bool { return false }

// Decide returns the bot's move. A bot without cards has none.
func (b *Bot) Decide() belief.Decision {
	if len(b.Hand()) == 0 {
		return belief.Decision{Kind: belief.KindNone}
	}
	for _, s := range b.strategies {
		if d, ok := s.Decide(b); ok {
			return d
		}
	}
	return belief.Decision{Kind: belief.KindNone}
}

// engine returns the belief engine while it is still trustworthy.
func (b *Bot) engine() *belief.Engine {
	if b.Err() != nil {
		return nil
	}
	return b.Engine()
}

// couldHold reports whether an ask of seat for c could succeed: the seat
// holds cards and, if the engine is healthy, some slot of it allows c.
func (b *Bot) couldHold(seat int, c card.Card) bool {
	if b.CardsLeft(seat) == 0 {
		return false
	}
	e := b.engine()
	return e == nil || e.Matrix()[seat].Has(c)
}

// opponentsWithCards lists, in seat order, the opponents still holding cards.
func (b *Bot) opponentsWithCards() []int {
	params := b.Params()
	var out []int
	for p := 0; p < params.Players; p++ {
		if params.Team(p) != params.Team(b.Seat()) && b.CardsLeft(p) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// heldBooks lists, in book order, the books the bot holds a card of.
func (b *Bot) heldBooks() []card.Book {
	var out []card.Book
	for _, book := range b.Params().Books() {
		if b.HoldsBook(book) {
			out = append(out, book)
		}
	}
	return out
}

// askable lists, in card order, the cards the bot may legally ask for.
func (b *Bot) askable() []card.Card {
	deck := card.AllMask(b.Params().Cards)
	var out []card.Card
	for _, book := range b.heldBooks() {
		for _, c := range (book.Mask() & deck).Cards() {
			if !b.Holds(c) {
				out = append(out, c)
			}
		}
	}
	return out
}
