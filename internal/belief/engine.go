// Package belief tracks, for one seat at a Fish table, which card each dealt
// hand position could still hold given only public ask outcomes and
// declarations, and turns that belief into the seat's next action.
package belief

import (
	"errors"
	"fmt"
	"io"

	"fish-toolbox/internal/card"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoSlotAvailable means an event implied a constraint that no slot of
	// the named player can carry.
	ErrNoSlotAvailable = errors.New("no slot available")
	// ErrCardNotFound means no slot of the named player can hold the card.
	ErrCardNotFound = errors.New("card not found in belief state")
	// ErrInconsistent is returned by CheckConsistent when the belief state
	// does not admit the true hands.
	ErrInconsistent = errors.New("belief state inconsistent with hands")
	// ErrInvalidParams rejects table shapes the engine cannot represent.
	ErrInvalidParams = errors.New("invalid engine parameters")
)

// Observer is the player index of an engine that belongs to no seat.
const Observer = -1

// Params describes the table shape.
type Params struct {
	Players int
	Teams   int
	Cards   int
}

// Validate checks that the cards split evenly among the players.
func (p Params) Validate() error {
	switch {
	case p.Players < 1:
		return fmt.Errorf("%w: need at least one player", ErrInvalidParams)
	case p.Teams < 1 || p.Players%p.Teams != 0:
		return fmt.Errorf("%w: %d players cannot form %d teams", ErrInvalidParams, p.Players, p.Teams)
	case p.Cards < 1 || p.Cards > card.MaxDeckSize:
		return fmt.Errorf("%w: %d cards outside 1..%d", ErrInvalidParams, p.Cards, card.MaxDeckSize)
	case p.Cards%p.Players != 0:
		return fmt.Errorf("%w: %d cards do not split among %d players", ErrInvalidParams, p.Cards, p.Players)
	}
	return nil
}

// HandSize is the number of cards dealt to each player.
func (p Params) HandSize() int { return p.Cards / p.Players }

// Team returns the team of a player.
func (p Params) Team(player int) int { return player % p.Teams }

// Books returns every book that has at least one card in the deck.
func (p Params) Books() []card.Book {
	return card.Books(p.Cards + card.BookSize - 1)
}

// Engine is the belief state of one seat. It is not safe for concurrent use;
// each seat owns its own engine and feeds it the public events in order.
type Engine struct {
	params   Params
	player   int
	all      card.Mask
	slots    store
	decision Decision
	log      logrus.FieldLogger
	tie      TieBreaker
}

// New creates the engine of a seat that knows its own dealt hand. The
// player's slots are pinned to hand in order; every other slot may hold any
// card outside hand.
func New(params Params, player int, hand []card.Card, log logrus.FieldLogger, tie TieBreaker) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if player < 0 || player >= params.Players {
		return nil, fmt.Errorf("%w: player %d", ErrInvalidParams, player)
	}
	if len(hand) != params.HandSize() {
		return nil, fmt.Errorf("%w: hand of %d cards, want %d", ErrInvalidParams, len(hand), params.HandSize())
	}

	e := newEngine(params, player, log, tie)
	others := e.all &^ card.MaskOf(hand...)
	next := 0
	for i := range e.slots {
		if e.slots[i].owner == player {
			e.slots[i].possible = hand[next].Mask()
			next++
		} else {
			e.slots[i].possible = others
		}
	}
	e.decision = e.decide()
	e.log.Debugf("Belief engine initialized for player %d with hand %v.", player, card.MaskOf(hand...))
	return e, nil
}

// NewObserver creates an engine that sees only public events. Every slot
// starts fully unconstrained and it never recommends an action.
func NewObserver(params Params, log logrus.FieldLogger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := newEngine(params, Observer, log, FirstWins{})
	for i := range e.slots {
		e.slots[i].possible = e.all
	}
	return e, nil
}

func newEngine(params Params, player int, log logrus.FieldLogger, tie TieBreaker) *Engine {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	if tie == nil {
		tie = FirstWins{}
	}
	slots := make(store, params.Cards)
	per := params.HandSize()
	for i := range slots {
		slots[i].owner = i / per
	}
	return &Engine{
		params: params,
		player: player,
		all:    card.AllMask(params.Cards),
		slots:  slots,
		log:    log,
		tie:    tie,
	}
}

// Params returns the table shape the engine was built for.
func (e *Engine) Params() Params { return e.params }

// Player returns the seat that owns the engine, or Observer.
func (e *Engine) Player() int { return e.player }

// Decision returns the action recommended after the last event.
func (e *Engine) Decision() Decision { return e.decision }

// Update applies one public event, propagates it to a fixed point and
// recomputes the decision. On error the engine is left exactly as it was
// before the call.
func (e *Engine) Update(ev Event) error {
	next := e.slots.clone()

	var err error
	switch ev := ev.(type) {
	case Ask:
		err = next.applyAsk(ev)
	case Declaration:
		err = next.applyDeclaration(e.bookMask(ev.Book), ev)
	default:
		err = fmt.Errorf("unsupported event %T", ev)
	}
	if err != nil {
		e.log.WithError(err).Warnf("Rejected %v.", ev)
		return fmt.Errorf("update with %v: %w", ev, err)
	}

	next.prune()
	e.slots = next
	e.decision = e.decide()
	e.log.Debugf("Player %d applied %v; next: %v.", e.player, ev, e.decision)
	return nil
}

func (e *Engine) bookMask(b card.Book) card.Mask {
	return b.Mask() & e.all
}
