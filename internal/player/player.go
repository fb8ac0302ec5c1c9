package player

import (
	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
	"fish-toolbox/internal/events"

	"github.com/sirupsen/logrus"
)

// Player is the interface that all seat types (human or bot) must implement.
// It also implements events.Listener to follow the public game record.
type Player interface {
	events.Listener // Embed the Listener interface

	Seat() int
	IsHuman() bool
	Hand() []card.Card
	ReceiveHand(hand []card.Card)
	Decide() belief.Decision
	Engine() *belief.Engine
	Err() error
}

// Tracker is the part every seat shares: it knows its own cards and keeps a
// belief engine fed with the public events. Humans and bots both embed it.
type Tracker struct {
	seat   int
	params belief.Params
	log    logrus.FieldLogger
	tie    belief.TieBreaker
	hand   card.Mask
	counts []int
	engine *belief.Engine
	err    error
}

// NewTracker creates the tracker of seat. The engine is built on ReceiveHand.
func NewTracker(seat int, params belief.Params, log logrus.FieldLogger, tie belief.TieBreaker) *Tracker {
	return &Tracker{
		seat:   seat,
		params: params,
		log:    log.WithField("seat", seat),
		tie:    tie,
	}
}

func (t *Tracker) Seat() int                  { return t.seat }
func (t *Tracker) Hand() []card.Card          { return t.hand.Cards() }
func (t *Tracker) Engine() *belief.Engine     { return t.engine }
func (t *Tracker) Holds(c card.Card) bool     { return t.hand.Has(c) }
func (t *Tracker) HoldsBook(b card.Book) bool { return t.hand.Intersects(b.Mask()) }

// CardsLeft returns how many cards player holds. Hand sizes are public.
func (t *Tracker) CardsLeft(player int) int { return t.counts[player] }

// Params returns the table shape the seat plays at.
func (t *Tracker) Params() belief.Params { return t.params }

// Err returns the first error the engine reported since the last deal.
func (t *Tracker) Err() error { return t.err }

// ReceiveHand throws the old belief state away and starts over from hand.
func (t *Tracker) ReceiveHand(hand []card.Card) {
	t.hand = card.MaskOf(hand...)
	t.err = nil
	t.counts = make([]int, t.params.Players)
	for p := range t.counts {
		t.counts[p] = t.params.HandSize()
	}
	e, err := belief.New(t.params, t.seat, hand, t.log, t.tie)
	if err != nil {
		t.log.Errorf("Could not build belief engine: %v", err)
		t.engine, t.err = nil, err
		return
	}
	t.engine = e
	t.log.Debugf("Belief engine rebuilt for hand %v.", t.hand)
}

// HandleEvent keeps the own hand and the engine in step with the table.
func (t *Tracker) HandleEvent(e events.Event) {
	if t.counts == nil {
		return
	}
	switch event := e.(type) {
	case events.AskResolvedEvent:
		if event.Success {
			t.counts[event.Asker]++
			t.counts[event.Askee]--
			if event.Asker == t.seat {
				t.hand |= event.Card.Mask()
			}
			if event.Askee == t.seat {
				t.hand &^= event.Card.Mask()
			}
		}
		t.update(event.Belief())
	case events.DeclarationEvent:
		t.hand &^= event.Book.Mask()
		for p, removed := range event.Actual {
			t.counts[p] -= removed.Count()
		}
		t.update(event.Belief())
	}
}

func (t *Tracker) update(ev belief.Event) {
	if t.engine == nil || t.err != nil {
		return
	}
	if err := t.engine.Update(ev); err != nil {
		t.err = err
	}
}

// Decide returns the engine's recommendation, or no action when the engine
// is missing or has failed.
func (t *Tracker) Decide() belief.Decision {
	if t.engine == nil || t.err != nil {
		return belief.Decision{Kind: belief.KindNone}
	}
	return t.engine.Decision()
}
