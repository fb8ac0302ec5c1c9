package player

import (
	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
	"fish-toolbox/internal/events"

	"github.com/sirupsen/logrus"
)

// HumanPlayer represents a seat controlled by a person. It still tracks the
// table so the CLI can offer hints, but it never acts on its own.
type HumanPlayer struct {
	*Tracker
	eventManager *events.Manager
}

// NewHumanPlayer accepts the event manager it will publish its hand to.
func NewHumanPlayer(seat int, params belief.Params, log logrus.FieldLogger, tie belief.TieBreaker, eventManager *events.Manager) *HumanPlayer {
	return &HumanPlayer{
		Tracker:      NewTracker(seat, params, log, tie),
		eventManager: eventManager,
	}
}

func (h *HumanPlayer) IsHuman() bool { return true }

// ReceiveHand records the hand and shows it to the renderer only.
func (h *HumanPlayer) ReceiveHand(hand []card.Card) {
	h.Tracker.ReceiveHand(hand)
	h.eventManager.Publish(events.HandRevealedEvent{
		Player: h.Seat(),
		Hand:   h.Hand(),
	})
}

// Decide is handled by the interactive CLI loop for humans.
func (h *HumanPlayer) Decide() belief.Decision {
	return belief.Decision{Kind: belief.KindNone}
}

// Hint is what the engine would do in this seat.
func (h *HumanPlayer) Hint() belief.Decision {
	return h.Tracker.Decide()
}
