package events

import (
	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
)

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to events.
type Listener interface {
	HandleEvent(e Event)
}

// Manager dispatches events synchronously, in subscription order. An event
// is fully handled by every listener before Publish returns.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}

func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// --- Event Types for Rendering ---

// GameReadyEvent is published once the game is built and cards are dealt.
type GameReadyEvent struct {
	Players    int
	FirstToAct int
}

// TurnStartEvent names the seat about to act.
type TurnStartEvent struct {
	TurnNumber int
	Player     int
}

type GameOverEvent struct {
	Books    map[card.Book]int // book -> winning team
	Scores   []int             // books per team
	TurnsRun int
	Finished bool // every book declared
}

// HandRevealedEvent carries a human player's hand to the renderer only.
type HandRevealedEvent struct {
	Player int
	Hand   []card.Card
}

// --- Event Types for Player Logic ---

// ResetEvent announces a fresh deal. Every hand is redealt right after it.
type ResetEvent struct {
	Deal int
}

// AskResolvedEvent is the public outcome of one request.
type AskResolvedEvent struct {
	Asker   int
	Askee   int
	Card    card.Card
	Success bool
}

// DeclarationEvent is the public outcome of a declaration. Actual holds the
// cards of Book removed from every player's hand.
type DeclarationEvent struct {
	Declarer int
	Book     card.Book
	Guesses  map[int]card.Mask
	Actual   map[int]card.Mask
	Success  bool
	Team     int // team awarded the book
}

// Belief converts the outcome into the form the belief engine consumes.
func (e AskResolvedEvent) Belief() belief.Ask {
	return belief.Ask{Asker: e.Asker, Askee: e.Askee, Card: e.Card, Success: e.Success}
}

// Belief converts the outcome into the form the belief engine consumes.
func (e DeclarationEvent) Belief() belief.Declaration {
	return belief.Declaration{Declarer: e.Declarer, Book: e.Book, Removed: e.Actual}
}
