package ai

import (
	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
)

// Strategy defines the interface for a bot's decision-making logic. A
// strategy reports false when it has no move to offer.
type Strategy interface {
	Decide(b *Bot) (belief.Decision, bool)
}

// --- Strategy Implementations ---

// 1. EngineStrategy follows the belief engine's recommendation.
type EngineStrategy struct{}

func (s *EngineStrategy) Decide(b *Bot) (belief.Decision, bool) {
	d := b.Tracker.Decide()
	switch d.Kind {
	case belief.KindDeclare:
		b.log.Debugf("Strategy: DECLARE. Book %v is fully located.", d.Book)
		return d, true
	case belief.KindAsk:
		if !b.couldHold(d.Askee, d.Card) {
			return belief.Decision{}, false
		}
		b.log.Debugf("Strategy: ENGINE. %v.", d)
		return d, true
	}
	return belief.Decision{}, false
}

// 2. TeamBookStrategy declares a held book that no opponent can hold any
// card of, even when the team's split of it is still uncertain.
type TeamBookStrategy struct{}

func (s *TeamBookStrategy) Decide(b *Bot) (belief.Decision, bool) {
	e := b.engine()
	if e == nil {
		return belief.Decision{}, false
	}
	matrix := e.Matrix()
	params := b.Params()
	for _, book := range b.heldBooks() {
		inTeam := true
		for p, possible := range matrix {
			if params.Team(p) != params.Team(b.Seat()) && possible.Intersects(book.Mask()) {
				inTeam = false
				break
			}
		}
		if inTeam {
			b.log.Infof("Strategy: TEAM BOOK. %v is held by my team.", book)
			return belief.Decision{Kind: belief.KindDeclare, Book: book, Guesses: e.Guess(b.Seat(), book)}, true
		}
	}
	return belief.Decision{}, false
}

// 3. RandomAskStrategy makes any legal ask that could succeed. It covers a
// failed engine and an engine whose best target has run out of cards.
type RandomAskStrategy struct{}

func (s *RandomAskStrategy) Decide(b *Bot) (belief.Decision, bool) {
	var options []belief.Decision
	for _, c := range b.askable() {
		for _, p := range b.opponentsWithCards() {
			if b.couldHold(p, c) {
				options = append(options, belief.Decision{Kind: belief.KindAsk, Askee: p, Card: c})
			}
		}
	}
	if len(options) == 0 {
		return belief.Decision{}, false
	}
	d := options[b.chooser.Choose(len(options))]
	b.log.Debugf("Strategy: RANDOM. %v.", d)
	return d, true
}

// 4. GuessDeclareStrategy declares a held book on the best available guess.
// It is reached when no ask can succeed.
type GuessDeclareStrategy struct{}

func (s *GuessDeclareStrategy) Decide(b *Bot) (belief.Decision, bool) {
	books := b.heldBooks()
	if len(books) == 0 {
		return belief.Decision{}, false
	}
	book := books[b.chooser.Choose(len(books))]
	d := belief.Decision{Kind: belief.KindDeclare, Book: book, Guesses: s.guess(b, book)}
	b.log.Infof("Strategy: GUESS. Declaring %v without certainty.", book)
	return d, true
}

func (s *GuessDeclareStrategy) guess(b *Bot, book card.Book) map[int]card.Mask {
	if e := b.engine(); e != nil {
		return e.Guess(b.Seat(), book)
	}
	params := b.Params()
	guesses := make(map[int]card.Mask)
	for p := 0; p < params.Players; p++ {
		if params.Team(p) == params.Team(b.Seat()) {
			guesses[p] = 0
		}
	}
	guesses[b.Seat()] = book.Mask() & card.AllMask(params.Cards)
	return guesses
}
