package game

import (
	"errors"
	"fmt"
	"math/rand"

	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
	"fish-toolbox/internal/config"
	"fish-toolbox/internal/events"
	"fish-toolbox/internal/player"

	"github.com/sirupsen/logrus"
)

// Rule violations. The game state is unchanged when one is returned.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrSameTeam       = errors.New("cannot ask a teammate")
	ErrInvalidBook    = errors.New("asker holds no card of that book")
	ErrAlreadyOwnCard = errors.New("asker already holds that card")
	ErrBotTurn        = errors.New("it is a bot's turn")
	ErrHumanTurn      = errors.New("it is a human's turn")
	ErrGameOver       = errors.New("game is over")
	ErrBookDeclared   = errors.New("book already declared")
	ErrInvalidGuess   = errors.New("invalid declaration guess")
	ErrNoMove         = errors.New("bot has no move")
	// ErrSanity means a belief engine no longer admits the true hands.
	ErrSanity = errors.New("sanity check failed")
)

// Game represents the state and logic of a single Fish table.
type Game struct {
	Config       *config.GameConfig
	Players      []player.Player
	EventManager *events.Manager
	hands        []card.Mask
	books        map[card.Book]int // declared book -> team awarded
	current      int
	turn         int
	deal         int
	fixedDeal    [][]card.Card
	log          *logrus.Logger
	rand         *rand.Rand
}

// Result summarizes a finished or capped simulation.
type Result struct {
	Scores   []int
	Turns    int
	Finished bool
}

// dealCards shuffles the deck and hands every seat its cards. The first deal of
// a game built with a fixed deal uses it instead.
func (g *Game) dealCards() {
	params := g.Config.Params()
	hands := g.fixedDeal
	g.fixedDeal = nil
	if hands == nil {
		deck := card.AllMask(params.Cards).Cards()
		g.rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
		per := params.HandSize()
		hands = make([][]card.Card, params.Players)
		for p := range hands {
			hands[p] = deck[p*per : (p+1)*per]
		}
	}

	g.hands = make([]card.Mask, params.Players)
	g.books = make(map[card.Book]int)
	g.turn = 0
	for p, pl := range g.Players {
		g.hands[p] = card.MaskOf(hands[p]...)
		pl.ReceiveHand(g.hands[p].Cards())
		g.log.Debugf("Seat %d hand: %v", p, g.hands[p])
	}
	g.current = g.rand.Intn(params.Players)
	g.log.Debugf("Deal %d ready, seat %d acts first.", g.deal, g.current)
}

// Current is the seat whose turn it is.
func (g *Game) Current() int { return g.current }

// Turn is the number of actions taken in this deal.
func (g *Game) Turn() int { return g.turn }

// Hand returns the true hand of a seat.
func (g *Game) Hand(seat int) []card.Card { return g.hands[seat].Cards() }

// Hands returns every true hand, indexed by seat.
func (g *Game) Hands() [][]card.Card {
	out := make([][]card.Card, len(g.hands))
	for p, h := range g.hands {
		out[p] = h.Cards()
	}
	return out
}

// Books returns the declared books and the team each went to.
func (g *Game) Books() map[card.Book]int {
	out := make(map[card.Book]int, len(g.books))
	for b, t := range g.books {
		out[b] = t
	}
	return out
}

// Scores counts awarded books per team.
func (g *Game) Scores() []int {
	scores := make([]int, g.Config.Teams)
	for _, team := range g.books {
		scores[team]++
	}
	return scores
}

// Over reports whether every book has been declared.
func (g *Game) Over() bool {
	return len(g.books) == len(g.Config.Books())
}

// HumanAsk makes the current seat, which must be human, ask askee for c.
func (g *Game) HumanAsk(askee int, c card.Card) error {
	if g.Over() {
		return ErrGameOver
	}
	if !g.Players[g.current].IsHuman() {
		return ErrBotTurn
	}
	return g.ask(g.current, askee, c)
}

// NextBot lets the current seat, which must be a bot, take its action.
func (g *Game) NextBot() error {
	if g.Over() {
		return ErrGameOver
	}
	p := g.Players[g.current]
	if p.IsHuman() {
		return ErrHumanTurn
	}
	g.EventManager.Publish(events.TurnStartEvent{TurnNumber: g.turn + 1, Player: g.current})

	d := p.Decide()
	switch d.Kind {
	case belief.KindAsk:
		return g.ask(g.current, d.Askee, d.Card)
	case belief.KindDeclare:
		return g.Declare(g.current, d.Book, d.Guesses)
	}
	return fmt.Errorf("%w: seat %d", ErrNoMove, g.current)
}

func (g *Game) ask(asker, askee int, c card.Card) error {
	params := g.Config.Params()
	switch {
	case askee < 0 || askee >= params.Players:
		return fmt.Errorf("%w: %d", ErrPlayerNotFound, askee)
	case int(c) >= params.Cards:
		return fmt.Errorf("%w: card %v is not in the deck", ErrInvalidBook, c)
	case params.Team(asker) == params.Team(askee):
		return fmt.Errorf("%w: %d and %d", ErrSameTeam, asker, askee)
	case !g.hands[asker].Intersects(c.Book().Mask()):
		return fmt.Errorf("%w: %v", ErrInvalidBook, c.Book())
	case g.hands[asker].Has(c):
		return fmt.Errorf("%w: %v", ErrAlreadyOwnCard, c)
	}

	success := g.hands[askee].Has(c)
	if success {
		g.hands[askee] &^= c.Mask()
		g.hands[asker] |= c.Mask()
	} else {
		g.current = askee
	}
	g.turn++
	g.log.Debugf("Seat %d asks seat %d for %v: %t.", asker, askee, c, success)
	g.EventManager.Publish(events.AskResolvedEvent{Asker: asker, Askee: askee, Card: c, Success: success})
	g.handoff()
	return g.sanity()
}

// Declare claims book for declarer's team. guesses names, for teammates,
// the cards each is said to hold; missing teammates are taken to hold none.
// The declaration succeeds when the team holds the whole book exactly as
// guessed. Otherwise the book goes to the next team.
func (g *Game) Declare(declarer int, book card.Book, guesses map[int]card.Mask) error {
	params := g.Config.Params()
	if g.Over() {
		return ErrGameOver
	}
	if declarer < 0 || declarer >= params.Players {
		return fmt.Errorf("%w: %d", ErrPlayerNotFound, declarer)
	}
	bookMask := book.Mask() & card.AllMask(params.Cards)
	if bookMask == 0 {
		return fmt.Errorf("%w: %v is not in the deck", ErrInvalidGuess, book)
	}
	if _, ok := g.books[book]; ok {
		return fmt.Errorf("%w: %v", ErrBookDeclared, book)
	}
	team := params.Team(declarer)
	for p, m := range guesses {
		if p < 0 || p >= params.Players || params.Team(p) != team {
			return fmt.Errorf("%w: seat %d is not a teammate of %d", ErrInvalidGuess, p, declarer)
		}
		if !m.Within(bookMask) {
			return fmt.Errorf("%w: %v is outside %v", ErrInvalidGuess, m, book)
		}
	}

	actual := make(map[int]card.Mask, params.Players)
	success := true
	for p := range g.hands {
		actual[p] = g.hands[p] & bookMask
		g.hands[p] &^= bookMask
		if params.Team(p) == team {
			success = success && actual[p] == guesses[p]
		} else {
			success = success && actual[p] == 0
		}
	}
	awarded := team
	if !success {
		awarded = (team + 1) % params.Teams
	}
	g.books[book] = awarded
	g.turn++
	g.log.Debugf("Seat %d declares %v: %t, team %d scores.", declarer, book, success, awarded)
	g.EventManager.Publish(events.DeclarationEvent{
		Declarer: declarer,
		Book:     book,
		Guesses:  guesses,
		Actual:   actual,
		Success:  success,
		Team:     awarded,
	})
	g.handoff()
	return g.sanity()
}

// handoff passes the turn on when the current seat has run out of cards:
// first to a teammate holding cards, then to anyone holding cards.
func (g *Game) handoff() {
	if g.hands[g.current] != 0 {
		return
	}
	params := g.Config.Params()
	n := params.Players
	for _, sameTeam := range []bool{true, false} {
		for i := 1; i < n; i++ {
			p := (g.current + i) % n
			if (params.Team(p) == params.Team(g.current)) == sameTeam && g.hands[p] != 0 {
				g.log.Debugf("Seat %d is out of cards, seat %d takes the turn.", g.current, p)
				g.current = p
				return
			}
		}
	}
}

// sanity cross-checks every seat's belief engine against the true hands
// when assert_sanity is on.
func (g *Game) sanity() error {
	if !g.Config.AssertSanity {
		return nil
	}
	hands := g.Hands()
	for _, p := range g.Players {
		if err := p.Err(); err != nil {
			return fmt.Errorf("%w: seat %d: %w", ErrSanity, p.Seat(), err)
		}
		e := p.Engine()
		if e == nil {
			continue
		}
		if err := e.CheckConsistent(hands); err != nil {
			return fmt.Errorf("%w: seat %d: %w", ErrSanity, p.Seat(), err)
		}
	}
	return nil
}

// RunSimulation is a pure, "headless" game loop. Bots act until every book
// is declared or max_turns actions have been taken.
func (g *Game) RunSimulation() (Result, error) {
	for !g.Over() && g.turn < g.Config.MaxTurns {
		if err := g.NextBot(); err != nil {
			return g.result(), err
		}
	}
	res := g.result()
	g.EventManager.Publish(events.GameOverEvent{
		Books:    g.Books(),
		Scores:   res.Scores,
		TurnsRun: res.Turns,
		Finished: res.Finished,
	})
	return res, nil
}

func (g *Game) result() Result {
	return Result{Scores: g.Scores(), Turns: g.turn, Finished: g.Over()}
}

// Reset redeals the cards. Every seat rebuilds its belief state from the
// new hand.
func (g *Game) Reset() {
	g.deal++
	g.EventManager.Publish(events.ResetEvent{Deal: g.deal})
	g.dealCards()
	g.EventManager.Publish(events.GameReadyEvent{Players: len(g.Players), FirstToAct: g.current})
}
