package belief

import (
	"fmt"
	"sort"

	"fish-toolbox/internal/card"
)

// Kind tells which action a Decision carries.
type Kind int

const (
	KindNone Kind = iota
	KindAsk
	KindDeclare
)

func (k Kind) String() string {
	return []string{"none", "ask", "declare"}[k]
}

// Decision is the action recommended to the engine's seat.
type Decision struct {
	Kind Kind

	// Ask
	Askee int
	Card  card.Card

	// Declare: for every teammate, the cards of Book they are believed to hold.
	Book    card.Book
	Guesses map[int]card.Mask
}

func (d Decision) String() string {
	switch d.Kind {
	case KindAsk:
		return fmt.Sprintf("ask player %d for %v", d.Askee, d.Card)
	case KindDeclare:
		players := make([]int, 0, len(d.Guesses))
		for p := range d.Guesses {
			players = append(players, p)
		}
		sort.Ints(players)
		out := fmt.Sprintf("declare %v:", d.Book)
		for _, p := range players {
			out += fmt.Sprintf(" %d=%v", p, d.Guesses[p])
		}
		return out
	default:
		return "no action"
	}
}

func (e *Engine) decide() Decision {
	if e.player == Observer {
		return Decision{}
	}
	if d, ok := e.declarable(); ok {
		return d
	}
	return e.bestAsk()
}

// declarable reports the first book the seat's team has fully pinned down.
func (e *Engine) declarable() (Decision, bool) {
	team := e.params.Team(e.player)
	var known card.Mask
	for _, s := range e.slots {
		if e.params.Team(s.owner) == team && s.possible.Single() {
			known |= s.possible
		}
	}

	for _, book := range e.params.Books() {
		bm := e.bookMask(book)
		if !bm.Within(known) {
			continue
		}
		guesses := make(map[int]card.Mask)
		for p := 0; p < e.params.Players; p++ {
			if e.params.Team(p) == team {
				guesses[p] = 0
			}
		}
		for _, s := range e.slots {
			if e.params.Team(s.owner) == team && s.possible.Intersects(bm) {
				guesses[s.owner] |= (s.possible & bm).Lowest().Mask()
			}
		}
		return Decision{Kind: KindDeclare, Book: book, Guesses: guesses}, true
	}
	return Decision{}, false
}

// bestAsk picks the opponent and card with the highest chance of a hit,
// estimating a player's chance as the share of slots that could hold the
// card which belong to that player.
func (e *Engine) bestAsk() Decision {
	var owned card.Mask
	for _, s := range e.slots {
		if s.owner == e.player {
			owned |= s.possible
		}
	}

	counts := make([][]int, e.params.Players)
	for p := range counts {
		counts[p] = make([]int, e.params.Cards)
	}
	total := make([]int, e.params.Cards)
	for _, s := range e.slots {
		for _, c := range s.possible.Cards() {
			counts[s.owner][c]++
			total[c]++
		}
	}

	team := e.params.Team(e.player)
	best := Decision{}
	bestNum, bestDen := 0, 0
	for id := 0; id < e.params.Cards; id++ {
		c := card.Card(id)
		if owned.Has(c) || !owned.Intersects(c.Book().Mask()) || total[c] == 0 {
			continue
		}
		for p := 0; p < e.params.Players; p++ {
			if e.params.Team(p) == team {
				continue
			}
			num, den := counts[p][c], total[c]
			if best.Kind != KindNone {
				// Compare num/den with bestNum/bestDen without division.
				lhs, rhs := num*bestDen, bestNum*den
				if lhs < rhs || (lhs == rhs && !e.tie.Replace()) {
					continue
				}
			}
			best = Decision{Kind: KindAsk, Askee: p, Card: c}
			bestNum, bestDen = num, den
			if num == den {
				break
			}
		}
	}
	return best
}
