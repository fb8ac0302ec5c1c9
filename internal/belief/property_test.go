package belief

import (
	"math/rand"
	"testing"

	"fish-toolbox/internal/card"

	"github.com/stretchr/testify/require"
)

// table is a minimal ground-truth dealer used to feed engines legal events.
type table struct {
	params   Params
	rand     *rand.Rand
	hands    [][]card.Card
	declared card.Mask
}

func newTable(params Params, seed int64) *table {
	r := rand.New(rand.NewSource(seed))
	deck := card.AllMask(params.Cards).Cards()
	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	hands := make([][]card.Card, params.Players)
	per := params.HandSize()
	for p := range hands {
		hands[p] = append([]card.Card(nil), deck[p*per:(p+1)*per]...)
	}
	return &table{params: params, rand: r, hands: hands}
}

func (tb *table) holds(p int, c card.Card) bool {
	for _, h := range tb.hands[p] {
		if h == c {
			return true
		}
	}
	return false
}

func (tb *table) take(p int, c card.Card) {
	for i, h := range tb.hands[p] {
		if h == c {
			tb.hands[p] = append(tb.hands[p][:i], tb.hands[p][i+1:]...)
			return
		}
	}
}

// next produces one legal event and applies it to the true hands. ok is
// false once nobody holds a card.
func (tb *table) next() (Event, bool) {
	var askers []int
	for p, h := range tb.hands {
		if len(h) > 0 {
			askers = append(askers, p)
		}
	}
	if len(askers) == 0 {
		return nil, false
	}
	asker := askers[tb.rand.Intn(len(askers))]
	held := tb.hands[asker][tb.rand.Intn(len(tb.hands[asker]))]
	book := held.Book()

	var wanted []card.Card
	for _, c := range book.Cards() {
		if int(c) < tb.params.Cards && !tb.holds(asker, c) {
			wanted = append(wanted, c)
		}
	}
	if len(wanted) == 0 || tb.rand.Intn(12) == 0 {
		return tb.declare(asker, book), true
	}

	var askees []int
	for p := 0; p < tb.params.Players; p++ {
		if tb.params.Team(p) != tb.params.Team(asker) {
			askees = append(askees, p)
		}
	}
	askee := askees[tb.rand.Intn(len(askees))]
	c := wanted[tb.rand.Intn(len(wanted))]
	ev := Ask{Asker: asker, Askee: askee, Card: c, Success: tb.holds(askee, c)}
	if ev.Success {
		tb.take(askee, c)
		tb.hands[asker] = append(tb.hands[asker], c)
	}
	return ev, true
}

func (tb *table) declare(declarer int, book card.Book) Declaration {
	removed := make(map[int]card.Mask, tb.params.Players)
	for p := range tb.hands {
		var m card.Mask
		for _, c := range book.Cards() {
			if tb.holds(p, c) {
				tb.take(p, c)
				m |= c.Mask()
			}
		}
		removed[p] = m
	}
	tb.declared |= book.Mask()
	return Declaration{Declarer: declarer, Book: book, Removed: removed}
}

func TestRandomGamesKeepBeliefsSound(t *testing.T) {
	shapes := []Params{
		{Players: 4, Teams: 2, Cards: 24},
		{Players: 6, Teams: 2, Cards: 54},
	}
	for _, params := range shapes {
		for seed := int64(1); seed <= 8; seed++ {
			tb := newTable(params, seed)

			// GIVEN one observer and one self-aware engine per seat
			engines := []*Engine{newObserver(t, params)}
			for p := 0; p < params.Players; p++ {
				e, err := New(params, p, tb.hands[p], quietLogger(), NewCoinFlip(rand.New(rand.NewSource(seed))))
				require.NoError(t, err)
				engines = append(engines, e)
			}

			for step := 0; step < 400; step++ {
				ev, ok := tb.next()
				if !ok {
					break
				}
				for _, e := range engines {
					before := e.slots.clone()

					// WHEN every event is applied
					require.NoError(t, e.Update(ev), "seed %d step %d player %d", seed, step, e.Player())

					// THEN the true hands still fit the beliefs
					require.NoError(t, e.CheckConsistent(tb.hands), "seed %d step %d player %d", seed, step, e.Player())

					// AND asks only ever narrow slots
					if _, isAsk := ev.(Ask); isAsk {
						require.Len(t, e.slots, len(before))
						for i := range before {
							require.True(t, e.slots[i].possible.Within(before[i].possible),
								"slot %d widened at seed %d step %d", i, seed, step)
						}
					}

					// AND every card still in play is allowed somewhere
					var union card.Mask
					for _, s := range e.slots {
						union |= s.possible
					}
					inPlay := card.AllMask(params.Cards) &^ tb.declared
					require.True(t, inPlay.Within(union), "seed %d step %d lost a card", seed, step)

					// AND propagation is already at its fixed point
					again := e.slots.clone()
					for i := range again {
						again[i].dirty = true
					}
					again.prune()
					require.Equal(t, e.slots, again, "prune not idempotent at seed %d step %d", seed, step)
				}
			}
		}
	}
}

func TestSelfAwareDecisionsAreLegal(t *testing.T) {
	params := Params{Players: 6, Teams: 2, Cards: 54}
	for seed := int64(1); seed <= 5; seed++ {
		tb := newTable(params, seed)
		engines := make([]*Engine, params.Players)
		for p := range engines {
			e, err := New(params, p, tb.hands[p], quietLogger(), NewCoinFlip(rand.New(rand.NewSource(seed+int64(p)))))
			require.NoError(t, err)
			engines[p] = e
		}

		for step := 0; step < 200; step++ {
			for p, e := range engines {
				d := e.Decision()
				switch d.Kind {
				case KindAsk:
					// the seat holds the book, lacks the card and asks an opponent
					require.False(t, tb.holds(p, d.Card))
					var holdsBook bool
					for _, c := range tb.hands[p] {
						holdsBook = holdsBook || c.Book() == d.Card.Book()
					}
					require.True(t, holdsBook, "seed %d: player %d asks outside its books", seed, p)
					require.NotEqual(t, params.Team(p), params.Team(d.Askee))
				case KindDeclare:
					// a declaration names exactly where the book sits
					for mate, guess := range d.Guesses {
						var truth card.Mask
						for _, c := range tb.hands[mate] {
							if c.Book() == d.Book {
								truth |= c.Mask()
							}
						}
						require.Equal(t, truth, guess, "seed %d: wrong guess for player %d", seed, mate)
					}
				}
			}

			ev, ok := tb.next()
			if !ok {
				break
			}
			for _, e := range engines {
				require.NoError(t, e.Update(ev))
			}
		}
	}
}
