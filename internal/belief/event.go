package belief

import (
	"fmt"
	"sort"

	"fish-toolbox/internal/card"
)

// Event is a public outcome the engine learns from: Ask or Declaration.
type Event interface {
	isEvent()
}

// Ask is the outcome of Asker requesting Card from Askee.
type Ask struct {
	Asker   int
	Askee   int
	Card    card.Card
	Success bool
}

func (Ask) isEvent() {}

func (a Ask) String() string {
	outcome := "NO"
	if a.Success {
		outcome = "YES"
	}
	return fmt.Sprintf("ask(%d->%d %v %s)", a.Asker, a.Askee, a.Card, outcome)
}

// Declaration is the outcome of a book being declared. Removed holds, for
// every player, the cards of Book actually taken out of their hand.
type Declaration struct {
	Declarer int
	Book     card.Book
	Removed  map[int]card.Mask
}

func (Declaration) isEvent() {}

func (d Declaration) String() string {
	return fmt.Sprintf("declare(%d %v)", d.Declarer, d.Book)
}

// players returns the keys of Removed in ascending order.
func (d Declaration) players() []int {
	players := make([]int, 0, len(d.Removed))
	for p := range d.Removed {
		players = append(players, p)
	}
	sort.Ints(players)
	return players
}
