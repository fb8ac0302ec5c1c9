// Package card maps dense card ids onto suits, ranks and the six-card books
// of a Fish deck, and provides the bitmasks the belief engine works with.
package card

import (
	"fmt"
	"strconv"
)

const (
	// BookSize is the number of cards in every book.
	BookSize = 6
	// StandardDeckSize is 52 suited cards plus two jokers.
	StandardDeckSize = 54
	// MaxDeckSize is bounded by the width of Mask.
	MaxDeckSize = 64

	smallJoker Card = 52
	bigJoker   Card = 53
)

// Card is a dense id in [0, deck size).
type Card uint8

// Suit is the suit of a non-joker card.
type Suit int

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

func (s Suit) String() string {
	return []string{"♦", "♣", "♥", "♠"}[s]
}

// Letter is the single-letter form used when typing cards.
func (s Suit) Letter() string {
	return []string{"D", "C", "H", "S"}[s]
}

// Rank is a face value: 2-10 as numbers, then Jack=11 through Ace=14.
type Rank int

const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return strconv.Itoa(int(r))
	}
}

// Book returns the book the card belongs to.
func (c Card) Book() Book {
	return Book(c / BookSize)
}

// Mask returns the singleton set holding c.
func (c Card) Mask() Mask {
	return Mask(1) << c
}

// IsJoker reports whether c is one of the two jokers of the standard deck.
func (c Card) IsJoker() bool {
	return c == smallJoker || c == bigJoker
}

// Suit returns the suit of c. ok is false for jokers and for ids beyond the
// standard deck.
func (c Card) Suit() (s Suit, ok bool) {
	switch {
	case c < 48:
		return Suit(c / 12), true
	case c < 52:
		return Suit(c % BookSize), true
	default:
		return 0, false
	}
}

// Rank returns the rank of c. ok is false for jokers and for ids beyond the
// standard deck.
func (c Card) Rank() (r Rank, ok bool) {
	if c >= 52 {
		return 0, false
	}
	switch c.Book() {
	case LowDiamonds, LowClubs, LowHearts, LowSpades:
		return Rank(c%BookSize) + 2, true
	case HighDiamonds, HighClubs, HighHearts, HighSpades:
		return Rank(c%BookSize) + 9, true
	default:
		return 8, true
	}
}

// FromSuitRank is the inverse of Suit and Rank for every non-joker card.
func FromSuitRank(s Suit, r Rank) (Card, error) {
	if s < Diamonds || s > Spades {
		return 0, fmt.Errorf("%w: suit %d", ErrParseCard, s)
	}
	switch {
	case r == 8:
		return Card(48 + int(s)), nil
	case r >= 2 && r <= 7:
		return Card(int(s)*12 + int(r) - 2), nil
	case r >= 9 && r <= Ace:
		return Card(int(s)*12 + 6 + int(r) - 9), nil
	default:
		return 0, fmt.Errorf("%w: rank %d", ErrParseCard, r)
	}
}

func (c Card) String() string {
	switch c {
	case smallJoker:
		return "SJ"
	case bigJoker:
		return "BJ"
	}
	s, ok := c.Suit()
	if !ok {
		return "#" + strconv.Itoa(int(c))
	}
	r, _ := c.Rank()
	return r.String() + s.String()
}

// ShortString is a single-character form used in the slot matrix display.
func (c Card) ShortString() string {
	switch c {
	case smallJoker:
		return "s"
	case bigJoker:
		return "b"
	}
	r, ok := c.Rank()
	if !ok {
		return "?"
	}
	if r == 10 {
		return "T"
	}
	return r.String()
}

// Book is one of the disjoint six-card groups of the deck.
type Book int

const (
	LowDiamonds  Book = iota // 2-7
	HighDiamonds             // 9-A
	LowClubs
	HighClubs
	LowHearts
	HighHearts
	LowSpades
	HighSpades
	Eights // the four eights and both jokers
)

// StandardBooks is the number of books in a 54-card deck.
const StandardBooks = 9

var bookNames = []struct{ long, short string }{
	{"LowDiamonds", "ld"},
	{"HighDiamonds", "hd"},
	{"LowClubs", "lc"},
	{"HighClubs", "hc"},
	{"LowHearts", "lh"},
	{"HighHearts", "hh"},
	{"LowSpades", "ls"},
	{"HighSpades", "hs"},
	{"Eights", "e"},
}

func (b Book) String() string {
	if b >= 0 && int(b) < len(bookNames) {
		return bookNames[b].long
	}
	return "Book" + strconv.Itoa(int(b))
}

// Short returns the abbreviation accepted by ParseBook.
func (b Book) Short() string {
	if b >= 0 && int(b) < len(bookNames) {
		return bookNames[b].short
	}
	return "b" + strconv.Itoa(int(b))
}

// Suit returns the suit shared by every card of a suited book.
func (b Book) Suit() (Suit, bool) {
	if b < LowDiamonds || b >= Eights {
		return 0, false
	}
	return Suit(b / 2), true
}

// Cards returns the members of b in id order.
func (b Book) Cards() []Card {
	cards := make([]Card, 0, BookSize)
	for i := 0; i < BookSize; i++ {
		cards = append(cards, Card(int(b)*BookSize+i))
	}
	return cards
}

// Mask returns the union of the member masks of b.
func (b Book) Mask() Mask {
	var m Mask
	for _, c := range b.Cards() {
		m |= c.Mask()
	}
	return m
}

// Books returns every book of a deck with n cards.
func Books(n int) []Book {
	books := make([]Book, 0, n/BookSize)
	for b := 0; b < n/BookSize; b++ {
		books = append(books, Book(b))
	}
	return books
}
