package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrParseCard = errors.New("failed to parse card")
	ErrParseBook = errors.New("failed to parse book")
)

// Parse reads a card typed as rank followed by suit letter, e.g. "7D",
// "10s", "QH", or one of the jokers "SJ" and "BJ".
func Parse(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "SJ":
		return smallJoker, nil
	case "BJ":
		return bigJoker, nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrParseCard, s)
	}
	rankStr, suitStr := s[:len(s)-1], s[len(s)-1:]

	var suit Suit
	switch suitStr {
	case "D":
		suit = Diamonds
	case "C":
		suit = Clubs
	case "H":
		suit = Hearts
	case "S":
		suit = Spades
	default:
		return 0, fmt.Errorf("%w: unknown suit in %q", ErrParseCard, s)
	}

	var rank Rank
	switch rankStr {
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	case "T":
		rank = 10
	default:
		n, err := strconv.Atoi(rankStr)
		if err != nil || n < 2 || n > 10 {
			return 0, fmt.Errorf("%w: unknown rank in %q", ErrParseCard, s)
		}
		rank = Rank(n)
	}
	return FromSuitRank(suit, rank)
}

// ParseBook accepts a full book name ("LowHearts") or its abbreviation ("lh").
func ParseBook(s string) (Book, error) {
	s = strings.TrimSpace(s)
	for i, name := range bookNames {
		if strings.EqualFold(s, name.long) || strings.EqualFold(s, name.short) {
			return Book(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrParseBook, s)
}
