package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"fish-toolbox/internal/card"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt, Debug *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Debug:  color.New(color.FgMagenta),
}

// TeamColors colors seats by team, cycling for tables with more teams.
var TeamColors = []*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgMagenta),
}

// SuitColors maps each suit to its display color.
var SuitColors = map[card.Suit]*color.Color{
	card.Diamonds: color.New(color.FgRed),
	card.Clubs:    color.New(color.FgWhite),
	card.Hearts:   color.New(color.FgHiRed),
	card.Spades:   color.New(color.FgHiWhite),
}

// ColorizeSeat returns "seat N" colored by the seat's team.
func ColorizeSeat(seat, teams int) string {
	return TeamColors[(seat%teams)%len(TeamColors)].Sprintf("seat %d", seat)
}

// ColorizeCard returns a card colored by suit. Jokers and cards without a
// suit are magenta.
func ColorizeCard(c card.Card) string {
	if s, ok := c.Suit(); ok && !c.IsJoker() {
		return SuitColors[s].Sprint(c.String())
	}
	return C.Debug.Sprint(c.String())
}

// ColorizeCards joins colored cards with commas.
func ColorizeCards(cards []card.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, ColorizeCard(c))
	}
	return strings.Join(parts, ", ")
}

// ColorizeBook returns a book name colored by its suit.
func ColorizeBook(b card.Book) string {
	if s, ok := b.Suit(); ok {
		return SuitColors[s].Sprint(b.String())
	}
	return C.Debug.Sprint(b.String())
}

// --- Prompting and Usage ---

func (c *CLI) printUsage() {
	C.Header.Println("\n--- Fish Toolbox ---")
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fish play")
	fmt.Println("    To play at a table of bots; the last seats are yours.")
	fmt.Println("  go run ./cmd/fish simulate [games]")
	fmt.Println("    To run fast bot-only games and summarize the results.")
	fmt.Println("\nFlags:")
	fmt.Println("  -config file       Game configuration (default default_config.yaml).")
	fmt.Println("  -seed n            Seed the shuffle and every bot for a reproducible run.")
	fmt.Println("  -loglevel debug    Enable detailed belief engine tracing.")
}

func (c *CLI) printPlayHelp() {
	C.Header.Println("\n--- Play Mode Help ---")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"info", "i", "Show seats, hands, books and whose turn it is."},
		{"ask <seat> <card>", "a", "Ask an opponent for a card, e.g. 'a 2 7D'."},
		{"next [count]", "n", "Let the bots take their turns."},
		{"declare <book>", "d", "Declare a book and name where each card sits."},
		{"constraints [seat]", "c", "Show what your belief engine knows."},
		{"hint", "h", "Show what the belief engine would do in your seat."},
		{"reset", "r", "Redeal the cards."},
		{"help", "", "Show this help message."},
		{"quit", "q", "Exit play mode."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

func (c *CLI) promptForString(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(input)
	if trimmed != "" {
		c.line.AppendHistory(trimmed)
	}
	return trimmed, nil
}

// promptForCards reads a list of cards of book, separated by spaces or
// commas. An empty answer is an empty list.
func (c *CLI) promptForCards(prompt string, book card.Book) (card.Mask, error) {
	for {
		input, err := c.promptForString(prompt)
		if err != nil {
			return 0, err
		}
		m, err := parseCards(input)
		if err != nil {
			C.Warn.Println(err)
			continue
		}
		if !m.Within(book.Mask()) {
			C.Warn.Printf("Only cards of %s, please.\n", ColorizeBook(book))
			continue
		}
		return m, nil
	}
}

// parseCard reads a card name, or a raw card number for decks beyond the
// standard 54.
func parseCard(s string) (card.Card, error) {
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "#")); err == nil {
		if n < 0 || n >= card.MaxDeckSize {
			return 0, fmt.Errorf("%w: %d", card.ErrParseCard, n)
		}
		return card.Card(n), nil
	}
	return card.Parse(s)
}

func parseCards(s string) (card.Mask, error) {
	var m card.Mask
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		c, err := parseCard(field)
		if err != nil {
			return 0, err
		}
		m |= c.Mask()
	}
	return m, nil
}

func parseSeat(s string, players int) (int, error) {
	seat, err := strconv.Atoi(s)
	if err != nil || seat < 0 || seat >= players {
		return 0, fmt.Errorf("no seat %q; seats are 0-%d", s, players-1)
	}
	return seat, nil
}
