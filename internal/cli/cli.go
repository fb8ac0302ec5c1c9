package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
	"fish-toolbox/internal/config"
	"fish-toolbox/internal/game"
	"fish-toolbox/internal/player"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, cfg *config.GameConfig, rand *rand.Rand) error {
	defer c.line.Close()
	color.NoColor = color.NoColor || !cfg.UseColor
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	switch args[0] {
	case "play":
		return c.runPlayMode(cfg, rand)
	case "simulate":
		games := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				c.printUsage()
				return fmt.Errorf("invalid number of games %q", args[1])
			}
			games = n
		}
		return c.runSimulationMode(cfg, games, rand)
	default:
		c.printUsage()
		return fmt.Errorf("unknown command '%s'", args[0])
	}
}

func (c *CLI) runSimulationMode(cfg *config.GameConfig, games int, rand *rand.Rand) error {
	C.Header.Printf("--- Running %d Fast Simulation(s) ---\n", games)

	var results []game.Result
	for i := 0; i < games; i++ {
		// Create a builder and subscribe our renderer to it.
		builder := game.NewBuilder(cfg, c.log, rand).WithHumanPlayers(0)
		if games == 1 {
			builder.EventManager().Subscribe(&GameRenderer{Teams: cfg.Teams})
		}
		g, err := builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build game: %w", err)
		}

		res, err := g.RunSimulation()
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		c.log.WithFields(logrus.Fields{"game": i + 1, "turns": res.Turns, "scores": res.Scores}).Debug("Simulation finished.")
		results = append(results, res)
	}

	fmt.Println()
	RenderSummary(os.Stdout, cfg.Teams, results)
	return nil
}

func (c *CLI) runPlayMode(cfg *config.GameConfig, rand *rand.Rand) error {
	if cfg.Humans < 1 {
		return errors.New("play mode needs at least one human seat; set humans in the config")
	}
	C.Info.Println("\n--- Starting Play Mode ---")

	builder := game.NewBuilder(cfg, c.log, rand)
	builder.EventManager().Subscribe(&GameRenderer{Teams: cfg.Teams})
	g, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build game: %w", err)
	}
	c.printPlayHelp()

	// Main command loop for play mode
	for {
		input, err := c.promptForString("(fish) ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				C.Info.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("error reading line: %w", err)
		}
		if input == "" {
			continue
		}
		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "info", "i":
			c.handleInfoCommand(g)
		case "ask", "a":
			c.handleAskCommand(g, parts[1:])
		case "next", "n":
			c.handleNextCommand(g, parts[1:])
		case "declare", "d":
			if err := c.handleDeclareCommand(g, parts[1:]); err != nil {
				return err
			}
		case "constraints", "c":
			c.handleConstraintsCommand(g, parts[1:])
		case "hint", "h":
			c.handleHintCommand(g)
		case "reset", "r":
			g.Reset()
		case "help":
			c.printPlayHelp()
		case "quit", "q":
			C.Info.Println("Exiting play mode.")
			return nil
		default:
			C.Warn.Printf("Unknown command '%s'. Type 'help' for a list of commands.\n", cmd)
		}
		if g.Over() && cmd != "info" && cmd != "i" {
			C.Yes.Printf("Every book is declared. Scores: %v. Type 'reset' to deal again.\n", g.Scores())
		}
	}
}

// humanSeat is the seat the user speaks for: the current seat when it is
// human, otherwise the first human seat.
func humanSeat(g *game.Game) *player.HumanPlayer {
	if h, ok := g.Players[g.Current()].(*player.HumanPlayer); ok {
		return h
	}
	for _, p := range g.Players {
		if h, ok := p.(*player.HumanPlayer); ok {
			return h
		}
	}
	return nil
}

func (c *CLI) handleInfoCommand(g *game.Game) {
	fmt.Println()
	RenderTable(os.Stdout, g)
	for _, p := range g.Players {
		if p.IsHuman() {
			C.Info.Printf("%s's hand: %s\n", ColorizeSeat(p.Seat(), g.Config.Teams), ColorizeCards(p.Hand()))
		}
	}
}

func (c *CLI) handleAskCommand(g *game.Game, args []string) {
	if len(args) != 2 {
		C.Warn.Println("Usage: ask <seat> <card>")
		return
	}
	askee, err := parseSeat(args[0], g.Config.Players)
	if err != nil {
		C.Warn.Println(err)
		return
	}
	cd, err := parseCard(args[1])
	if err != nil {
		C.Warn.Println(err)
		return
	}
	if err := g.HumanAsk(askee, cd); err != nil {
		c.reportRuleError(err)
	}
}

func (c *CLI) handleNextCommand(g *game.Game, args []string) {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			C.Warn.Println("Usage: next [count]")
			return
		}
		count = n
	}
	for i := 0; i < count; i++ {
		if err := g.NextBot(); err != nil {
			c.reportRuleError(err)
			return
		}
	}
}

func (c *CLI) handleDeclareCommand(g *game.Game, args []string) error {
	if len(args) != 1 {
		C.Warn.Println("Usage: declare <book>")
		return nil
	}
	book, err := card.ParseBook(args[0])
	if err != nil {
		C.Warn.Println(err)
		return nil
	}
	h := humanSeat(g)
	params := g.Config.Params()

	guesses := make(map[int]card.Mask)
	for p := 0; p < params.Players; p++ {
		if params.Team(p) != params.Team(h.Seat()) {
			continue
		}
		if p == h.Seat() {
			guesses[p] = card.MaskOf(h.Hand()...) & book.Mask()
			continue
		}
		prompt := fmt.Sprintf("Cards of %s held by seat %d (blank for none): ", book, p)
		m, err := c.promptForCards(prompt, book)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				C.Info.Println("Declaration cancelled.")
				return nil
			}
			return fmt.Errorf("error reading line: %w", err)
		}
		guesses[p] = m
	}
	if err := g.Declare(h.Seat(), book, guesses); err != nil {
		c.reportRuleError(err)
	}
	return nil
}

func (c *CLI) handleConstraintsCommand(g *game.Game, args []string) {
	h := humanSeat(g)
	var p player.Player = h
	if len(args) > 0 {
		seat, err := parseSeat(args[0], g.Config.Players)
		if err != nil {
			C.Warn.Println(err)
			return
		}
		if !g.Players[seat].IsHuman() {
			C.Warn.Println("Only your own seats' notes are visible.")
			return
		}
		p = g.Players[seat]
	}
	if p.Engine() == nil {
		C.Warn.Println("No belief state yet.")
		return
	}
	fmt.Println()
	RenderConstraints(os.Stdout, fmt.Sprintf("Seat %d's Notes", p.Seat()), p.Engine())
}

func (c *CLI) handleHintCommand(g *game.Game) {
	h := humanSeat(g)
	if err := h.Err(); err != nil {
		C.Warn.Printf("Belief state is broken: %v\n", err)
		return
	}
	d := h.Hint()
	switch d.Kind {
	case belief.KindAsk:
		C.Info.Printf("Ask %s for %s.\n", ColorizeSeat(d.Askee, g.Config.Teams), ColorizeCard(d.Card))
	case belief.KindDeclare:
		C.Info.Printf("Declare %s:\n", ColorizeBook(d.Book))
		for _, p := range sortedSeats(d.Guesses) {
			fmt.Printf("   %s holds %s\n", ColorizeSeat(p, g.Config.Teams), ColorizeCards(d.Guesses[p].Cards()))
		}
	default:
		C.Info.Println("Nothing to do.")
	}
}

func (c *CLI) reportRuleError(err error) {
	switch {
	case errors.Is(err, game.ErrSanity):
		C.No.Printf("Error: %v\n", err)
		c.log.WithError(err).Error("Belief engine diverged from the table.")
	case errors.Is(err, game.ErrBotTurn):
		C.Warn.Println("It is a bot's turn; type 'next' to let it play.")
	case errors.Is(err, game.ErrHumanTurn):
		C.Warn.Println("It is your turn.")
	default:
		C.Warn.Printf("Error: %v\n", err)
	}
}
