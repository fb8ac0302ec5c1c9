package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"
	"fish-toolbox/internal/events"
	"fish-toolbox/internal/game"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// GameRenderer implements the events.Listener interface to print the table
// to the console.
type GameRenderer struct {
	Teams int
	Quiet bool // skip per-turn output
}

// HandleEvent is the central dispatcher for rendering events.
func (r *GameRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.ResetEvent:
		C.Header.Printf("\n--- Deal %d ---\n", event.Deal+1)
	case events.GameReadyEvent:
		C.Header.Printf("--- %d seats dealt, %s acts first ---\n", event.Players, r.seat(event.FirstToAct))
	case events.HandRevealedEvent:
		C.Info.Printf("\n%s's hand: %s\n", r.seat(event.Player), ColorizeCards(event.Hand))
	case events.TurnStartEvent:
		if !r.Quiet {
			C.Header.Printf("\n--- Turn %d: %s ---\n", event.TurnNumber, r.seat(event.Player))
		}
	case events.AskResolvedEvent:
		if r.Quiet {
			return
		}
		C.Info.Printf("%s asks %s for %s", r.seat(event.Asker), r.seat(event.Askee), ColorizeCard(event.Card))
		if event.Success {
			C.Yes.Println(" -> handed over.")
		} else {
			C.No.Println(" -> no.")
		}
	case events.DeclarationEvent:
		r.renderDeclaration(event)
	case events.GameOverEvent:
		r.renderGameResult(event)
	}
}

func (r *GameRenderer) seat(p int) string { return ColorizeSeat(p, r.Teams) }

func (r *GameRenderer) renderDeclaration(event events.DeclarationEvent) {
	C.Header.Printf("%s declares %s", r.seat(event.Declarer), ColorizeBook(event.Book))
	if event.Success {
		C.Yes.Printf(" -> correct, team %d scores.\n", event.Team)
	} else {
		C.No.Printf(" -> wrong, team %d scores.\n", event.Team)
	}
	if r.Quiet {
		return
	}
	for _, p := range sortedSeats(event.Actual) {
		if event.Actual[p] != 0 {
			fmt.Printf("   %s held %s\n", r.seat(p), ColorizeCards(event.Actual[p].Cards()))
		}
	}
}

func (r *GameRenderer) renderGameResult(event events.GameOverEvent) {
	C.Header.Println("\n--- GAME OVER ---")
	C.Info.Printf("Actions taken: %d\n", event.TurnsRun)
	for team, score := range event.Scores {
		C.Info.Printf("Team %d: %d books\n", team, score)
	}
	if !event.Finished {
		C.Warn.Println("Game ended with books still in play.")
	}
}

// RenderTable prints seats, hand sizes and declared books.
func RenderTable(w io.Writer, g *game.Game) {
	params := g.Config.Params()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Table")
	t.AppendHeader(table.Row{"Seat", "Team", "Kind", "Cards", "Turn"})
	for seat, p := range g.Players {
		kind := "bot"
		if p.IsHuman() {
			kind = "human"
		}
		turn := ""
		if seat == g.Current() {
			turn = "◀"
		}
		t.AppendRow(table.Row{ColorizeSeat(seat, params.Teams), params.Team(seat), kind, len(g.Hand(seat)), turn})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()

	books := g.Books()
	declared := make([]card.Book, 0, len(books))
	for b := range books {
		declared = append(declared, b)
	}
	sort.Slice(declared, func(i, j int) bool { return declared[i] < declared[j] })
	for _, b := range declared {
		fmt.Fprintf(w, "  %s -> team %d\n", ColorizeBook(b), books[b])
	}
	fmt.Fprintf(w, "Scores: %v\n", g.Scores())
}

// RenderConstraints prints, for every seat, which cards of every book its
// hand could still contain according to e. Cards known for certain are
// green, possible ones yellow and excluded ones a dot.
func RenderConstraints(w io.Writer, title string, e *belief.Engine) {
	params := e.Params()
	books := params.Books()
	matrix := e.Matrix()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	header := table.Row{"Seat", "Slots"}
	for _, b := range books {
		header = append(header, strings.ToUpper(b.Short()))
	}
	t.AppendHeader(header)

	for p := 0; p < params.Players; p++ {
		known := card.MaskOf(e.Resolved(p)...)
		row := table.Row{ColorizeSeat(p, params.Teams), e.HandSize(p)}
		for _, b := range books {
			row = append(row, constraintCell(b, matrix[p], known, params.Cards))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()
}

func constraintCell(b card.Book, possible, known card.Mask, cards int) string {
	var sb strings.Builder
	for _, c := range b.Cards() {
		switch {
		case int(c) >= cards:
			sb.WriteString(" ")
		case known.Has(c):
			sb.WriteString(C.Yes.Sprint(c.ShortString()))
		case possible.Has(c):
			sb.WriteString(C.Maybe.Sprint(c.ShortString()))
		default:
			sb.WriteString(".")
		}
	}
	return sb.String()
}

// RenderSummary prints one row per simulated game and the team totals.
func RenderSummary(w io.Writer, teams int, results []game.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Simulation Summary")
	header := table.Row{"Game", "Actions", "Finished"}
	for team := 0; team < teams; team++ {
		header = append(header, fmt.Sprintf("Team %d", team))
	}
	t.AppendHeader(header)

	totals := make([]int, teams)
	wins := make([]int, teams)
	finished := 0
	for i, res := range results {
		row := table.Row{i + 1, res.Turns, res.Finished}
		best, bestTeam := -1, -1
		for team, score := range res.Scores {
			row = append(row, score)
			totals[team] += score
			switch {
			case score > best:
				best, bestTeam = score, team
			case score == best:
				bestTeam = -1
			}
		}
		if bestTeam >= 0 {
			wins[bestTeam]++
		}
		if res.Finished {
			finished++
		}
		t.AppendRow(row)
	}

	t.AppendSeparator()
	footer := table.Row{"Books", "", fmt.Sprintf("%d/%d", finished, len(results))}
	winRow := table.Row{"Wins", "", ""}
	for team := 0; team < teams; team++ {
		footer = append(footer, totals[team])
		winRow = append(winRow, wins[team])
	}
	t.AppendFooter(footer)
	t.AppendFooter(winRow)
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}

func sortedSeats(m map[int]card.Mask) []int {
	seats := make([]int, 0, len(m))
	for p := range m {
		seats = append(seats, p)
	}
	sort.Ints(seats)
	return seats
}
