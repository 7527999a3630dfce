package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"conquest/engine"
	"conquest/game"
)

const terminalHelp = `commands:
  move <from> <to> <n>     move n soldiers, regions by abbreviation, name or id
  build <region> <kind>    soldier, water, fire, air, earth or respec
  end                      end the turn
  undo                     take back the last move
  moves                    list every legal move, then pick one by number
  help                     show this text`

var errHelp = errors.New("help requested")

// terminalInput reads human decisions line by line.
type terminalInput struct {
	lines chan string
	out   io.Writer
	last  []game.Move // listed by the moves command
}

func newTerminalInput(in io.Reader, out io.Writer) *terminalInput {
	t := &terminalInput{lines: make(chan string), out: out}
	go func() {
		defer close(t.lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			t.lines <- scanner.Text()
		}
	}()
	return t
}

func (t *terminalInput) Next(ctx context.Context, state *game.GameState, canUndo bool) (engine.Decision, error) {
	for {
		prompt := fmt.Sprintf("%s, %d move(s) left, %d faith", state.ActivePlayer().Name, state.Move.MovesLeft, state.CashOf(state.Player()))
		if canUndo {
			prompt += ", undo available"
		}
		fmt.Fprintf(t.out, "%s> ", prompt)

		var line string
		select {
		case l, ok := <-t.lines:
			if !ok {
				return engine.Decision{}, io.EOF
			}
			line = l
		case <-ctx.Done():
			return engine.Decision{}, ctx.Err()
		}

		d, err := t.parse(state, line)
		switch {
		case errors.Is(err, errHelp):
			fmt.Fprintln(t.out, terminalHelp)
			printCatalog(t.out)
		case err != nil:
			fmt.Fprintf(t.out, "%v\n", err)
		default:
			return d, nil
		}
	}
}

func printCatalog(w io.Writer) {
	fmt.Fprintln(w, "upgrades:")
	for _, u := range game.Catalog() {
		switch {
		case u.Kind == game.Soldier:
			fmt.Fprintf(w, "  %-8s %s, the price rises with each one bought this turn\n", u.Kind, u.Name)
		case u.Kind.Elemental():
			for level := range u.Costs {
				cost, _ := u.Cost(level)
				fmt.Fprintf(w, "  %-8s %s ($%d): %s\n", u.Kind, u.Title(level), cost, u.Describe(level))
			}
		default:
			fmt.Fprintf(w, "  %-8s %s: %s\n", u.Kind, u.Name, u.Description)
		}
	}
}

func (t *terminalInput) parse(state *game.GameState, line string) (engine.Decision, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return engine.Decision{}, errHelp
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		if n < 1 || n > len(t.last) {
			return engine.Decision{}, fmt.Errorf("pick a number between 1 and %d", len(t.last))
		}
		return engine.Decision{Move: t.last[n-1]}, nil
	}

	m := state.Session.Map
	switch strings.ToLower(fields[0]) {
	case "move", "m":
		if len(fields) != 4 {
			return engine.Decision{}, errors.New("usage: move <from> <to> <n>")
		}
		from, err := m.Lookup(fields[1])
		if err != nil {
			return engine.Decision{}, err
		}
		to, err := m.Lookup(fields[2])
		if err != nil {
			return engine.Decision{}, err
		}
		count, err := strconv.Atoi(fields[3])
		if err != nil {
			return engine.Decision{}, fmt.Errorf("soldier count %q: %w", fields[3], err)
		}
		return engine.Decision{Move: game.NewArmyMove(from.ID, to.ID, count)}, nil
	case "build", "b":
		if len(fields) != 3 {
			return engine.Decision{}, errors.New("usage: build <region> <kind>")
		}
		region, err := m.Lookup(fields[1])
		if err != nil {
			return engine.Decision{}, err
		}
		kind, err := game.ParseUpgrade(fields[2])
		if err != nil {
			return engine.Decision{}, err
		}
		return engine.Decision{Move: game.NewBuildAction(region.ID, kind)}, nil
	case "end", "e":
		return engine.Decision{Move: game.NewEndTurn()}, nil
	case "undo", "u":
		return engine.Decision{Undo: true}, nil
	case "moves":
		t.last = state.LegalMoves()
		for i, move := range t.last {
			fmt.Fprintf(t.out, "%3d  %s\n", i+1, describeMove(state, move))
		}
		return engine.Decision{}, errors.New("pick a move by number")
	case "help", "h", "?":
		return engine.Decision{}, errHelp
	default:
		return engine.Decision{}, fmt.Errorf("unknown command %q, try help", fields[0])
	}
}

func describeMove(state *game.GameState, move game.Move) string {
	regions := state.Session.Map.Regions
	switch move.Action {
	case game.ArmyMove:
		return fmt.Sprintf("move %d %s -> %s", move.Count, regions[move.From].Name, regions[move.To].Name)
	case game.BuildAction:
		return fmt.Sprintf("build %s at %s", move.Upgrade, regions[move.Region].Name)
	default:
		return move.String()
	}
}

// terminalPresenter prints a summary of every state.
type terminalPresenter struct {
	out    io.Writer
	active int // player to move in the previously presented state
}

func (p *terminalPresenter) Present(_ context.Context, state *game.GameState, move *game.Move) error {
	if move != nil {
		fmt.Fprintf(p.out, "\n%s: %s\n", state.Session.Players[p.active].Name, describeMove(state, *move))
	}
	p.active = state.Player()
	for _, h := range state.Hints {
		if h.Kind == game.FloatingText || h.Kind == game.Banner {
			fmt.Fprintf(p.out, "  %s\n", h.Text)
		}
	}

	fmt.Fprintf(p.out, "turn %d of %d\n", state.Move.Turn, state.Session.Rules.TurnLimit)
	for i, player := range state.Session.Players {
		fmt.Fprintf(p.out, "  %-9s regions %2d  soldiers %3d  faith %3d  income %3d\n",
			player.Name, state.RegionCount(i), state.TotalSoldiers(i), state.CashOf(i), state.Income(i))
	}
	if state.Over() {
		if state.Winner == game.Draw {
			fmt.Fprintln(p.out, "the game ends in a draw")
		} else {
			fmt.Fprintf(p.out, "%s wins!\n", state.Session.Players[state.Winner].Name)
		}
		return nil
	}

	if !state.ActivePlayer().IsAI() {
		for region, owner := range state.Ownership {
			if owner != state.Player() {
				continue
			}
			r := state.Session.Map.Regions[region]
			line := fmt.Sprintf("    %-4s %-22s %3d", r.Abbreviation, r.Name, state.SoldierCount(region))
			if t, ok := state.Temples[region]; ok {
				line += "  temple"
				if t.Upgrade != game.NoUpgrade {
					u, _ := game.LookupUpgrade(t.Upgrade)
					line += " " + u.Title(t.Level)
				}
			}
			fmt.Fprintln(p.out, line)
		}
	}
	return nil
}
