package engine

import (
	"conquest/game"
	"conquest/searcher"
	"conquest/searcher/agent"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// lineGame builds a one-turn game on regions 0-1-2 with player 0 on 0 and
// player 1 on 2.
func lineGame(t *testing.T, controllers ...game.Controller) *game.GameState {
	t.Helper()
	m := game.NewMap()
	for i := 0; i < 3; i++ {
		m.AddRegion(fmt.Sprintf("Region %d", i), fmt.Sprintf("R%d", i))
	}
	m.AddBorder(0, 1)
	m.AddBorder(1, 2)
	players, err := game.NewPlayers(controllers...)
	require.NoError(t, err, "players should be created")
	rules := game.NewStandardRules()
	rules.TurnLimit = 1
	session, err := game.NewSession(m, players, rules, 3)
	require.NoError(t, err, "session should be created")

	gs := game.NewGameState(session)
	put(gs, 0, 0, 3)
	put(gs, 2, 1, 3)
	return gs
}

func put(gs *game.GameState, region, owner, soldiers int) {
	gs.Ownership[region] = owner
	gs.Soldiers[region] = nil
	for i := 0; i < soldiers; i++ {
		gs.Soldiers[region] = append(gs.Soldiers[region], gs.Session.NextSoldier())
	}
}

type scripted struct {
	moves []game.Move
	asked int
}

func (s *scripted) ChooseMove(_ context.Context, _ *game.GameState, _ bool) (game.Move, error) {
	if s.asked >= len(s.moves) {
		return game.Move{}, errors.New("script exhausted")
	}
	s.asked++
	return s.moves[s.asked-1], nil
}

type recorder struct {
	moves  []*game.Move
	states []*game.GameState
}

func (r *recorder) Present(_ context.Context, state *game.GameState, move *game.Move) error {
	r.moves = append(r.moves, move)
	r.states = append(r.states, state)
	return nil
}

func clicked(state *game.GameState) bool {
	for _, h := range state.Hints {
		if h.Kind == game.SoundCue && h.Text == game.SoundClick {
			return true
		}
	}
	return false
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("human moves, rejections and undo", func(t *testing.T) {
		gs := lineGame(t, game.HumanController, game.AIController)
		input := NewChannelInput()
		human := NewHuman(gs.Session.Players[0], input)
		opponent := &scripted{moves: []game.Move{game.NewEndTurn()}}
		rec := &recorder{}
		e := NewLocalEngine(gs, []MoveChooser{human, opponent}, rec)

		go func() {
			for _, d := range []Decision{
				{Move: game.NewArmyMove(0, 2, 1)}, // not adjacent
				{Undo: true},                      // nothing to undo yet
				{Move: game.NewArmyMove(0, 1, 1)},
				{Undo: true},
				{Move: game.NewEndTurn()},
			} {
				input.C <- d
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		result, err := e.Run(ctx)
		require.NoError(t, err, "game should finish")

		require.True(t, result.Final.Over(), "turn limit should end the game")
		require.Equal(t, game.Neutral, result.Final.Owner(1), "undone conquest should not stick")
		require.Equal(t, game.Draw, result.Winner, "one region each is a draw")
		require.Equal(t, 1, opponent.asked, "opponent decides once")
		require.Len(t, rec.moves, 5, "initial, move, undo and two turn ends are presented")
		require.Nil(t, rec.moves[0], "initial state has no move")
		require.Equal(t, game.NewArmyMove(0, 1, 1), *rec.moves[1], "accepted move is presented")
		require.Nil(t, rec.moves[2], "undo presents the restored state")
		require.Equal(t, 3, result.GameMetric.TotalMoves, "undone moves still count as applied")
	})

	t.Run("landless players end their turn automatically", func(t *testing.T) {
		gs := lineGame(t, game.AIController, game.AIController)
		gs.Ownership[0] = game.Neutral
		gs.Soldiers[0] = nil
		never := &scripted{}
		opponent := &scripted{moves: []game.Move{game.NewEndTurn()}}
		e := NewLocalEngine(gs, []MoveChooser{never, opponent}, nil)

		result, err := e.Run(context.Background())
		require.NoError(t, err, "game should finish")
		require.Zero(t, never.asked, "landless player is never consulted")
		require.Equal(t, 1, result.Winner, "only player 1 holds land")
	})

	t.Run("AI moves are announced with a click", func(t *testing.T) {
		gs := lineGame(t, game.HumanController, game.AIController)
		human := &scripted{moves: []game.Move{game.NewArmyMove(0, 1, 1), game.NewEndTurn()}}
		ai := &scripted{moves: []game.Move{game.NewEndTurn()}}
		rec := &recorder{}
		e := NewLocalEngine(gs, []MoveChooser{human, ai}, rec)

		_, err := e.Run(context.Background())
		require.NoError(t, err, "game should finish")
		require.Len(t, rec.states, 4, "initial state and three moves are presented")
		require.False(t, clicked(rec.states[1]), "human move has no click")
		require.False(t, clicked(rec.states[2]), "human turn end has no click")
		require.True(t, clicked(rec.states[3]), "AI move clicks")
	})

	t.Run("AI rule violations abort the game", func(t *testing.T) {
		gs := lineGame(t, game.AIController, game.AIController)
		bad := &scripted{moves: []game.Move{game.NewArmyMove(0, 2, 1)}}
		e := NewLocalEngine(gs, []MoveChooser{bad, &scripted{}}, nil)

		_, err := e.Run(context.Background())
		require.ErrorIs(t, err, game.ErrNotAdjacent, "the rule violation should surface")
	})

	t.Run("cancellation stops a waiting human", func(t *testing.T) {
		gs := lineGame(t, game.HumanController, game.AIController)
		human := NewHuman(gs.Session.Players[0], NewChannelInput())
		e := NewLocalEngine(gs, []MoveChooser{human, &scripted{}}, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := e.Run(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded, "run should end with the context")
	})

	t.Run("AI against AI on the standard map", func(t *testing.T) {
		rules := game.NewStandardRules()
		rules.TurnLimit = 2
		gs, err := game.NewGame(game.Setup{
			Controllers: []game.Controller{game.AIController, game.AIController},
			Rules:       rules,
			Seed:        11,
		})
		require.NoError(t, err, "game setup should succeed")

		var choosers []MoveChooser
		for _, p := range gs.Session.Players {
			m := searcher.NewMinimax(
				searcher.WithMinThinkingTime(0),
				searcher.WithMaxThinkingTime(50*time.Millisecond),
				searcher.WithMetrics(),
			)
			choosers = append(choosers, agent.NewAI(p, m))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		result, err := NewLocalEngine(gs, choosers, NewLogPresenter()).Run(ctx)
		require.NoError(t, err, "game should finish")
		require.True(t, result.Final.Over(), "turn limit should end the game")
		require.NotEqual(t, game.NoWinner, result.Winner, "a finished game has a winner or a draw")
		require.NotEmpty(t, result.MoveMetrics, "AI decisions are measured")
		require.Equal(t, len(result.MoveMetrics), result.GameMetric.TotalMoves, "every AI move was applied")
	})
}

func TestCanUndo(t *testing.T) {
	t.Run("only after an own move without battle", func(t *testing.T) {
		gs := lineGame(t, game.HumanController, game.AIController)
		e := NewLocalEngine(gs, []MoveChooser{&scripted{}, &scripted{}}, nil)
		require.False(t, e.CanUndo(), "nothing to undo at the start")

		require.NoError(t, e.advance(context.Background(), 0, game.NewArmyMove(0, 1, 1), false), "move should apply")
		require.True(t, e.CanUndo(), "own move can be taken back")

		e.State.Battle = true
		require.False(t, e.CanUndo(), "battles cannot be undone")
		e.State.Battle = false

		require.NoError(t, e.advance(context.Background(), 0, game.NewEndTurn(), false), "turn should end")
		require.False(t, e.CanUndo(), "the previous move belonged to another player")
	})
}
