package engine

import (
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher/agent"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LocalEngine runs a game in-process, one decision at a time.
type LocalEngine struct {
	State     *game.GameState
	previous  *game.GameState // for undo, nil when there is nothing to return to
	choosers  []MoveChooser
	presenter Presenter
	applied   int
	logger    zerolog.Logger
}

func NewLocalEngine(state *game.GameState, choosers []MoveChooser, presenter Presenter) *LocalEngine {
	if len(choosers) != len(state.Session.Players) {
		panic("number of choosers does not match number of players")
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &LocalEngine{
		State:     state,
		choosers:  choosers,
		presenter: presenter,
		logger: log.With().
			Str("component", "orchestrator").
			Str("game_id", state.Session.ID.String()).
			Logger(),
	}
}

// CanUndo reports whether the active player may take back their last move:
// it must have been their own, no battle may have happened since and only
// humans undo.
func (e *LocalEngine) CanUndo() bool {
	return e.previous != nil &&
		e.previous.Player() == e.State.Player() &&
		!e.State.Battle &&
		!e.State.ActivePlayer().IsAI()
}

// Run executes the entire game loop until the game is over.
func (e *LocalEngine) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	var moveMetrics []metrics.MoveMetric

	e.logger.Info().
		Int("players", len(e.choosers)).
		Int("turn_limit", e.State.Session.Rules.TurnLimit).
		Msg("game started")
	if err := e.presenter.Present(ctx, e.State, nil); err != nil {
		return Result{}, err
	}

	step := 0
	for !e.State.Over() {
		if step >= MaxMoves {
			return e.result(start, moveMetrics), ErrMoveLimit
		}
		step++

		player := e.State.Player()
		logger := e.logger.With().Int("turn", e.State.Move.Turn).Int("player", player).Logger()

		// players without land skip straight to the next turn
		if e.State.RegionCount(player) == 0 {
			logger.Debug().Msg("no regions left, ending turn")
			if err := e.advance(ctx, player, game.NewEndTurn(), false); err != nil {
				return e.result(start, moveMetrics), err
			}
			continue
		}

		chooser := e.choosers[player]
		move, err := chooser.ChooseMove(ctx, e.State, e.CanUndo())
		if errors.Is(err, ErrUndoRequested) {
			logger.Info().Msg("undo")
			e.State, e.previous = e.previous, nil
			if err := e.presenter.Present(ctx, e.State, nil); err != nil {
				return e.result(start, moveMetrics), err
			}
			continue
		}
		if err != nil {
			return e.result(start, moveMetrics), fmt.Errorf("player %d: %w", player, err)
		}

		if m, ok := chooser.(agent.Measured); ok {
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Turn:         e.State.Move.Turn,
				Player:       player,
				Move:         move.String(),
				SearchMetric: m.LastMetric(),
			})
		}

		err = e.advance(ctx, player, move, e.State.Session.Players[player].IsAI())
		var rejected *RejectedMoveError
		if errors.As(err, &rejected) {
			if _, human := chooser.(*Human); human {
				logger.Warn().Err(rejected.Err).Stringer("move", move).Msg("move rejected")
				continue
			}
		}
		if err != nil {
			return e.result(start, moveMetrics), err
		}
	}

	result := e.result(start, moveMetrics)
	e.logger.Info().
		Int("winner", result.Winner).
		Int("turns", e.State.Move.Turn).
		Dur("duration", result.GameMetric.Duration).
		Msg("game over")
	return result, nil
}

// RejectedMoveError wraps the rule violation of a move that was not applied.
type RejectedMoveError struct {
	Move game.Move
	Err  error
}

func (r *RejectedMoveError) Error() string {
	return fmt.Sprintf("move %v rejected: %v", r.Move, r.Err)
}

func (r *RejectedMoveError) Unwrap() error {
	return r.Err
}

// advance applies move, remembers the state before it for undo and waits
// for the presenter. Moves picked by an AI are announced with a click.
func (e *LocalEngine) advance(ctx context.Context, player int, move game.Move, click bool) error {
	next, err := e.State.ApplyFor(player, move)
	if err != nil {
		return &RejectedMoveError{Move: move, Err: err}
	}
	if click {
		next.Cue(game.SoundClick)
	}
	e.logger.Debug().
		Int("player", player).
		Stringer("move", move).
		Uint64("state", uint64(next.Hash())).
		Msg("move applied")
	e.previous, e.State = e.State, next
	e.applied++
	return e.presenter.Present(ctx, next, &move)
}

func (e *LocalEngine) result(start time.Time, moveMetrics []metrics.MoveMetric) Result {
	end := time.Now()
	return Result{
		Winner: e.State.Winner,
		Final:  e.State,
		GameMetric: metrics.GameMetric{
			Players:    len(e.choosers),
			Winner:     e.State.Winner,
			Turns:      e.State.Move.Turn,
			StartTime:  start,
			EndTime:    end,
			Duration:   end.Sub(start),
			TotalMoves: e.applied,
			Soldiers:   e.State.Session.SoldiersIssued(),
		},
		MoveMetrics: moveMetrics,
	}
}
