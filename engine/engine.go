package engine

import (
	"conquest/experiments/metrics"
	"conquest/game"
	"context"
	"errors"
)

// MaxMoves caps a single game so a pathological chooser cannot loop forever.
const MaxMoves = 100000

var (
	ErrUndoRequested = errors.New("undo requested")
	ErrMoveLimit     = errors.New("move limit reached")
)

// MoveChooser decides the moves of one seat. Implementations block until a
// move is ready or ctx is done. A chooser may return ErrUndoRequested when
// canUndo is set.
type MoveChooser interface {
	ChooseMove(ctx context.Context, state *game.GameState, canUndo bool) (game.Move, error)
}

// Presenter shows every state the game passes through. Present returns once
// whatever it displays for the state has finished, the next move is not
// processed before that.
type Presenter interface {
	Present(ctx context.Context, state *game.GameState, move *game.Move) error
}

type Engine interface {
	// Run plays the game until it is over, the move limit is hit or ctx is done.
	Run(ctx context.Context) (Result, error)
}

type Result struct {
	Winner      int // player index, game.Draw or game.NoWinner
	Final       *game.GameState
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}
