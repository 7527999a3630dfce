package agent

import (
	"conquest/experiments/metrics"
	"conquest/game"
	"context"
)

type Agent interface {
	// ChooseMove blocks until the agent has decided on a move for the active
	// player of state or ctx is cancelled.
	ChooseMove(ctx context.Context, state *game.GameState, canUndo bool) (game.Move, error)
}

// Measured is implemented by agents that record how their last decision was
// searched.
type Measured interface {
	LastMetric() metrics.SearchMetric
}
