package searcher

import "conquest/game"

// Searcher picks a move for perspective from state, looking depth plies ahead.
// The result is reported exactly once through report, possibly from another
// goroutine.
type Searcher interface {
	ChooseMove(perspective int, state game.State, depth int, report func(game.Move))
}
