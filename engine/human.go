package engine

import (
	"conquest/game"
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Decision is what a human front end submits: a move, or a request to undo
// the last one.
type Decision struct {
	Move game.Move
	Undo bool
}

// Input is a source of human decisions.
type Input interface {
	Next(ctx context.Context, state *game.GameState, canUndo bool) (Decision, error)
}

// ChannelInput feeds decisions pushed on C.
type ChannelInput struct {
	C chan Decision
}

func NewChannelInput() *ChannelInput {
	return &ChannelInput{C: make(chan Decision)}
}

func (in *ChannelInput) Next(ctx context.Context, _ *game.GameState, _ bool) (Decision, error) {
	select {
	case d := <-in.C:
		return d, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}

// Human is the MoveChooser for a seat played through an Input.
type Human struct {
	input  Input
	logger zerolog.Logger
}

func NewHuman(player *game.Player, input Input) *Human {
	return &Human{
		input:  input,
		logger: log.With().Str("component", "human").Str("player", player.Name).Logger(),
	}
}

func (h *Human) ChooseMove(ctx context.Context, state *game.GameState, canUndo bool) (game.Move, error) {
	for {
		d, err := h.input.Next(ctx, state, canUndo)
		if err != nil {
			return game.Move{}, err
		}
		if !d.Undo {
			return d.Move, nil
		}
		if canUndo {
			return game.Move{}, ErrUndoRequested
		}
		h.logger.Warn().Msg("nothing to undo")
	}
}
