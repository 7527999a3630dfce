package engine

import (
	"conquest/game"
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogPresenter writes every state change to the log and acknowledges
// immediately.
type LogPresenter struct {
	logger zerolog.Logger
}

func NewLogPresenter() *LogPresenter {
	return &LogPresenter{logger: log.With().Str("component", "presenter").Logger()}
}

func (p *LogPresenter) Present(_ context.Context, state *game.GameState, move *game.Move) error {
	players := state.Session.Players
	if move != nil {
		p.logger.Info().
			Int("turn", state.Move.Turn).
			Stringer("move", move).
			Msg("move applied")
	}
	for _, h := range state.Hints {
		event := p.logger.Debug().Str("hint", h.Text)
		if h.Region != game.Neutral {
			event = event.Str("region", state.Session.Map.Regions[h.Region].Name)
		}
		event.Msg("hint")
	}
	if state.Over() {
		event := p.logger.Info().Int("turn", state.Move.Turn)
		if state.Winner == game.Draw {
			event.Msg("game ended in a draw")
		} else {
			event.Str("winner", players[state.Winner].Name).Msg("game over")
		}
	}
	return nil
}

// NopPresenter acknowledges everything without output.
type NopPresenter struct{}

func (NopPresenter) Present(context.Context, *game.GameState, *game.Move) error { return nil }
