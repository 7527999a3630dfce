package agent

import (
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	_ Agent    = (*AI)(nil)
	_ Measured = (*AI)(nil)
)

// AI plays one seat: it buys soldiers and upgrades according to its
// personality and otherwise searches its own remaining moves with minimax.
type AI struct {
	player     int
	eagerness  float64
	searcher   *searcher.Minimax
	logger     zerolog.Logger
	mu         sync.Mutex
	upgrades   []game.UpgradeKind // wish list, consumed front to back
	lastMetric metrics.SearchMetric
}

// NewAI builds the agent for player. The personality's wish list is copied so
// the agent can consume it without touching the session.
func NewAI(player *game.Player, m *searcher.Minimax) *AI {
	personality := game.Personality{SoldierEagerness: 1}
	if player.Personality != nil {
		personality = player.Personality.Clone()
	}
	return &AI{
		player:    player.Index,
		eagerness: personality.SoldierEagerness,
		searcher:  m,
		upgrades:  personality.Upgrades,
		logger: log.With().
			Str("component", "ai").
			Str("player", player.Name).
			Logger(),
	}
}

func (a *AI) ChooseMove(ctx context.Context, state *game.GameState, _ bool) (game.Move, error) {
	moves := make(chan game.Move, 1)
	report := func(move game.Move) { moves <- move }

	if move, ok := a.Decide(state); ok {
		a.logger.Debug().Stringer("move", move).Msg("build decision")
		a.setMetric(metrics.SearchMetric{})
		start := a.searcher.Now()
		go a.searcher.Deliver(start, move, report)
	} else {
		depth := state.Move.MovesLeft
		if depth == 0 {
			depth = 1
		}
		a.searcher.ChooseMove(a.player, state.Simulate(a.player), depth, func(move game.Move) {
			a.setMetric(a.searcher.LastMetric())
			report(move)
		})
	}

	select {
	case move := <-moves:
		return move, nil
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	}
}

// Decide returns the build action the agent wants to take right now, if any.
// Soldiers come first, then the next upgrade on the wish list.
func (a *AI) Decide(state *game.GameState) (game.Move, bool) {
	if a.ShouldBuildSoldier(state) {
		return a.soldierAtBestTemple(state), true
	}
	return a.UpgradeToBuild(state)
}

// ShouldBuildSoldier weighs how far behind the strongest force the player is
// against how much of their cash a soldier would eat.
func (a *AI) ShouldBuildSoldier(state *game.GameState) bool {
	if len(state.TemplesOf(a.player)) == 0 {
		return false
	}

	a.mu.Lock()
	preference := 1.0
	if len(a.upgrades) > 0 {
		preference = a.eagerness
	}
	a.mu.Unlock()

	cash := state.CashOf(a.player)
	if cash <= 0 {
		return false
	}
	relativeCost := float64(state.SoldierCost()) / float64(cash)
	if relativeCost > 1 {
		return false
	}

	strongest := 0.0
	for i := range state.Session.Players {
		strongest = max(strongest, force(state, i))
	}
	disparity := strongest / force(state, a.player)

	return disparity*preference-relativeCost >= 0
}

func force(state *game.GameState, player int) float64 {
	return float64(state.RegionCount(player)*2 + state.TotalSoldiers(player))
}

func (a *AI) soldierAtBestTemple(state *game.GameState) game.Move {
	temples := state.TemplesOf(a.player)
	best := temples[0]
	bestDanger := state.TempleDangerousness(best)
	for _, t := range temples[1:] {
		if d := state.TempleDangerousness(t); d > bestDanger {
			best, bestDanger = t, d
		}
	}
	return game.NewBuildAction(best.Region, game.Soldier)
}

// UpgradeToBuild pops the head of the wish list when it is affordable and
// there is a temple that can take it, placing it on the safest such temple.
// A wish that has reached the top level is dropped.
func (a *AI) UpgradeToBuild(state *game.GameState) (game.Move, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.upgrades) == 0 {
		return game.Move{}, false
	}
	desire := a.upgrades[0]
	upgrade, ok := game.LookupUpgrade(desire)
	if !ok {
		a.upgrades = a.upgrades[1:]
		return game.Move{}, false
	}
	level := state.RawUpgradeLevel(a.player, desire)
	cost, ok := upgrade.Cost(level)
	if !ok {
		a.logger.Debug().Stringer("upgrade", desire).Msg("wish already maxed, dropping it")
		a.upgrades = a.upgrades[1:]
		return game.Move{}, false
	}
	if state.CashOf(a.player) < cost {
		return game.Move{}, false
	}

	var candidates []game.Temple
	for _, t := range state.TemplesOf(a.player) {
		if (t.Upgrade == game.NoUpgrade && level == 0) || t.Upgrade == desire {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return game.Move{}, false
	}

	safest := candidates[0]
	safestDanger := state.TempleDangerousness(safest)
	for _, t := range candidates[1:] {
		if d := state.TempleDangerousness(t); d < safestDanger {
			safest, safestDanger = t, d
		}
	}

	a.upgrades = a.upgrades[1:]
	return game.NewBuildAction(safest.Region, desire), true
}

// Wishes returns what is left of the agent's upgrade wish list.
func (a *AI) Wishes() []game.UpgradeKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]game.UpgradeKind(nil), a.upgrades...)
}

func (a *AI) LastMetric() metrics.SearchMetric {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastMetric
}

func (a *AI) setMetric(m metrics.SearchMetric) {
	a.mu.Lock()
	a.lastMetric = m
	a.mu.Unlock()
}
