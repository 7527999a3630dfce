package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlidingBonus(t *testing.T) {
	t.Run("holds the start value before the drop-off", func(t *testing.T) {
		gs := lineState(t, 2, NewStandardRules())
		require.InDelta(t, 0.25, gs.SlidingBonus(0.25, 0, 0.83), 1e-9, "turn 1 of 12")
	})

	t.Run("reaches the end value at the turn limit", func(t *testing.T) {
		gs := lineState(t, 2, NewStandardRules())
		gs.Move.Turn = 12
		require.InDelta(t, 0.0, gs.SlidingBonus(0.25, 0, 0.83), 1e-9, "last turn")
		gs.Move.Turn = 9
		require.InDelta(t, 3.0, gs.SlidingBonus(6, 0, 0.5), 1e-9, "halfway through the decay")
	})
}

func TestHeuristic(t *testing.T) {
	t.Run("plain regions and soldiers", func(t *testing.T) {
		gs := lineState(t, 3, NewStandardRules())
		place(gs, 0, 0, 2)
		place(gs, 2, 1, 1)

		require.InDelta(t, 1.5, Heuristic(0, gs), 1e-9, "1 for the region, 0.25 per soldier")
	})

	t.Run("temples are worth more early on", func(t *testing.T) {
		gs := lineState(t, 3, NewStandardRules())
		place(gs, 0, 0, 0)
		gs.Temples[0] = Temple{Region: 0, Upgrade: Fire, Level: 1}
		// 1 + 6 + 4*2
		require.InDelta(t, 15.0, gs.RegionFullValue(0), 1e-9, "upgraded cathedral")
		require.InDelta(t, 1.0, gs.RegionFullValue(1), 1e-9, "plain land")
	})

	t.Run("nice AI sees no threats or opportunities", func(t *testing.T) {
		gs := lineState(t, 2, NewStandardRules())
		place(gs, 0, 0, 1)
		place(gs, 1, 1, 9)
		require.Zero(t, gs.RegionThreat(0, 0), "nice level ignores threats")
		require.Zero(t, gs.RegionOpportunity(1, 1), "nice level ignores opportunities")
	})

	t.Run("rude AI caps threat at 0.5", func(t *testing.T) {
		rules := NewStandardRules()
		rules.Level = Rude
		gs := lineState(t, 2, rules)
		place(gs, 0, 0, 1)
		place(gs, 1, 1, 4)
		require.InDelta(t, 0.5, gs.RegionThreat(0, 0), 1e-9, "threat is capped")
	})

	t.Run("mean AI counts soldiers behind the border at a discount", func(t *testing.T) {
		rules := NewStandardRules()
		rules.Level = Mean
		gs := lineState(t, 4, rules)
		place(gs, 0, 0, 3)
		place(gs, 1, 1, 2)
		place(gs, 2, 1, 2)
		place(gs, 3, 1, 4)
		// 2*1 + 2*0.75 + 4*0.5 = 5.5 enemy presence
		want := (5.5/3.0001 - 1) / 1.5
		require.InDelta(t, want, gs.RegionThreat(0, 0), 1e-9, "weighted reach")
	})

	t.Run("opportunity rewards outnumbering neighbors", func(t *testing.T) {
		rules := NewStandardRules()
		rules.Level = Mean
		gs := lineState(t, 3, rules)
		place(gs, 1, 0, 4)
		place(gs, 2, 1, 1)
		// neighbor 0 is empty neutral: capped at 0.5; neighbor 2: (4/1.01-0.9)*0.5 capped at 0.5
		require.InDelta(t, 1.0, gs.RegionOpportunity(0, 1), 1e-9, "two capped opportunities")
	})
}
