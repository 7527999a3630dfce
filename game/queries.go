package game

import (
	"math"

	"conquest/utils"
)

// Owner returns the player holding region, or Neutral.
func (gs *GameState) Owner(region int) int {
	return gs.Ownership[region]
}

func (gs *GameState) SoldierCount(region int) int {
	return len(gs.Soldiers[region])
}

func (gs *GameState) RegionCount(player int) int {
	count := 0
	for _, owner := range gs.Ownership {
		if owner == player {
			count++
		}
	}
	return count
}

func (gs *GameState) TotalSoldiers(player int) int {
	total := 0
	for region, owner := range gs.Ownership {
		if owner == player {
			total += len(gs.Soldiers[region])
		}
	}
	return total
}

// TemplesOf returns the temples owned by player, ordered by region.
func (gs *GameState) TemplesOf(player int) []Temple {
	var temples []Temple
	for _, region := range gs.templeRegions() {
		if gs.Ownership[region] == player {
			temples = append(temples, gs.Temples[region])
		}
	}
	return temples
}

func (gs *GameState) CashOf(player int) int {
	if player < 0 || player >= len(gs.Cash) {
		return 0
	}
	return gs.Cash[player]
}

// UpgradeLevel is the strongest effect of kind across the player's temples.
// Neutral forces never have upgrades.
func (gs *GameState) UpgradeLevel(player int, kind UpgradeKind) int {
	if player == Neutral {
		return 0
	}
	upgrade, ok := LookupUpgrade(kind)
	if !ok {
		return 0
	}
	level := 0
	for _, t := range gs.TemplesOf(player) {
		if t.Upgrade == kind {
			level = max(level, upgrade.Effect(t.Level))
		}
	}
	return level
}

// RawUpgradeLevel is the highest 1-based level of kind across the player's
// temples, 0 when none carries it.
func (gs *GameState) RawUpgradeLevel(player int, kind UpgradeKind) int {
	level := 0
	for _, t := range gs.TemplesOf(player) {
		if t.Upgrade == kind {
			level = max(level, t.Level+1)
		}
	}
	return level
}

// Income is the faith credited to player when their turn ends: one per region
// plus one per soldier standing on their temples, scaled by Water. Players
// without temples earn nothing.
func (gs *GameState) Income(player int) int {
	if player < 0 || player >= len(gs.Session.Players) {
		return 0
	}
	temples := gs.TemplesOf(player)
	if len(temples) == 0 {
		return 0
	}
	base := gs.RegionCount(player)
	for _, t := range temples {
		base += gs.SoldierCount(t.Region)
	}
	multiplier := 1.0 + 0.01*float64(gs.UpgradeLevel(player, Water))
	if gs.Session.Players[player].IsAI() && gs.Session.Rules.Level == Evil {
		multiplier += 0.4
	}
	return int(math.Ceil(multiplier * float64(base)))
}

// SoldierCost is the price of the next soldier the active player buys.
func (gs *GameState) SoldierCost() int {
	upgrade, _ := LookupUpgrade(Soldier)
	cost, ok := upgrade.Cost(gs.Move.Bought)
	if !ok {
		return math.MaxInt
	}
	return cost
}

// RegionHasActiveArmy reports whether player can still move soldiers out of region this turn.
func (gs *GameState) RegionHasActiveArmy(player, region int) bool {
	return gs.Move.MovesLeft > 0 &&
		gs.Ownership[region] == player &&
		len(gs.Soldiers[region]) > 0 &&
		!utils.Contains(gs.Move.Conquered, region)
}

// LivingPlayers counts players that still own at least one region.
func (gs *GameState) LivingPlayers() int {
	living := 0
	for i := range gs.Session.Players {
		if gs.RegionCount(i) > 0 {
			living++
		}
	}
	return living
}
