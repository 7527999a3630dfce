package game

import (
	"conquest/utils"
)

// Heuristic scores s for player: the adjusted value of every region they own
// plus a little for income. It is the evaluation used by the minimax search.
func Heuristic(player int, s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	return gs.Evaluate(player)
}

func (gs *GameState) Evaluate(player int) float64 {
	soldierBonus := gs.SlidingBonus(0.25, 0, 0.83)
	threatOpportunity := gs.SlidingBonus(1, 0, 0.83)

	total := 0.0
	for region, owner := range gs.Ownership {
		if owner != player {
			continue
		}
		value := gs.RegionFullValue(region)
		value += gs.RegionOpportunity(player, region)*threatOpportunity -
			gs.RegionThreat(player, region)*threatOpportunity*value
		value += float64(len(gs.Soldiers[region])) * soldierBonus
		total += value
	}

	// a point of faith counts as a twelfth of a soldier
	faith := float64(gs.Income(player)) * soldierBonus / 12
	return total + faith
}

// SlidingBonus interpolates from start to end over the part of the game after
// dropOff (a fraction of the turn limit). Before that point it stays at start.
func (gs *GameState) SlidingBonus(start, end, dropOff float64) float64 {
	limit := float64(gs.Session.Rules.TurnLimit)
	dropOffTurn := dropOff * limit
	alpha := (float64(gs.Move.Turn) - dropOffTurn) / (limit - dropOffTurn)
	if alpha < 0 {
		alpha = 0
	}
	return start + (end-start)*alpha
}

// RegionFullValue is 1 for plain land, more for temples and upgraded temples.
func (gs *GameState) RegionFullValue(region int) float64 {
	temple, ok := gs.Temples[region]
	if !ok {
		return 1
	}
	templeBonus := gs.SlidingBonus(6, 0, 0.5)
	upgradeBonus := gs.SlidingBonus(4, 0, 0.9)
	upgradeValue := 0.0
	if temple.Upgrade != NoUpgrade {
		upgradeValue = float64(temple.Level + 1)
	}
	return 1 + templeBonus + upgradeBonus*upgradeValue
}

// RegionThreat measures how badly the strongest adjacent enemy force
// outnumbers the soldiers on region. Harder AI levels also count enemy
// soldiers up to two regions behind the border, at a discount.
func (gs *GameState) RegionThreat(player, region int) float64 {
	level := gs.Session.Rules.Level
	if level == Nice {
		return 0
	}

	depth, ceiling := 2, 1.1
	if level == Rude {
		depth, ceiling = 0, 0.5
	}

	type entry struct{ region, depth int }
	ours := float64(len(gs.Soldiers[region]))
	enemy := 0.0
	for _, neighbor := range gs.Session.Map.Regions[region].Neighbors {
		nOwner := gs.Ownership[neighbor]
		if nOwner == player || nOwner == Neutral {
			continue
		}

		total := 0.0
		queue := []entry{{neighbor, depth}}
		var visited []int
		for len(queue) > 0 {
			e := queue[0]
			queue = queue[1:]
			weight := 1.0
			if level > Rude {
				weight = float64(2+e.depth) / 4
			}
			total += float64(len(gs.Soldiers[e.region])) * weight
			visited = append(visited, e.region)

			if e.depth > 0 {
				for _, candidate := range gs.Session.Map.Regions[e.region].Neighbors {
					if !utils.Contains(visited, candidate) && gs.Ownership[candidate] == nOwner {
						queue = append(queue, entry{candidate, e.depth - 1})
					}
				}
			}
		}
		enemy = max(enemy, total)
	}

	return utils.Clamp((enemy/(ours+0.0001)-1)/1.5, 0, ceiling)
}

// RegionOpportunity sums, over foreign neighbors, how well the army on region
// outnumbers their defenders, weighted by what the neighbor is worth.
func (gs *GameState) RegionOpportunity(player, region int) float64 {
	if gs.Session.Rules.Level == Nice {
		return 0
	}
	attackers := float64(len(gs.Soldiers[region]))
	if attackers == 0 {
		return 0
	}

	total := 0.0
	for _, neighbor := range gs.Session.Map.Regions[region].Neighbors {
		if gs.Ownership[neighbor] == player {
			continue
		}
		defenders := float64(len(gs.Soldiers[neighbor]))
		total += utils.Clamp((attackers/(defenders+0.01)-0.9)*0.5, 0, 0.5) * gs.RegionFullValue(neighbor)
	}
	return total
}

// TempleDangerousness is how exposed, and how useful for attacking, a temple is
// for its owner.
func (gs *GameState) TempleDangerousness(t Temple) float64 {
	owner := gs.Ownership[t.Region]
	return gs.RegionThreat(owner, t.Region) + gs.RegionOpportunity(owner, t.Region)
}
