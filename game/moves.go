package game

// LegalMoves lists the moves worth considering for the active player. Ending
// the turn is always included. Army moves come in two sizes per neighbor (the
// whole army and half of it) and attacks into a region holding more defenders
// than the attackers sent are left out. The order is shuffled by a source
// seeded from the session seed and the state hash, so the same state always
// lists its moves in the same order and the combat random source is untouched.
func (gs *GameState) LegalMoves() []Move {
	moves := []Move{NewEndTurn()}
	if gs.Move.MovesLeft <= 0 {
		return moves
	}

	player := gs.Move.Player
	add := func(from, to, count int) {
		if gs.Ownership[to] != player && len(gs.Soldiers[to]) > count {
			return
		}
		moves = append(moves, NewArmyMove(from, to, count))
	}

	for _, region := range gs.Session.Map.Regions {
		if !gs.RegionHasActiveArmy(player, region.ID) {
			continue
		}
		soldiers := len(gs.Soldiers[region.ID])
		for _, neighbor := range region.Neighbors {
			add(region.ID, neighbor, soldiers)
			if soldiers > 1 {
				add(region.ID, neighbor, soldiers/2)
			}
		}
	}

	gs.Session.stateRand(gs.Hash()).Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
	return moves
}
