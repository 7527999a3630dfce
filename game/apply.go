package game

import "fmt"

// Apply validates move for the active player and returns the resulting state.
// The receiver is never modified.
func (gs *GameState) Apply(move Move) (*GameState, error) {
	if err := gs.Validate(move); err != nil {
		return nil, err
	}
	next := gs.Clone()
	switch move.Action {
	case ArmyMove:
		next.moveSoldiers(move.From, move.To, move.Count)
	case BuildAction:
		next.buildUpgrade(move.Region, move.Upgrade)
	case EndTurn:
		next.Move.MovesLeft = 0
		next.nextTurn()
	}
	next.afterMoveChecks()
	return next, nil
}

// ApplyFor is Apply on behalf of player, rejecting moves sent out of turn.
func (gs *GameState) ApplyFor(player int, move Move) (*GameState, error) {
	if !gs.Over() && player != gs.Move.Player {
		return nil, fmt.Errorf("player %d, active %d: %w", player, gs.Move.Player, ErrNotYourTurn)
	}
	return gs.Apply(move)
}

// Play is Apply for callers that only ever feed generated moves, it panics on
// an invalid move.
func (gs *GameState) Play(move Move) State {
	next, err := gs.Apply(move)
	if err != nil {
		panic(fmt.Sprintf("invalid move %v: %v", move, err))
	}
	return next
}

// Validate checks move against the rules without applying it.
func (gs *GameState) Validate(move Move) error {
	if gs.Over() {
		return ErrGameOver
	}
	player := gs.Move.Player
	m := gs.Session.Map

	switch move.Action {
	case ArmyMove:
		if !m.Valid(move.From) || !m.Valid(move.To) {
			return fmt.Errorf("move %d->%d: %w", move.From, move.To, ErrUnknownRegion)
		}
		if move.Count <= 0 {
			return fmt.Errorf("move %d soldiers: %w", move.Count, ErrInvalidSoldierCount)
		}
		if gs.Ownership[move.From] != player {
			return fmt.Errorf("move from %d: %w", move.From, ErrNotOwner)
		}
		if gs.Move.MovesLeft <= 0 {
			return ErrNoMovesLeft
		}
		if !gs.RegionHasActiveArmy(player, move.From) {
			return fmt.Errorf("move from %d: %w", move.From, ErrNoActiveArmy)
		}
		if !m.Adjacent(move.From, move.To) {
			return fmt.Errorf("move %d->%d: %w", move.From, move.To, ErrNotAdjacent)
		}
		if move.Count > gs.SoldierCount(move.From) {
			return fmt.Errorf("move %d of %d soldiers: %w", move.Count, gs.SoldierCount(move.From), ErrInsufficientSoldiers)
		}
		return nil

	case BuildAction:
		if !m.Valid(move.Region) {
			return fmt.Errorf("build at %d: %w", move.Region, ErrUnknownRegion)
		}
		temple, ok := gs.Temples[move.Region]
		if !ok {
			return fmt.Errorf("build at %d: %w", move.Region, ErrNoTemple)
		}
		if gs.Ownership[move.Region] != player {
			return fmt.Errorf("build at %d: %w", move.Region, ErrNotOwner)
		}
		cost, err := gs.BuildCost(temple, move.Upgrade)
		if err != nil {
			return fmt.Errorf("build %s at %d: %w", move.Upgrade, move.Region, err)
		}
		if gs.Cash[player] < cost {
			return fmt.Errorf("build %s costs %d, have %d: %w", move.Upgrade, cost, gs.Cash[player], ErrInsufficientFunds)
		}
		return nil

	case EndTurn:
		return nil

	default:
		return fmt.Errorf("action %d: %w", move.Action, ErrUnknownMove)
	}
}

// BuildCost is what building kind at temple would cost the active player now.
func (gs *GameState) BuildCost(temple Temple, kind UpgradeKind) (int, error) {
	upgrade, ok := LookupUpgrade(kind)
	if !ok {
		return 0, ErrUnknownUpgrade
	}
	level := 0
	switch {
	case kind == Soldier:
		level = gs.Move.Bought
	case kind.Elemental() && temple.Upgrade == kind:
		level = temple.Level + 1
	}
	cost, ok := upgrade.Cost(level)
	if !ok {
		return 0, ErrUpgradeMaxed
	}
	return cost, nil
}

func (gs *GameState) addSoldiers(region, count int) {
	for i := 0; i < count; i++ {
		gs.Soldiers[region] = append(gs.Soldiers[region], gs.Session.NextSoldier())
	}
}

func (gs *GameState) buildUpgrade(region int, kind UpgradeKind) {
	temple := gs.Temples[region]
	owner := gs.Ownership[region]
	upgrade, _ := LookupUpgrade(kind)

	switch kind {
	case Soldier:
		gs.Cash[owner] -= upgrade.Costs[gs.Move.Bought]
		gs.Move.Bought++
		gs.addSoldiers(region, 1)
		gs.hint(SoundCue, region, owner, SoundBuy)
		return
	case Respec:
		temple.Upgrade = NoUpgrade
		temple.Level = 0
		gs.Temples[region] = temple
		return
	}

	if temple.Upgrade != kind {
		temple.Upgrade = kind
		temple.Level = 0
	} else {
		temple.Level++
	}
	gs.Temples[region] = temple
	gs.Cash[owner] -= upgrade.Costs[temple.Level]
	gs.hint(Particles, region, owner, "")
	gs.hint(SoundCue, region, owner, SoundUpgrade)

	// air takes effect immediately
	if kind == Air {
		gs.Move.MovesLeft++
	}
}

// nextTurn pays the outgoing player, lets their temples produce and hands the
// turn to the next player that still owns land.
func (gs *GameState) nextTurn() {
	player := gs.Move.Player

	income := gs.Income(player)
	gs.Cash[player] += income
	if income > 0 {
		gs.hint(FloatingText, gs.TemplesOf(player)[0].Region, player, fmt.Sprintf("+%d", income))
	}

	for _, t := range gs.TemplesOf(player) {
		gs.addSoldiers(t.Region, 1)
	}

	playerCount := len(gs.Session.Players)
	turn, index := gs.Move.Turn, gs.Move.Player
	for range playerCount {
		index = (index + 1) % playerCount
		if index == 0 {
			turn++
		}
		if gs.RegionCount(index) > 0 {
			break
		}
	}
	gs.Move = MoveState{
		Turn:      turn,
		Player:    index,
		MovesLeft: gs.Session.Rules.MovesPerTurn + gs.UpgradeLevel(index, Air),
	}

	if gs.Move.Turn > gs.Session.Rules.TurnLimit {
		gs.Move.Turn = gs.Session.Rules.TurnLimit
		gs.Winner = gs.determineWinner()
		return
	}
	gs.hint(Banner, Neutral, index, gs.Session.Players[index].Name+"'s turn")
}

func (gs *GameState) afterMoveChecks() {
	for i, p := range gs.Session.Players {
		if gs.TotalSoldiers(i) > 0 || gs.RegionCount(i) == 0 {
			continue
		}
		for region, owner := range gs.Ownership {
			if owner == i {
				gs.Ownership[region] = Neutral
			}
		}
		if gs.Move.Player == i {
			gs.Move.MovesLeft = 0
		}
		gs.hint(Banner, Neutral, i, p.Name+" has been eliminated!")
	}

	if !gs.Over() && gs.LivingPlayers() <= 1 {
		gs.Winner = gs.determineWinner()
	}
}

// determineWinner ranks players by region count, a tie at the top is a draw.
func (gs *GameState) determineWinner() int {
	winner, runnerUp := 0, -1
	for i := 1; i < len(gs.Session.Players); i++ {
		if gs.RegionCount(i) > gs.RegionCount(winner) {
			winner = i
		}
	}
	for i := range gs.Session.Players {
		if i != winner && (runnerUp < 0 || gs.RegionCount(i) > gs.RegionCount(runnerUp)) {
			runnerUp = i
		}
	}
	if runnerUp >= 0 && gs.RegionCount(winner) == gs.RegionCount(runnerUp) {
		return Draw
	}
	return winner
}
