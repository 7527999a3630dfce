package game

import "fmt"

// Move is a value describing one decision of the active player. Which fields
// are meaningful depends on Action.
type Move struct {
	Action  ActionType
	From    int // army moves
	To      int
	Count   int
	Region  int // build actions
	Upgrade UpgradeKind
}

func NewArmyMove(from, to, count int) Move {
	return Move{Action: ArmyMove, From: from, To: to, Count: count}
}

func NewBuildAction(region int, upgrade UpgradeKind) Move {
	return Move{Action: BuildAction, Region: region, Upgrade: upgrade}
}

func NewEndTurn() Move {
	return Move{Action: EndTurn}
}

func (m Move) String() string {
	switch m.Action {
	case ArmyMove:
		return fmt.Sprintf("move %d soldier(s) %d->%d", m.Count, m.From, m.To)
	case BuildAction:
		return fmt.Sprintf("build %s at %d", m.Upgrade, m.Region)
	case EndTurn:
		return "end turn"
	default:
		return fmt.Sprintf("unknown move %d", m.Action)
	}
}
