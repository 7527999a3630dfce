package game

// ActionType represents the kind of move a player can make.
type ActionType int

const (
	ArmyMove ActionType = iota + 1
	BuildAction
	EndTurn
)

func (a ActionType) String() string {
	switch a {
	case ArmyMove:
		return "move"
	case BuildAction:
		return "build"
	case EndTurn:
		return "end"
	default:
		return "unknown"
	}
}
