package game

// TurnLimits are the game lengths offered at setup.
var TurnLimits = []int{9, 12, 15, UnlimitedTurns}

const DefaultTurnLimit = 12

func NewStandardRules() Rules {
	return Rules{
		TurnLimit:    DefaultTurnLimit,
		MovesPerTurn: MovesPerTurn,
		Level:        Nice,
	}
}
