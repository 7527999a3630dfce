package game

import "fmt"

// Rules are the read-only knobs a game is set up with.
type Rules struct {
	TurnLimit    int
	MovesPerTurn int
	Level        Level
}

func (r Rules) Validate() error {
	if r.TurnLimit <= 0 {
		return fmt.Errorf("turn limit must be positive, got %d", r.TurnLimit)
	}
	if r.MovesPerTurn <= 0 {
		return fmt.Errorf("moves per turn must be positive, got %d", r.MovesPerTurn)
	}
	if r.Level < Nice || r.Level > Evil {
		return fmt.Errorf("unknown AI level %d", r.Level)
	}
	return nil
}
