package game

const (
	Neutral = -1 // owner of regions nobody holds

	NoWinner = -1
	Draw     = -2

	MovesPerTurn   = 3
	MartyrBonus    = 4 // cash paid to a defender's owner per defending soldier killed
	UnlimitedTurns = 1000000
)

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() int
	LegalMoves() []Move
	Play(Move) State
	Over() bool
	Hash() StateHash
}

// Evaluate scores a state from the perspective of player, higher is better.
type Evaluate func(player int, s State) float64
