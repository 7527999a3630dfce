package game

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// Temple sits on one region for the whole game. Level is 0-based and only
// meaningful while Upgrade is set.
type Temple struct {
	Region  int
	Upgrade UpgradeKind
	Level   int
}

// MoveState tracks where we are inside the current turn.
type MoveState struct {
	Turn      int
	Player    int // index of the active player
	MovesLeft int
	Bought    int   // soldiers bought by the active player this turn
	Conquered []int // regions taken this turn, their armies can't move again
}

// GameState is an immutable snapshot of a game. Every move produces a new
// copy through Clone; nothing mutates a state once it has been handed out.
type GameState struct {
	Session *Session // shared, never copied

	Ownership []int          // owner per region, Neutral when nobody holds it
	Temples   map[int]Temple // keyed by region
	Soldiers  [][]Unit       // per region, front of the slice fights first
	Cash      []int          // per player
	Move      MoveState

	SimulatingFor int  // Neutral for real states, else the player whose search created it
	Winner        int  // NoWinner while the game runs, Draw or a player index once over
	Battle        bool // a random battle produced this state, undo is not allowed past it
	Hints         []Hint
}

// NewGameState returns an empty board: no owners, no soldiers, no temples.
func NewGameState(s *Session) *GameState {
	n := s.Map.Len()
	gs := &GameState{
		Session:   s,
		Ownership: make([]int, n),
		Temples:   make(map[int]Temple),
		Soldiers:  make([][]Unit, n),
		Cash:      make([]int, len(s.Players)),
		Move: MoveState{
			Turn:      1,
			Player:    0,
			MovesLeft: s.Rules.MovesPerTurn,
		},
		SimulatingFor: Neutral,
		Winner:        NoWinner,
	}
	for i := range gs.Ownership {
		gs.Ownership[i] = Neutral
	}
	return gs
}

// Clone copies every mutable field. Hints and the battle marker describe how a
// state was reached, so the copy starts without them.
func (gs *GameState) Clone() *GameState {
	ownership := make([]int, len(gs.Ownership))
	copy(ownership, gs.Ownership)

	temples := make(map[int]Temple, len(gs.Temples))
	for region, temple := range gs.Temples {
		temples[region] = temple
	}

	soldiers := make([][]Unit, len(gs.Soldiers))
	for region, list := range gs.Soldiers {
		if len(list) > 0 {
			soldiers[region] = append([]Unit(nil), list...)
		}
	}

	cash := make([]int, len(gs.Cash))
	copy(cash, gs.Cash)

	move := gs.Move
	move.Conquered = append([]int(nil), gs.Move.Conquered...)

	return &GameState{
		Session:       gs.Session,
		Ownership:     ownership,
		Temples:       temples,
		Soldiers:      soldiers,
		Cash:          cash,
		Move:          move,
		SimulatingFor: gs.SimulatingFor,
		Winner:        gs.Winner,
	}
}

// Simulate returns a copy marked as hypothetical. Combat inside simulated
// states uses deterministic draws and no hints are recorded. A state that is
// already simulated keeps its original owner.
func (gs *GameState) Simulate(player int) *GameState {
	sim := gs.Clone()
	if sim.SimulatingFor == Neutral {
		sim.SimulatingFor = player
	}
	return sim
}

func (gs *GameState) IsSimulation() bool {
	return gs.SimulatingFor != Neutral
}

// Player returns the index of the active player.
func (gs *GameState) Player() int {
	return gs.Move.Player
}

func (gs *GameState) ActivePlayer() *Player {
	return gs.Session.Players[gs.Move.Player]
}

func (gs *GameState) Over() bool {
	return gs.Winner != NoWinner
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}

	write(gs.Move.Turn)
	write(gs.Move.Player)
	write(gs.Move.MovesLeft)
	write(gs.Move.Bought)
	for _, region := range gs.Move.Conquered {
		write(region)
	}
	for region, owner := range gs.Ownership {
		write(owner)
		write(len(gs.Soldiers[region]))
	}
	for _, region := range gs.templeRegions() {
		t := gs.Temples[region]
		write(region)
		write(int(t.Upgrade))
		write(t.Level)
	}
	for _, c := range gs.Cash {
		write(c)
	}
	write(gs.Winner)

	return StateHash(hasher.Sum64())
}

// templeRegions lists temple regions in ascending order so that every walk
// over temples is deterministic.
func (gs *GameState) templeRegions() []int {
	regions := make([]int, 0, len(gs.Temples))
	for region := range gs.Temples {
		regions = append(regions, region)
	}
	sort.Ints(regions)
	return regions
}
