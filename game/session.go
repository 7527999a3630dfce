package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Session is everything shared by all states of one game: the region graph,
// the players, the rules, the soldier ID allocator and the random source
// used for setup and real (non-simulated) combat.
type Session struct {
	ID      uuid.UUID
	Map     *Map
	Players []*Player
	Rules   Rules
	Seed    uint64

	soldiers SoldierAllocator

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSession validates the setup values. A zero seed picks a time-based one.
func NewSession(m *Map, players []*Player, rules Rules, seed uint64) (*Session, error) {
	if m == nil || m.Len() == 0 {
		return nil, fmt.Errorf("session needs a non-empty map")
	}
	if len(players) < 2 || len(players) > MaxPlayers {
		return nil, fmt.Errorf("need between 2 and %d players, got %d", MaxPlayers, len(players))
	}
	for i, p := range players {
		if p.Index != i {
			return nil, fmt.Errorf("player %s has index %d, expected %d", p.Name, p.Index, i)
		}
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Session{
		ID:      uuid.New(),
		Map:     m,
		Players: players,
		Rules:   rules,
		Seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *Session) NextSoldier() Unit {
	return Unit{ID: s.soldiers.Next()}
}

func (s *Session) SoldiersIssued() int {
	return s.soldiers.Issued()
}

func (s *Session) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Session) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// stateRand returns a private source for one state.
func (s *Session) stateRand(h StateHash) *rand.Rand {
	return rand.New(rand.NewSource(s.Seed ^ uint64(h)))
}
