package game

import (
	"fmt"
	"math"
	"slices"

	"conquest/utils"
)

const (
	templeGarrison = 3    // soldiers placed with every temple at setup
	homeCandidates = 1000 // random home layouts tried
)

var neutralTemples = []int{3, 3, 4} // indexed by player count - 2

// Setup is the read-only configuration a game starts from.
type Setup struct {
	Map         *Map
	Controllers []Controller
	Rules       Rules
	Seed        uint64
}

// NewGame creates the session and the initial state: every player gets a home
// temple far away from the others, and neutral temples fill the gaps.
func NewGame(setup Setup) (*GameState, error) {
	m := setup.Map
	if m == nil {
		m = CreateMap()
	}
	players, err := NewPlayers(setup.Controllers...)
	if err != nil {
		return nil, err
	}
	if m.Len() < len(players)+neutralTemples[len(players)-2] {
		return nil, fmt.Errorf("map with %d regions is too small for %d players", m.Len(), len(players))
	}
	session, err := NewSession(m, players, setup.Rules, setup.Seed)
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		if p.IsAI() {
			personality := Personalities[session.Intn(len(Personalities))].Clone()
			p.Personality = &personality
		}
	}

	gs := NewGameState(session)
	gs.placeTemples()
	return gs, nil
}

func (gs *GameState) placeTemples() {
	m := gs.Session.Map
	playerCount := len(gs.Session.Players)

	var homes []int
	best := -1
	for range homeCandidates {
		candidate := make([]int, playerCount)
		for i := range candidate {
			candidate[i] = gs.Session.Intn(m.Len())
		}
		if score := minPairwiseDistance(m, candidate); score > best {
			best, homes = score, candidate
		}
	}

	for player, region := range homes {
		gs.Ownership[region] = player
		gs.putTemple(region)
	}

	// neutral temples go where they are far from everything else and about
	// equally far from every home
	distancesToTemples := make([]int, len(homes))
	var templeRegions []int
	updated := func(region int) []int {
		d := make([]int, len(homes))
		for i, home := range homes {
			d[i] = distancesToTemples[i] + m.Distance(home, region)
		}
		return d
	}
	score := func(region int) float64 {
		if utils.Contains(templeRegions, region) || utils.Contains(homes, region) {
			return -100
		}
		d := updated(region)
		inequality := slices.Max(d) - slices.Min(d)
		spread := minPairwiseDistance(m, append(append(append([]int(nil), templeRegions...), homes...), region))
		if spread == 0 {
			spread = -5
		}
		return float64(spread - inequality)
	}

	for range neutralTemples[playerCount-2] {
		bestRegion, bestScore := -1, math.Inf(-1)
		for _, r := range m.Regions {
			if s := score(r.ID); s > bestScore {
				bestRegion, bestScore = r.ID, s
			}
		}
		gs.putTemple(bestRegion)
		templeRegions = append(templeRegions, bestRegion)
		distancesToTemples = updated(bestRegion)
	}
}

func (gs *GameState) putTemple(region int) {
	gs.Temples[region] = Temple{Region: region}
	gs.addSoldiers(region, templeGarrison)
}

func minPairwiseDistance(m *Map, regions []int) int {
	best := math.MaxInt
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			best = min(best, m.Distance(regions[i], regions[j]))
		}
	}
	return best
}
