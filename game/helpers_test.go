package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// lineState builds a session over regions 0-1-2-...-n-1 connected in a line.
func lineState(t *testing.T, regions int, rules Rules, controllers ...Controller) *GameState {
	t.Helper()
	m := NewMap()
	for i := 0; i < regions; i++ {
		m.AddRegion(fmt.Sprintf("Region %d", i), fmt.Sprintf("R%d", i))
	}
	for i := 0; i+1 < regions; i++ {
		m.AddBorder(i, i+1)
	}
	if len(controllers) == 0 {
		controllers = []Controller{HumanController, AIController}
	}
	players, err := NewPlayers(controllers...)
	require.NoError(t, err, "players should be created")
	session, err := NewSession(m, players, rules, 42)
	require.NoError(t, err, "session should be created")
	return NewGameState(session)
}

func place(gs *GameState, region, owner, soldiers int) {
	gs.Ownership[region] = owner
	gs.Soldiers[region] = nil
	gs.addSoldiers(region, soldiers)
}

func totalSoldiers(gs *GameState) int {
	total := 0
	for _, list := range gs.Soldiers {
		total += len(list)
	}
	return total
}
