package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "csv file should exist")
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "csv should parse")
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("writes records under a timestamped folder", func(t *testing.T) {
		root := t.TempDir()
		w, err := NewWriter(root, "bench")
		require.NoError(t, err, "writer should be created")
		require.Equal(t, filepath.Join(root, "bench"), filepath.Dir(w.Dir()), "folder is named after the experiment")

		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, MaxThinking: time.Second, BatchSize: 100}}), "configs should be written")
		require.NoError(t, w.WriteGameRecords([]GameRecord{{
			ID:         1,
			GameID:     "abc",
			Seed:       9,
			Agents:     []int{1, 1},
			GameMetric: GameMetric{Players: 2, Winner: 1, Turns: 12, TotalMoves: 40},
		}}), "game records should be written")
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
			Game:       1,
			MoveMetric: MoveMetric{Step: 3, Player: 1, Move: "end turn", SearchMetric: SearchMetric{Steps: 250, Aborted: true}},
		}}), "move records should be written")

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 2, "header and one row")
		require.Equal(t, "1;1", games[1][3], "agents are joined per seat")
		require.Equal(t, "40", games[1][7], "moves column")

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, "end turn", moves[1][4], "move text")
		require.Equal(t, "true", moves[1][10], "aborted flag")

		configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, []string{"1", "0s", "1s", "100"}, configs[1], "agent config row")
	})
}

func TestCollector(t *testing.T) {
	t.Run("accumulates batches", func(t *testing.T) {
		c := NewCollector()
		c.Start(3, 100)
		c.AddBatch(100)
		c.AddBatch(42)
		c.SetAborted(true)
		m := c.Complete()

		require.Equal(t, 3, m.Depth, "depth")
		require.Equal(t, 142, m.Steps, "steps are summed")
		require.Equal(t, 2, m.Batches, "batches are counted")
		require.True(t, m.Aborted, "aborted flag")
		require.False(t, m.Fallback, "fallback flag")

		c.Start(1, 10)
		require.Zero(t, c.Complete().Steps, "start resets the counters")
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3, 100)
		c.AddBatch(100)
		require.Equal(t, SearchMetric{}, c.Complete(), "dummy metric is zero")
	})
}
