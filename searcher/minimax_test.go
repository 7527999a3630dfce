package searcher

import (
	"conquest/game"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock advances by tick on every Now call and by the requested amount
// on every Sleep.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	tick  time.Duration
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.tick)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func TestNewMinimax(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := NewMinimax()
		require.Equal(t, MinThinkingTime, m.minThinking, "default minimum thinking time")
		require.Equal(t, MaxThinkingTime, m.maxThinking, "default maximum thinking time")
		require.Equal(t, UnitOfWork, m.batchSize, "default batch size")
	})

	t.Run("ignores invalid options", func(t *testing.T) {
		m := NewMinimax(WithBatchSize(0), WithMaxThinkingTime(-time.Second), WithEvaluationFn(nil))
		require.Equal(t, UnitOfWork, m.batchSize, "non-positive batch size is ignored")
		require.Equal(t, MaxThinkingTime, m.maxThinking, "non-positive maximum is ignored")
		require.NotNil(t, m.evaluate, "nil evaluator is ignored")
	})

	t.Run("panics when maximum is below minimum", func(t *testing.T) {
		require.Panics(t, func() {
			NewMinimax(WithMinThinkingTime(2*time.Second), WithMaxThinkingTime(time.Second))
		}, "inconsistent thinking times should be rejected")
	})
}

func TestMinimaxSearch(t *testing.T) {
	t.Run("completes within budget", func(t *testing.T) {
		m := NewMinimax(
			WithBatchSize(5),
			WithEvaluationFn(mockValue),
			WithClock(&fakeClock{now: time.Unix(0, 0)}),
			WithMetrics(),
		)
		root := twoPly()
		move, metric := m.Search(0, root, 2)

		require.Equal(t, root.moves[0], move, "should return the minimax move")
		require.Equal(t, 13, metric.Steps, "whole tree should be walked")
		require.Equal(t, 3, metric.Batches, "13 steps in batches of 5")
		require.Equal(t, 2, metric.Depth, "depth is recorded")
		require.False(t, metric.Aborted, "search should not be aborted")
		require.False(t, metric.Fallback, "a move was found")
	})

	t.Run("aborts past the maximum and keeps the best so far", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0), tick: time.Second}
		m := NewMinimax(
			WithBatchSize(6),
			WithMinThinkingTime(0),
			WithMaxThinkingTime(1500*time.Millisecond),
			WithEvaluationFn(mockValue),
			WithClock(clock),
			WithMetrics(),
		)
		root := twoPly()
		move, metric := m.Search(0, root, 2)

		require.Equal(t, root.moves[0], move, "first batch already finished the first root child")
		require.True(t, metric.Aborted, "deadline passes after the second batch")
		require.Less(t, metric.Steps, 13, "tree should not be finished")
	})

	t.Run("falls back to ending the turn", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0), tick: time.Second}
		m := NewMinimax(
			WithBatchSize(1),
			WithMinThinkingTime(0),
			WithMaxThinkingTime(time.Second),
			WithEvaluationFn(mockValue),
			WithClock(clock),
			WithMetrics(),
		)
		move, metric := m.Search(0, twoPly(), 2)

		require.Equal(t, game.NewEndTurn(), move, "no root child finished before the deadline")
		require.True(t, metric.Aborted, "deadline was hit")
		require.True(t, metric.Fallback, "fallback should be recorded")
	})

	t.Run("plays a legal move in a real game", func(t *testing.T) {
		gs, err := game.NewGame(game.Setup{
			Controllers: []game.Controller{game.AIController, game.AIController},
			Rules:       game.NewStandardRules(),
			Seed:        7,
		})
		require.NoError(t, err, "game setup should succeed")

		m := NewMinimax(WithMinThinkingTime(0))
		move, _ := m.Search(gs.Player(), gs.Simulate(gs.Player()), 1)
		require.NoError(t, gs.Validate(move), "chosen move %v should be legal", move)
	})
}

func TestMinimaxDeliver(t *testing.T) {
	t.Run("waits out the minimum thinking time", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		m := NewMinimax(WithClock(clock), WithMinThinkingTime(time.Second))
		start := clock.Now()
		clock.Sleep(300 * time.Millisecond)

		var got game.Move
		m.Deliver(start, game.NewEndTurn(), func(move game.Move) { got = move })

		require.Equal(t, game.NewEndTurn(), got, "move should be reported")
		require.Equal(t, []time.Duration{300 * time.Millisecond, 700 * time.Millisecond}, clock.slept, "should sleep the remainder")
	})

	t.Run("reports immediately when already late", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		m := NewMinimax(WithClock(clock), WithMinThinkingTime(time.Second))
		start := clock.Now()
		clock.Sleep(2 * time.Second)

		called := 0
		m.Deliver(start, game.NewEndTurn(), func(game.Move) { called++ })

		require.Equal(t, 1, called, "report is called exactly once")
		require.Len(t, clock.slept, 1, "no extra sleep")
	})
}

func TestMinimaxChooseMove(t *testing.T) {
	t.Run("reports asynchronously after the minimum", func(t *testing.T) {
		const minimum = 20 * time.Millisecond
		m := NewMinimax(WithMinThinkingTime(minimum), WithEvaluationFn(mockValue))
		root := twoPly()
		moves := make(chan game.Move, 1)

		start := time.Now()
		m.ChooseMove(0, root, 2, func(move game.Move) { moves <- move })

		select {
		case move := <-moves:
			require.GreaterOrEqual(t, time.Since(start), minimum, "must not report before the minimum thinking time")
			require.Equal(t, root.moves[0], move, "should report the searched move")
		case <-time.After(time.Second):
			require.Fail(t, "move was never reported")
		}
	})
}
