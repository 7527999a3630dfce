package searcher

import (
	"conquest/game"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockState struct {
	name     string
	player   int
	moves    []game.Move
	children map[game.Move]*mockState
	value    float64
	over     bool
	expanded *int // counts LegalMoves calls
}

func (m *mockState) Player() int {
	return m.player
}

func (m *mockState) LegalMoves() []game.Move {
	if m.expanded != nil {
		*m.expanded++
	}
	return m.moves
}

func (m *mockState) Play(move game.Move) game.State {
	child, ok := m.children[move]
	if !ok {
		panic("illegal move " + move.String() + " in " + m.name)
	}
	return child
}

func (m *mockState) Over() bool {
	return m.over
}

func (m *mockState) Hash() game.StateHash {
	return game.StateHash(len(m.name))
}

func mockValue(_ int, s game.State) float64 {
	return s.(*mockState).value
}

func mv(id int) game.Move {
	return game.NewArmyMove(0, 1, id)
}

func leaf(name string, value float64) *mockState {
	return &mockState{name: name, value: value}
}

func branch(name string, player int, children ...*mockState) *mockState {
	s := &mockState{name: name, player: player, children: map[game.Move]*mockState{}}
	for i, child := range children {
		move := mv(len(name)*10 + i + 1)
		s.moves = append(s.moves, move)
		s.children[move] = child
	}
	return s
}

// twoPly: player 0 picks a or b, player 1 answers. min(a)=3, min(b)=2,
// max(a)=5, max(b)=4.
func twoPly() *mockState {
	return branch("r", 0,
		branch("ra", 1, leaf("rac", 3), leaf("rad", 5)),
		branch("rb", 1, leaf("rbe", 2), leaf("rbf", 4)),
	)
}

func TestSearch(t *testing.T) {
	t.Run("alternates max and min by the mover at each node", func(t *testing.T) {
		root := twoPly()
		s := NewSearch(0, root, 2, mockValue)
		s.RunToCompletion()

		best, ok := s.Best()
		require.True(t, ok, "a finished search should have a best move")
		require.Equal(t, root.moves[0], best, "should pick the move whose worst reply is best")
		require.Equal(t, 3.0, s.Value(), "value should be the minimum over the replies to a")
		require.Equal(t, 13, s.Steps(), "every push, evaluation and return costs one step")
	})

	t.Run("opponent perspective minimizes the root", func(t *testing.T) {
		root := twoPly()
		s := NewSearch(1, root, 2, mockValue)
		s.RunToCompletion()

		best, _ := s.Best()
		require.Equal(t, root.moves[1], best, "root mover is not the perspective so the root minimizes")
		require.Equal(t, 4.0, s.Value(), "replies now maximize for perspective 1")
	})

	t.Run("can be paused between steps", func(t *testing.T) {
		s := NewSearch(0, twoPly(), 2, mockValue)

		require.False(t, s.Run(3), "three steps should not finish the tree")
		_, ok := s.Best()
		require.False(t, ok, "no root child has finished yet")

		require.False(t, s.Run(3), "six steps should not finish the tree")
		best, ok := s.Best()
		require.True(t, ok, "the first root child has been returned")
		require.Equal(t, mv(11), best, "first root child is the best so far")

		require.True(t, s.Run(100), "the rest of the tree fits in the budget")
		require.True(t, s.Done(), "search should report done")
		require.True(t, s.Step(), "stepping a finished search is a no-op")
		require.Equal(t, 13, s.Steps(), "no-op steps are not counted")
	})

	t.Run("ties keep the first candidate", func(t *testing.T) {
		root := branch("r", 0, leaf("a", 1), leaf("b", 1))
		s := NewSearch(0, root, 1, mockValue)
		s.RunToCompletion()

		best, _ := s.Best()
		require.Equal(t, root.moves[0], best, "only strictly better children replace the best")
	})

	t.Run("finished games are leaves", func(t *testing.T) {
		expanded := 0
		over := &mockState{name: "over", over: true, value: 100, expanded: &expanded}
		root := branch("r", 0, leaf("a", 1), over)
		s := NewSearch(0, root, 3, mockValue)
		s.RunToCompletion()

		best, _ := s.Best()
		require.Equal(t, root.moves[1], best, "winning terminal state should be preferred")
		require.Zero(t, expanded, "moves of a finished game should never be generated")
	})

	t.Run("depth bounds the tree", func(t *testing.T) {
		expanded := 0
		deep := branch("ra", 1, leaf("rac", -50))
		deep.value = 7
		deep.expanded = &expanded
		root := branch("r", 0, deep, leaf("rb", 4))
		s := NewSearch(0, root, 1, mockValue)
		s.RunToCompletion()

		best, _ := s.Best()
		require.Equal(t, root.moves[0], best, "children are scored by the evaluator at depth one")
		require.Equal(t, 7.0, s.Value(), "grandchildren are out of reach")
		require.Zero(t, expanded, "nodes at the depth limit are not expanded")
	})

	t.Run("zero depth still looks one ply", func(t *testing.T) {
		s := NewSearch(0, twoPly(), 0, mockValue)
		s.RunToCompletion()

		_, ok := s.Best()
		require.True(t, ok, "root should always be expanded")
	})

	t.Run("root without moves finishes with no best", func(t *testing.T) {
		s := NewSearch(0, &mockState{name: "r"}, 2, mockValue)
		require.True(t, s.Run(10), "empty root should finish immediately")
		_, ok := s.Best()
		require.False(t, ok, "nothing to choose from")
	})
}
