package searcher

import "conquest/game"

type node struct {
	state        game.State
	depth        int
	move         game.Move   // move that led here from the parent
	unconsidered []game.Move // moves not yet expanded
	best         game.Move
	hasBest      bool
	value        float64
}

func newNode(state game.State, move game.Move, depth int) node {
	n := node{state: state, move: move, depth: depth}
	if !n.leaf() {
		n.unconsidered = state.LegalMoves()
	}
	return n
}

func (n *node) leaf() bool {
	return n.depth <= 0 || n.state.Over()
}

// consider records a finished child. The first child always becomes the
// best, later ones only if they are strictly better for whoever moves here.
func (n *node) consider(child *node, maximizing bool) {
	better := !n.hasBest ||
		(maximizing && child.value > n.value) ||
		(!maximizing && child.value < n.value)
	if better {
		n.best = child.move
		n.value = child.value
		n.hasBest = true
	}
}

// Search is a depth-bounded minimax walked one node at a time over an
// explicit stack, so it can be paused between any two steps.
//
//	Expanding(node)        -> push a child while the node has unconsidered moves
//	Backpropagating(child) -> pop a finished node into its parent
//	Done                   -> the root has no moves left
type Search struct {
	perspective int
	evaluate    game.Evaluate
	stack       []node
	steps       int
	done        bool
}

func NewSearch(perspective int, root game.State, depth int, evaluate game.Evaluate) *Search {
	return &Search{
		perspective: perspective,
		evaluate:    evaluate,
		stack:       []node{newNode(root, game.Move{}, max(depth, 1))},
	}
}

// Step performs one unit of work and reports whether the search is finished.
func (s *Search) Step() bool {
	if s.done {
		return true
	}
	s.steps++
	top := &s.stack[len(s.stack)-1]

	if top.leaf() {
		top.value = s.evaluate(s.perspective, top.state)
		s.pop()
		return s.done
	}
	if len(top.unconsidered) == 0 {
		if !top.hasBest {
			top.value = s.evaluate(s.perspective, top.state)
		}
		s.pop()
		return s.done
	}

	move := top.unconsidered[0]
	top.unconsidered = top.unconsidered[1:]
	s.stack = append(s.stack, newNode(top.state.Play(move), move, top.depth-1))
	return false
}

// Run steps at most n times and reports whether the search is finished.
func (s *Search) Run(n int) bool {
	for i := 0; i < n; i++ {
		if s.Step() {
			return true
		}
	}
	return s.done
}

// RunToCompletion steps until the whole tree has been walked.
func (s *Search) RunToCompletion() {
	for !s.Step() {
	}
}

func (s *Search) pop() {
	if len(s.stack) == 1 {
		s.done = true
		return
	}
	child := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	parent := &s.stack[len(s.stack)-1]
	parent.consider(&child, parent.state.Player() == s.perspective)
}

func (s *Search) Done() bool {
	return s.done
}

func (s *Search) Steps() int {
	return s.steps
}

// Best returns the best root move found so far, false if no child has
// finished yet.
func (s *Search) Best() (game.Move, bool) {
	root := &s.stack[0]
	return root.best, root.hasBest
}

// Value is the minimax value of the best root move found so far.
func (s *Search) Value() float64 {
	return s.stack[0].value
}
