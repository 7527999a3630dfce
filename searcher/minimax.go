package searcher

import (
	"conquest/experiments/metrics"
	"conquest/game"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

var _ Searcher = (*Minimax)(nil)

// Clock abstracts time so pacing can be tested without sleeping.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Minimax runs a depth-bounded search in small batches, never reporting
// before the minimum thinking time and giving up once the maximum is spent.
type Minimax struct {
	minThinking time.Duration
	maxThinking time.Duration
	batchSize   int
	evaluate    game.Evaluate
	metrics     metrics.Collector
	clock       Clock
	logger      zerolog.Logger

	mu   sync.Mutex
	last metrics.SearchMetric
}

func WithMinThinkingTime(d time.Duration) Option {
	return func(m *Minimax) {
		if d >= 0 {
			m.minThinking = d
		}
	}
}

func WithMaxThinkingTime(d time.Duration) Option {
	return func(m *Minimax) {
		if d > 0 {
			m.maxThinking = d
		}
	}
}

func WithBatchSize(steps int) Option {
	return func(m *Minimax) {
		if steps > 0 {
			m.batchSize = steps
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func WithClock(clock Clock) Option {
	return func(m *Minimax) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		minThinking: MinThinkingTime,
		maxThinking: MaxThinkingTime,
		batchSize:   UnitOfWork,
		evaluate:    game.Heuristic,
		metrics:     metrics.NewDummyCollector(),
		clock:       realClock{},
		logger:      log.With().Str("component", "minimax").Logger(),
	}
	for _, option := range options {
		option(m)
	}
	if m.maxThinking < m.minThinking {
		panic("Maximum thinking time must not be shorter than the minimum")
	}
	return m
}

// Search walks the tree to completion or until the maximum thinking time
// has elapsed, whichever comes first. It falls back to ending the turn when
// no root move could be scored.
func (m *Minimax) Search(perspective int, state game.State, depth int) (game.Move, metrics.SearchMetric) {
	depth = max(depth, 1)
	m.metrics.Start(depth, m.batchSize)
	start := m.clock.Now()

	s := NewSearch(perspective, state, depth, m.evaluate)
	for {
		before := s.Steps()
		done := s.Run(m.batchSize)
		m.metrics.AddBatch(s.Steps() - before)
		if done {
			break
		}
		if m.clock.Now().Sub(start) > m.maxThinking {
			m.metrics.SetAborted(true)
			m.logger.Debug().
				Int("player", perspective).
				Int("steps", s.Steps()).
				Msg("search aborted at maximum thinking time")
			break
		}
		runtime.Gosched()
	}

	move, ok := s.Best()
	if !ok {
		m.metrics.SetFallback(true)
		move = game.NewEndTurn()
	}
	metric := m.metrics.Complete()
	m.mu.Lock()
	m.last = metric
	m.mu.Unlock()

	m.logger.Debug().
		Int("player", perspective).
		Int("depth", depth).
		Stringer("move", move).
		Float64("value", s.Value()).
		Int("steps", s.Steps()).
		Msg("search complete")
	return move, metric
}

// ChooseMove searches in the background and reports the result once, no
// earlier than the minimum thinking time after the call.
func (m *Minimax) ChooseMove(perspective int, state game.State, depth int, report func(game.Move)) {
	start := m.clock.Now()
	go func() {
		move, _ := m.Search(perspective, state, depth)
		m.Deliver(start, move, report)
	}()
}

// Deliver waits out what remains of the minimum thinking time measured from
// start, then reports move.
func (m *Minimax) Deliver(start time.Time, move game.Move, report func(game.Move)) {
	if wait := m.minThinking - m.clock.Now().Sub(start); wait > 0 {
		m.clock.Sleep(wait)
	}
	report(move)
}

// LastMetric returns the metrics of the most recent search. It is zero unless
// the searcher was built WithMetrics.
func (m *Minimax) LastMetric() metrics.SearchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Now reads the searcher's clock.
func (m *Minimax) Now() time.Time {
	return m.clock.Now()
}
