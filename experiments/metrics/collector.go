package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth     int
	BatchSize int
	Duration  time.Duration
	Steps     int
	Batches   int
	Aborted   bool // hit the maximum thinking time before finishing
	Fallback  bool // no root child finished, end turn was chosen
}

type MoveMetric struct {
	Step   int
	Turn   int
	Player int
	Move   string
	SearchMetric
}

type GameMetric struct {
	Players    int
	Winner     int
	Turns      int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Soldiers   int // soldiers issued by the session over the whole game
}

type Collector interface {
	Start(depth, batchSize int)
	AddBatch(steps int)
	SetAborted(value bool)
	SetFallback(value bool)
	Complete() SearchMetric
}

type collector struct {
	depth     int
	batchSize int
	startTime time.Time
	steps     atomic.Int64
	batches   atomic.Int32
	aborted   atomic.Bool
	fallback  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, batchSize int) {
	m.startTime = time.Now()
	m.depth = depth
	m.batchSize = batchSize
	m.steps.Store(0)
	m.batches.Store(0)
	m.aborted.Store(false)
	m.fallback.Store(false)
}

func (m *collector) AddBatch(steps int) {
	m.batches.Add(1)
	m.steps.Add(int64(steps))
}

func (m *collector) SetAborted(value bool) {
	m.aborted.Store(value)
}

func (m *collector) SetFallback(value bool) {
	m.fallback.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:     m.depth,
		BatchSize: m.batchSize,
		Duration:  time.Since(m.startTime),
		Steps:     int(m.steps.Load()),
		Batches:   int(m.batches.Load()),
		Aborted:   m.aborted.Load(),
		Fallback:  m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, batchSize int) {}
func (m *dummyCollector) AddBatch(steps int)         {}
func (m *dummyCollector) SetAborted(value bool)      {}
func (m *dummyCollector) SetFallback(value bool)     {}
func (m *dummyCollector) Complete() SearchMetric     { return SearchMetric{} }
