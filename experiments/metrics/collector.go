package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy    string
	Depth       int
	Duration    time.Duration
	Nodes       int
	Leaves      int
	Cutoffs     int
	TableHits   int
	TableMisses int
}

type MoveMetric struct {
	Ply    int
	Player string // "White" or "Black"
	SearchMetric
}

type GameMetric struct {
	White     string // Agent name
	Black     string // Agent name
	Result    string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Plies     int
}

type Collector interface {
	Start(strategy string, depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(tableHits, tableMisses int) SearchMetric
}

type collector struct {
	strategy  string
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, depth int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.depth = depth
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete(tableHits, tableMisses int) SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Leaves:      int(m.leaves.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		TableHits:   tableHits,
		TableMisses: tableMisses,
	}
}

// Last keeps the most recent search metric reported to it. It lets a game
// loop pick up the metrics of the search that produced each move.
type Last struct {
	mu     sync.Mutex
	metric SearchMetric
	ok     bool
}

func (l *Last) Report(metric SearchMetric) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.metric, l.ok = metric, true
}

// Take returns and clears the pending metric.
func (l *Last) Take() (SearchMetric, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	metric, ok := l.metric, l.ok
	l.metric, l.ok = SearchMetric{}, false
	return metric, ok
}
