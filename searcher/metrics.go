package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes a single call to a searcher's FindNextMove.
// Iterations and PlayoutMoves are populated by MCTS; Nodes and Cutoffs by
// negamax. The zero value means metrics collection was disabled.
type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Iterations   int64
	PlayoutMoves int64
	Nodes        int64
	Cutoffs      int64
}

type MetricsCollector interface {
	Start()
	AddIteration()
	AddPlayoutMoves(moves int64)
	AddNode()
	AddCutoff()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	iterations   atomic.Int64
	playoutMoves atomic.Int64
	nodes        atomic.Int64
	cutoffs      atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
}

func (m *metricsCollector) AddIteration() {
	m.iterations.Add(1)
}

func (m *metricsCollector) AddPlayoutMoves(moves int64) {
	m.playoutMoves.Add(moves)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations.Load(),
		PlayoutMoves: m.playoutMoves.Load(),
		Nodes:        m.nodes.Load(),
		Cutoffs:      m.cutoffs.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                      {}
func (m *noMetricsCollector) AddIteration()               {}
func (m *noMetricsCollector) AddPlayoutMoves(moves int64) {}
func (m *noMetricsCollector) AddNode()                    {}
func (m *noMetricsCollector) AddCutoff()                  {}
func (m *noMetricsCollector) Complete() SearchMetrics     { return SearchMetrics{} }
