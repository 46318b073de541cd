package searcher

import (
	"sync/atomic"
	"time"
)

// Metric captures what one search run did.
type Metric struct {
	RunID        string
	StartTime    time.Time
	Duration     time.Duration
	Iterations   int64
	DepthGuarded int64
	ProposeCalls int64
	ScoreCalls   int64
	CacheHits    int64
}

type Collector interface {
	Start(runID string)
	AddIteration()
	AddDepthGuarded()
	AddProposeCall()
	AddScoreCall()
	AddCacheHit()
	Complete() Metric
}

type collector struct {
	runID        string
	startTime    time.Time
	iterations   atomic.Int64
	depthGuarded atomic.Int64
	proposeCalls atomic.Int64
	scoreCalls   atomic.Int64
	cacheHits    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(runID string) {
	c.runID = runID
	c.startTime = time.Now()
	c.iterations.Store(0)
	c.depthGuarded.Store(0)
	c.proposeCalls.Store(0)
	c.scoreCalls.Store(0)
	c.cacheHits.Store(0)
}

func (c *collector) AddIteration() {
	c.iterations.Add(1)
}

func (c *collector) AddDepthGuarded() {
	c.depthGuarded.Add(1)
}

func (c *collector) AddProposeCall() {
	c.proposeCalls.Add(1)
}

func (c *collector) AddScoreCall() {
	c.scoreCalls.Add(1)
}

func (c *collector) AddCacheHit() {
	c.cacheHits.Add(1)
}

func (c *collector) Complete() Metric {
	return Metric{
		RunID:        c.runID,
		StartTime:    c.startTime,
		Duration:     time.Since(c.startTime),
		Iterations:   c.iterations.Load(),
		DepthGuarded: c.depthGuarded.Load(),
		ProposeCalls: c.proposeCalls.Load(),
		ScoreCalls:   c.scoreCalls.Load(),
		CacheHits:    c.cacheHits.Load(),
	}
}

type noCollector struct{}

func NewNoCollector() Collector {
	return &noCollector{}
}

func (c *noCollector) Start(runID string) {}
func (c *noCollector) AddIteration()      {}
func (c *noCollector) AddDepthGuarded()   {}
func (c *noCollector) AddProposeCall()    {}
func (c *noCollector) AddScoreCall()      {}
func (c *noCollector) AddCacheHit()       {}
func (c *noCollector) Complete() Metric   { return Metric{} }
