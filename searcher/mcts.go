package searcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drama/oracle"
	"drama/script"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrSearchFailed reports a run that produced no selectable scene, either
// because the oracle failed mid-run or because every iteration was guarded
// away by the depth limit.
var ErrSearchFailed = errors.New("search failed")

// Search hyperparameters
const (
	DefaultIterations        = 5
	DefaultMaxDepth          = 3
	DefaultExplorationWeight = 1.41
	DefaultCandidates        = 2
)

type Option func(m *MCTS)

type MCTS struct {
	oracle     oracle.Oracle
	iterations int
	maxDepth   int
	weight     float64
	candidates int
	rng        *rand.Rand
	metrics    Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(m *MCTS) {
		if depth >= 0 {
			m.maxDepth = depth
		}
	}
}

func WithExplorationWeight(weight float64) Option {
	return func(m *MCTS) {
		if weight > 0 {
			m.weight = weight
		}
	}
}

// WithCandidates sets how many scenes each expansion requests.
func WithCandidates(candidates int) Option {
	return func(m *MCTS) {
		if candidates > 0 {
			m.candidates = candidates
		}
	}
}

// WithRand injects a seeded source so runs are reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics(metrics Collector) Option {
	return func(m *MCTS) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

func NewMCTS(o oracle.Oracle, options ...Option) *MCTS {
	if o == nil {
		panic("Must provide a candidate oracle")
	}

	m := &MCTS{ // Default values
		oracle:     o,
		iterations: DefaultIterations,
		maxDepth:   DefaultMaxDepth,
		weight:     DefaultExplorationWeight,
		candidates: DefaultCandidates,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    NewNoCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search grows a fresh tree of candidate continuations for the configured
// iteration budget and returns the best scene found. The tree and the
// score cache live only for this run.
func (m *MCTS) Search(ctx context.Context, sc script.Script, glog *script.GameLog) (script.Scene, Metric, error) {
	runID := uuid.NewString()
	root := newNode(nil, nil)
	cache := newResultCache()
	m.metrics.Start(runID)

	log.Info().Msgf("search %s: running %d iterations", runID, m.iterations)

	for i := 0; i < m.iterations; i++ {
		if err := m.simulate(ctx, root, cache, sc, glog); err != nil {
			return nil, m.metrics.Complete(), errors.Join(ErrSearchFailed, err)
		}
		m.metrics.AddIteration()
	}

	metric := m.metrics.Complete()

	best := root.bestChild()
	if best == nil {
		log.Warn().Msgf("search %s: no selectable scene", runID)
		return nil, metric, ErrSearchFailed
	}

	log.Info().Msgf("search %s: selected %q", runID, best.state.Title())
	return best.state, metric, nil
}

// simulate runs one iteration: select a node, expand it if it has earned
// a visit, score the landing node, and push the score back to the root.
// A node past the depth limit burns the iteration without doing any of
// that.
func (m *MCTS) simulate(ctx context.Context, root *node, cache *resultCache, sc script.Script, glog *script.GameLog) error {
	selected := m.selectNode(root)

	if selected.depth() >= m.maxDepth {
		m.metrics.AddDepthGuarded()
		return nil
	}

	target, err := m.expand(ctx, selected, sc, glog)
	if err != nil {
		return err
	}

	score, err := m.score(ctx, target, cache, sc, glog)
	if err != nil {
		return err
	}

	backup(target, score, m.weight)
	return nil
}

// selectNode descends from the root: an unvisited child short-circuits the
// walk, otherwise the child with the best selection value is followed down
// to a leaf.
func (m *MCTS) selectNode(root *node) *node {
	at := root
	for len(at.children) > 0 {
		if fresh := at.unvisited(); len(fresh) > 0 {
			return fresh[m.rng.Intn(len(fresh))]
		}
		at = at.bestChild()
	}
	return at
}

// expand asks the oracle for candidate continuations of a visited node and
// descends into one of them at random. Unvisited and already-expanded
// nodes pass through untouched.
func (m *MCTS) expand(ctx context.Context, selected *node, sc script.Script, glog *script.GameLog) (*node, error) {
	if selected.visits == 0 || selected.expanded {
		return selected, nil
	}

	m.metrics.AddProposeCall()
	candidates, err := m.oracle.Propose(ctx, selected.state, sc, glog, m.candidates)
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates {
		if candidate == nil {
			return nil, fmt.Errorf("%w: propose returned a nil scene", oracle.ErrUnavailable)
		}
	}

	selected.expand(candidates)
	if len(selected.children) == 0 {
		return selected, nil
	}
	return selected.children[m.rng.Intn(len(selected.children))], nil
}

// score rates the node's scene, consulting the run cache before the
// oracle. The synthetic root scores 0 without a call.
func (m *MCTS) score(ctx context.Context, target *node, cache *resultCache, sc script.Script, glog *script.GameLog) (float64, error) {
	if target.state == nil {
		return 0, nil
	}

	key := target.state.Key()
	if score, ok := cache.get(key); ok {
		m.metrics.AddCacheHit()
		return score, nil
	}

	m.metrics.AddScoreCall()
	score, err := m.oracle.Score(ctx, target.state, sc, glog)
	if err != nil {
		return 0, err
	}
	cache.put(key, score)
	return score, nil
}

// backup walks from the scored node to the root, refreshing statistics on
// the way. Child-first order means each selection value is computed
// against its parent's visit count from before this pass.
func backup(from *node, score float64, c float64) {
	for at := from; at != nil; at = at.parent {
		at.update(score, c)
	}
}
