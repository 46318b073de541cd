// Package experiments measures how the scene search behaves across
// hyperparameter grids. Runs use a scripted oracle instead of a live
// model so results are cheap and reproducible.
package experiments

import (
	"context"
	"fmt"

	"drama/oracle"
	"drama/script"
	"drama/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const RunsPerConfig = 30 // Per grid point

var budgetConfigs = []SearchConfig{
	{ID: "iter-5", Iterations: 5, MaxDepth: 3, Weight: 1.41, Candidates: 2},
	{ID: "iter-10", Iterations: 10, MaxDepth: 3, Weight: 1.41, Candidates: 2},
	{ID: "iter-20", Iterations: 20, MaxDepth: 3, Weight: 1.41, Candidates: 2},
	{ID: "iter-40", Iterations: 40, MaxDepth: 3, Weight: 1.41, Candidates: 2},
}

var depthConfigs = []SearchConfig{
	{ID: "depth-1", Iterations: 20, MaxDepth: 1, Weight: 1.41, Candidates: 2},
	{ID: "depth-2", Iterations: 20, MaxDepth: 2, Weight: 1.41, Candidates: 2},
	{ID: "depth-3", Iterations: 20, MaxDepth: 3, Weight: 1.41, Candidates: 2},
	{ID: "depth-5", Iterations: 20, MaxDepth: 5, Weight: 1.41, Candidates: 2},
}

// SearchConfig is one point in an experiment grid.
type SearchConfig struct {
	ID         string
	Iterations int
	MaxDepth   int
	Weight     float64
	Candidates int
}

// Record is the measured outcome of one search run.
type Record struct {
	Config string
	Run    int
	searcher.Metric
}

// RunBudgetExperiment measures how search cost and cache behavior scale
// with the iteration budget.
func RunBudgetExperiment() error {
	return runExperiment("budget", budgetConfigs)
}

// RunDepthExperiment measures how the depth limit trades oracle calls
// against burned iterations.
func RunDepthExperiment() error {
	return runExperiment("depth", depthConfigs)
}

func runExperiment(name string, configs []SearchConfig) error {
	log.Info().Msgf("starting %s experiment...", name)

	records := []Record{}
	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(configs), config)

		for run := 0; run < RunsPerConfig; run++ {
			records = append(records, runSearch(config, run))
		}

		log.Info().Msgf("completed config %d of %d", ci+1, len(configs))
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteConfigs(configs); err != nil {
		return fmt.Errorf("failed to store search configs: %w", err)
	}
	log.Info().Msg("stored search configs")

	// Store experiment results
	if err := writer.WriteRecords(records); err != nil {
		return fmt.Errorf("failed to store run records: %w", err)
	}
	log.Info().Msg("stored run records")

	return nil
}

// runSearch performs a single measured search. The run number seeds the
// search so every grid point covers the same seeds.
func runSearch(config SearchConfig, run int) Record {
	rng := rand.New(rand.NewSource(uint64(run)))
	m := createMCTS(config, &scriptedOracle{}, rng)

	_, metric, err := m.Search(context.Background(), sampleScript(), script.NewGameLog())
	if err != nil {
		log.Warn().Msgf("config %s run %d selected nothing (%v)", config.ID, run, err)
	}

	return Record{Config: config.ID, Run: run, Metric: metric}
}

func createMCTS(config SearchConfig, o oracle.Oracle, rng *rand.Rand) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	if config.Weight > 0 {
		options = append(options, searcher.WithExplorationWeight(config.Weight))
	}
	if config.Candidates > 0 {
		options = append(options, searcher.WithCandidates(config.Candidates))
	}

	options = append(options, searcher.WithRand(rng), searcher.WithMetrics(searcher.NewCollector()))
	return searcher.NewMCTS(o, options...)
}

// scriptedOracle fabricates numbered scenes and scores them by a fixed
// hash of their content, so a seeded search always walks the same tree.
type scriptedOracle struct {
	serial int
}

func (o *scriptedOracle) Propose(ctx context.Context, from script.Scene, sc script.Script, glog *script.GameLog, n int) ([]script.Scene, error) {
	candidates := make([]script.Scene, 0, n)
	for i := 0; i < n; i++ {
		o.serial++
		candidates = append(candidates, script.Scene{
			fmt.Sprintf("scene %d", o.serial+1): map[string]any{
				"flow": fmt.Sprintf("the investigation takes turn %d", o.serial),
				"plot": []any{fmt.Sprintf("clue %d", o.serial)},
			},
		})
	}
	return candidates, nil
}

func (o *scriptedOracle) Score(ctx context.Context, state script.Scene, sc script.Script, glog *script.GameLog) (float64, error) {
	return float64(len(state.Key()) % 6), nil
}

// sampleScript is the fixed mystery every experiment searches over.
func sampleScript() script.Script {
	return script.Script{
		"prologue": map[string]any{
			"flow": "a storm traps eight guests in the manor the night the count dies",
			"plot": []any{"the count is found dead in the locked study"},
			"interactions": map[string]any{
				"dialogue": []any{"ask the butler who locked the study"},
				"actions":  []any{"search the study"},
			},
		},
	}
}
