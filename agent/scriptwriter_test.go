package agent

/* scriptwriter:
- a successful search hands its selected scene through untouched
- a failed search falls back to exactly one direct proposal
- generation fails only after both the search and the fallback come up empty
*/

import (
	"context"
	"fmt"
	"testing"

	"drama/oracle"
	"drama/script"
	"drama/searcher"

	"github.com/stretchr/testify/require"
)

type mockOracle struct {
	proposeCalls int
	propose      func(n int) ([]script.Scene, error)
	score        func(state script.Scene) (float64, error)
}

func (m *mockOracle) Propose(ctx context.Context, from script.Scene, sc script.Script, glog *script.GameLog, n int) ([]script.Scene, error) {
	m.proposeCalls++
	return m.propose(n)
}

func (m *mockOracle) Score(ctx context.Context, state script.Scene, sc script.Script, glog *script.GameLog) (float64, error) {
	return m.score(state)
}

func TestNewScriptwriter(t *testing.T) {
	o := &mockOracle{}

	require.Panics(t, func() { NewScriptwriter(nil, o) }, "Should refuse a nil searcher")
	require.Panics(t, func() { NewScriptwriter(searcher.NewMCTS(o), nil) }, "Should refuse a nil oracle")
}

func TestGenerateSceneHandsThroughTheSearchPick(t *testing.T) {
	best := script.Scene{"scene 3": map[string]any{"plot": []any{"the real clue"}}}
	o := &mockOracle{
		propose: func(n int) ([]script.Scene, error) {
			return []script.Scene{
				{"scene 2": map[string]any{"plot": []any{"a red herring"}}},
				best,
			}, nil
		},
		score: func(state script.Scene) (float64, error) {
			if state.Title() == "scene 3" {
				return 5, nil
			}
			return 3, nil
		},
	}
	w := NewScriptwriter(searcher.NewMCTS(o), o)

	scene, err := w.GenerateScene(context.Background(), script.Script{}, script.NewGameLog())

	require.NoError(t, err, "Should generate a scene")
	require.Equal(t, best, scene, "Should hand through the search pick")
}

func TestGenerateSceneFallsBackOnce(t *testing.T) {
	proposal := script.Scene{"scene 2": map[string]any{"plot": []any{"a clue"}}}
	o := &mockOracle{
		propose: func(n int) ([]script.Scene, error) {
			return []script.Scene{proposal}, nil
		},
		score: func(state script.Scene) (float64, error) {
			return 3, nil
		},
	}
	// A zero depth limit guards every iteration, so the search selects
	// nothing without ever reaching the oracle.
	w := NewScriptwriter(searcher.NewMCTS(o, searcher.WithMaxDepth(0)), o)

	scene, err := w.GenerateScene(context.Background(), script.Script{}, script.NewGameLog())

	require.NoError(t, err, "Should recover through the fallback")
	require.Equal(t, proposal, scene, "Should return the direct proposal")
	require.Equal(t, 1, o.proposeCalls, "Should propose exactly once")
}

func TestGenerateSceneFailsAfterTheFallback(t *testing.T) {
	t.Run("Empty proposals everywhere", func(t *testing.T) {
		o := &mockOracle{
			propose: func(n int) ([]script.Scene, error) {
				return nil, nil
			},
			score: func(state script.Scene) (float64, error) {
				return 3, nil
			},
		}
		w := NewScriptwriter(searcher.NewMCTS(o), o)

		_, err := w.GenerateScene(context.Background(), script.Script{}, script.NewGameLog())

		require.ErrorIs(t, err, ErrGenerationFailed, "Should fail generation")
		require.Equal(t, 2, o.proposeCalls, "Should propose once in the search and once in the fallback")
	})

	t.Run("Oracle down everywhere", func(t *testing.T) {
		o := &mockOracle{
			propose: func(n int) ([]script.Scene, error) {
				return nil, fmt.Errorf("%w: model offline", oracle.ErrUnavailable)
			},
			score: func(state script.Scene) (float64, error) {
				return 3, nil
			},
		}
		w := NewScriptwriter(searcher.NewMCTS(o), o)

		_, err := w.GenerateScene(context.Background(), script.Script{}, script.NewGameLog())

		require.ErrorIs(t, err, ErrGenerationFailed, "Should fail generation")
		require.ErrorIs(t, err, oracle.ErrUnavailable, "Should keep the cause visible")
		require.Equal(t, 2, o.proposeCalls, "Should propose once in the search and once in the fallback")
	})
}
