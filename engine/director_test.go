package engine

/* director:
- a scripted path is played to its ending, recording plot, clues and interactions
- a jump to an unwritten scene calls the generator and plays on into its scene
- a generator failure stops the playthrough with the stuck scene named
- a story that reaches no ending times out after the turn limit
*/

import (
	"context"
	"errors"
	"testing"

	"drama/script"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type mockGenerator struct {
	calls int
	scene script.Scene
	err   error
}

func (m *mockGenerator) GenerateScene(ctx context.Context, sc script.Script, glog *script.GameLog) (script.Scene, error) {
	m.calls++
	return m.scene, m.err
}

func TestNewDirector(t *testing.T) {
	sc := script.Script{"prologue": map[string]any{}}

	require.Panics(t, func() { NewDirector(nil, &mockGenerator{}, nil) }, "Should refuse a nil script")
	require.Panics(t, func() { NewDirector(sc, nil, nil) }, "Should refuse a nil generator")
}

func TestRunPlaysAScriptedPathToItsEnding(t *testing.T) {
	sc := script.Script{
		"prologue": map[string]any{
			"flow": "a storm cuts the power",
			"plot": []any{"the count is found dead"},
			"interactions": map[string]any{
				"actions": []any{"search the study"},
			},
			"triggers": map[string]any{
				"search the study": map[string]any{"jump": "scene 2"},
			},
		},
		"scene 2": map[string]any{
			"flow": "the study hides a will",
			"interactions": map[string]any{
				"actions": []any{"read the will"},
			},
			"triggers": map[string]any{
				"read the will": map[string]any{"jump": "ending 1"},
			},
		},
		"ending 1": map[string]any{
			"flow": "the heir confesses",
		},
	}
	generator := &mockGenerator{}
	d := NewDirector(sc, generator, rand.New(rand.NewSource(1)))

	err := d.Run(context.Background())

	require.NoError(t, err, "Should play through to the ending")
	require.Equal(t, "the heir confesses", d.Log.Ending, "Should record the ending")
	require.Zero(t, generator.calls, "Should not generate on a fully written path")
	require.Equal(t, []string{"a storm cuts the power", "the study hides a will"}, d.Log.PlotHistory,
		"Should record each scene's narration once")
	require.Equal(t, []string{"the count is found dead"}, d.Log.ClueHistory,
		"Should record each scene's clues once")
	require.Equal(t, []script.Interaction{
		{Scene: "prologue", Action: "search the study", Result: "jump to scene 2"},
		{Scene: "scene 2", Action: "read the will", Result: "jump to ending 1"},
	}, d.Log.InteractionHistory, "Should record the played path")
}

func TestRunGeneratesPastAnUnwrittenScene(t *testing.T) {
	sc := script.Script{
		"prologue": map[string]any{
			"interactions": map[string]any{
				"actions": []any{"follow the footprints"},
			},
			"triggers": map[string]any{
				"follow the footprints": map[string]any{"jump": "scene 2"},
			},
		},
	}
	generator := &mockGenerator{scene: script.Scene{
		"ending 1": map[string]any{"flow": "the butler did it"},
	}}
	d := NewDirector(sc, generator, rand.New(rand.NewSource(1)))

	err := d.Run(context.Background())

	require.NoError(t, err, "Should play on into the generated scene")
	require.Equal(t, 1, generator.calls, "Should generate once for the unwritten scene")
	require.Equal(t, "the butler did it", d.Log.Ending, "Should record the generated ending")
	require.True(t, d.Script.Has("ending 1"), "Should merge the generated scene into the script")
}

func TestRunStopsWhenGenerationFails(t *testing.T) {
	sc := script.Script{
		"prologue": map[string]any{
			"interactions": map[string]any{
				"actions": []any{"follow the footprints"},
			},
			"triggers": map[string]any{
				"follow the footprints": map[string]any{"jump": "scene 2"},
			},
		},
	}
	cause := errors.New("model offline")
	generator := &mockGenerator{err: cause}
	d := NewDirector(sc, generator, rand.New(rand.NewSource(1)))

	err := d.Run(context.Background())

	require.ErrorIs(t, err, cause, "Should keep the cause visible")
	require.ErrorContains(t, err, `failed to continue past "scene 2"`, "Should name the stuck scene")
}

func TestRunTimesOutWithoutAnEnding(t *testing.T) {
	sc := script.Script{
		"prologue": map[string]any{
			"interactions": map[string]any{
				"dialogue": []any{"ask about the weather"},
			},
		},
	}
	d := NewDirector(sc, &mockGenerator{}, rand.New(rand.NewSource(1)))

	err := d.Run(context.Background())

	require.NoError(t, err, "Should end the playthrough cleanly")
	require.Equal(t, TimeoutEnding, d.Log.Ending, "Should record the timeout ending")
	require.Len(t, d.Log.InteractionHistory, MaxTurns, "Should burn every turn talking")
}

func TestRunFollowsALeaveAction(t *testing.T) {
	sc := script.Script{
		"prologue": map[string]any{
			"interactions": map[string]any{
				"actions": []any{"leave the mansion"},
			},
			"triggers": map[string]any{
				"leave the mansion": map[string]any{"jump": "ending 2"},
			},
		},
		"ending 2": map[string]any{"flow": "the case stays cold"},
	}
	d := NewDirector(sc, &mockGenerator{}, rand.New(rand.NewSource(1)))

	err := d.Run(context.Background())

	require.NoError(t, err, "Should play through to the ending")
	require.Equal(t, "the case stays cold", d.Log.Ending, "Should record the ending the player left into")
}
