package oracle

import (
	"testing"

	"drama/script"

	"github.com/stretchr/testify/require"
)

func TestContinueFrom(t *testing.T) {
	t.Run("Prefers the given scene", func(t *testing.T) {
		from := script.Scene{"scene 4": map[string]any{}}
		glog := script.NewGameLog()
		glog.RecordInteraction("scene 2", "ask the butler", "a shrug")

		require.Equal(t, "scene 4", continueFrom(from, glog), "Should name the given scene")
	})

	t.Run("Falls back to the scene played last", func(t *testing.T) {
		glog := script.NewGameLog()
		glog.RecordInteraction("scene 2", "ask the butler", "a shrug")
		glog.RecordInteraction("scene 3", "search the study", "jump to scene 4")

		require.Equal(t, "scene 3", continueFrom(nil, glog), "Should name the scene played last")
	})

	t.Run("Falls back to the opening", func(t *testing.T) {
		require.Equal(t, script.OpeningScene, continueFrom(nil, script.NewGameLog()), "Should name the opening")
		require.Equal(t, script.OpeningScene, continueFrom(nil, nil), "Should name the opening")
	})
}

func TestGenPrompt(t *testing.T) {
	sc := script.Script{"prologue": map[string]any{"plot": []any{"a storm cuts the power"}}}
	glog := script.NewGameLog()
	glog.RecordPlot("a storm cuts the power")

	prompt := genPrompt(nil, sc, glog)

	require.Contains(t, prompt, "a storm cuts the power", "Should carry the script")
	require.Contains(t, prompt, `"prologue"`, "Should name the scene to continue from")
}

func TestEvalPrompt(t *testing.T) {
	state := script.Scene{"scene 2": map[string]any{"plot": []any{"the butler lies"}}}

	prompt := evalPrompt(state, script.Script{}, script.NewGameLog())

	require.Contains(t, prompt, "the butler lies", "Should carry the candidate scene")
	require.Contains(t, prompt, "score", "Should ask for a score")
}
