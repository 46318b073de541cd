package script

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSceneKey(t *testing.T) {
	t.Run("keying a nil scene", func(t *testing.T) {
		var s Scene

		require.Equal(t, "null", s.Key(), "Nil scene should key to a stable marker")
	})

	t.Run("keying scenes with the same entries in a different order", func(t *testing.T) {
		first := Scene{"scene 2": map[string]any{"flow": "rain", "setting": "manor"}}
		second := Scene{"scene 2": map[string]any{"setting": "manor", "flow": "rain"}}

		require.Equal(t, first.Key(), second.Key(), "Map entry order should not split cache keys")
	})

	t.Run("keying scenes that differ only in list order", func(t *testing.T) {
		first := Scene{"scene 2": map[string]any{"plot": []any{"a knock", "a scream"}}}
		second := Scene{"scene 2": map[string]any{"plot": []any{"a scream", "a knock"}}}

		require.NotEqual(t, first.Key(), second.Key(), "List order should distinguish scenes")
	})

	t.Run("keying the same scene twice", func(t *testing.T) {
		s := Scene{"scene 3": map[string]any{
			"flow": "the lights cut out",
			"interactions": map[string]any{
				"dialogue": []any{"call out for the butler"},
				"actions":  []any{"light a match"},
			},
		}}

		require.Equal(t, s.Key(), s.Key(), "Keying should be deterministic")
	})
}

func TestSceneTitle(t *testing.T) {
	t.Run("reading a single-entry document", func(t *testing.T) {
		s := Scene{"scene 1": map[string]any{"flow": "a storm rolls in"}}

		require.Equal(t, "scene 1", s.Title(), "Title should be the document's only key")
	})

	t.Run("reading an empty document", func(t *testing.T) {
		require.Equal(t, "", Scene{}.Title(), "Empty document should have no title")
	})

	t.Run("reading a malformed multi-entry document", func(t *testing.T) {
		s := Scene{"scene 9": map[string]any{}, "scene 2": map[string]any{}}

		require.Equal(t, "scene 2", s.Title(), "Title should pick the first name in sorted order")
	})
}

func TestSceneAccessors(t *testing.T) {
	s := Scene{"scene 4": map[string]any{
		"setting":    "the locked study",
		"characters": []any{"the butler", "the heiress"},
		"plot":       []any{"the will is missing", "someone forced the window"},
		"flow":       "dust hangs over an overturned desk",
		"interactions": map[string]any{
			"dialogue": []any{"ask the butler about the will"},
			"actions":  []any{"search the desk", "leave"},
		},
		"triggers": map[string]any{
			"search the desk": map[string]any{"jump": "scene 5"},
		},
	}}

	t.Run("reading interactions", func(t *testing.T) {
		require.Equal(t, []string{"ask the butler about the will"}, s.Dialogues(),
			"Should list the dialogue options")
		require.Equal(t, []string{"search the desk", "leave"}, s.Actions(),
			"Should list the action options")
	})

	t.Run("reading plot and flow", func(t *testing.T) {
		require.Equal(t, []string{"the will is missing", "someone forced the window"}, s.Clues(),
			"Should list the plot entries")
		require.Equal(t, "dust hangs over an overturned desk", s.Flow(), "Should read the narration")
	})

	t.Run("resolving triggers", func(t *testing.T) {
		target, ok := s.JumpTarget("search the desk")
		require.True(t, ok, "Triggered action should jump")
		require.Equal(t, "scene 5", target, "Jump should name the next scene")

		_, ok = s.JumpTarget("leave")
		require.False(t, ok, "Untriggered action should not jump")
	})

	t.Run("detecting endings", func(t *testing.T) {
		require.False(t, s.IsEnding(), "Numbered scene should not be an ending")
		require.True(t, Scene{"ending 1": map[string]any{"flow": "dawn"}}.IsEnding(),
			"Ending-prefixed scene should terminate the playthrough")
	})

	t.Run("reading a body that is not a map", func(t *testing.T) {
		broken := Scene{"scene 1": "just a string"}

		require.Nil(t, broken.Body(), "Non-map body should read as nil")
		require.Empty(t, broken.Actions(), "Non-map body should offer no actions")
	})
}
