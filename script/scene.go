package script

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Scene is one narrative continuation: a single-entry document mapping a
// scene name to its body. The search layer treats the body as opaque; only
// the playthrough runtime reads into it.
type Scene map[string]any

// Key renders the scene into a deterministic cache key. Map keys serialize
// in sorted order, so two documents with the same entries written in a
// different order share a key. List order still distinguishes scenes.
func (s Scene) Key() string {
	if s == nil {
		return "null"
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(s))
	}
	return string(data)
}

// Title returns the scene's name: the document's single key. A malformed
// multi-entry document yields the lexicographically first name so the
// answer is at least stable.
func (s Scene) Title() string {
	if len(s) == 0 {
		return ""
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}

// Body returns the scene content, or nil when the document is empty or the
// content is not a map.
func (s Scene) Body() map[string]any {
	body, _ := s[s.Title()].(map[string]any)
	return body
}

// IsEnding reports whether the scene terminates a playthrough.
func (s Scene) IsEnding() bool {
	return strings.HasPrefix(s.Title(), EndingPrefix)
}

// Flow returns the scene's narration text.
func (s Scene) Flow() string {
	flow, _ := s.Body()["flow"].(string)
	return flow
}

// Clues returns the scene's plot entries, revealed to the player on entry.
func (s Scene) Clues() []string {
	return stringList(s.Body()["plot"])
}

// Dialogues returns the dialogue options the scene offers.
func (s Scene) Dialogues() []string {
	return stringList(s.interactions()["dialogue"])
}

// Actions returns the action options the scene offers.
func (s Scene) Actions() []string {
	return stringList(s.interactions()["actions"])
}

// JumpTarget returns the scene an action transitions to, if the action
// fires a jump trigger.
func (s Scene) JumpTarget(action string) (string, bool) {
	triggers, _ := s.Body()["triggers"].(map[string]any)
	trigger, _ := triggers[action].(map[string]any)
	target, ok := trigger["jump"].(string)
	return target, ok && target != ""
}

func (s Scene) interactions() map[string]any {
	interactions, _ := s.Body()["interactions"].(map[string]any)
	return interactions
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
