package script

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	// OpeningScene is where every playthrough starts.
	OpeningScene = "prologue"
	// EndingPrefix marks terminal scenes.
	EndingPrefix = "ending"
)

// Script is the full drama script: scene name to scene body. Generated
// scenes merge into it as play progresses.
type Script map[string]any

// Load reads a YAML script file.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse script file: %w", err)
	}
	return sc, nil
}

// Scene returns the named scene as a standalone document.
func (sc Script) Scene(name string) (Scene, bool) {
	body, ok := sc[name]
	if !ok {
		return nil, false
	}
	return Scene{name: body}, true
}

// Has reports whether the script contains the named scene.
func (sc Script) Has(name string) bool {
	_, ok := sc[name]
	return ok
}

// Merge adds a scene document to the script, overwriting on name clash.
func (sc Script) Merge(s Scene) {
	for name, body := range s {
		sc[name] = body
	}
}

// Names returns all scene names in sorted order.
func (sc Script) Names() []string {
	names := make([]string, 0, len(sc))
	for name := range sc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
