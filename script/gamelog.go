package script

import (
	"encoding/json"
	"fmt"
	"os"
)

// Interaction is one recorded player action and its outcome.
type Interaction struct {
	Scene  string `json:"scene"`
	Action string `json:"action"`
	Result string `json:"result"`
}

// GameLog tracks everything that happened during one playthrough. The
// scriptwriter feeds it back into generation so new scenes stay consistent
// with play so far.
type GameLog struct {
	PlotHistory        []string      `json:"plot_history"`
	ClueHistory        []string      `json:"clue_history"`
	HintHistory        []string      `json:"hint_history"`
	InteractionHistory []Interaction `json:"interaction_history"`
	Ending             string        `json:"ending"`
}

func NewGameLog() *GameLog {
	return &GameLog{}
}

func (g *GameLog) RecordPlot(plot string) {
	g.PlotHistory = append(g.PlotHistory, plot)
}

func (g *GameLog) RecordClue(clue string) {
	g.ClueHistory = append(g.ClueHistory, clue)
}

func (g *GameLog) RecordHint(hint string) {
	g.HintHistory = append(g.HintHistory, hint)
}

func (g *GameLog) RecordInteraction(scene, action, result string) {
	g.InteractionHistory = append(g.InteractionHistory, Interaction{
		Scene:  scene,
		Action: action,
		Result: result,
	})
}

// Save writes the log as indented JSON.
func (g *GameLog) Save(path string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal gamelog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write gamelog: %w", err)
	}
	return nil
}

// LoadGameLog reads a previously saved log.
func LoadGameLog(path string) (*GameLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gamelog: %w", err)
	}
	var g GameLog
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse gamelog: %w", err)
	}
	return &g, nil
}
