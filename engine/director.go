// Package engine plays a script end to end, standing in for a human
// player and calling for new scenes whenever the story runs off the
// written page.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"drama/agent"
	"drama/script"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MaxTurns bounds a playthrough that never reaches an ending.
const MaxTurns = 20

// TimeoutEnding is recorded when a playthrough runs out of turns.
const TimeoutEnding = "timeout: the story reached no ending"

// Director walks a simulated player through the script, recording the
// playthrough in its log.
type Director struct {
	Script script.Script
	Log    *script.GameLog

	generator agent.Generator
	maxTurns  int
	rng       *rand.Rand
}

// NewDirector builds a director over sc. A nil rng seeds one from the
// clock.
func NewDirector(sc script.Script, generator agent.Generator, rng *rand.Rand) *Director {
	if sc == nil {
		panic("Must provide a script")
	}
	if generator == nil {
		panic("Must provide a scene generator")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	return &Director{
		Script:    sc,
		Log:       script.NewGameLog(),
		generator: generator,
		maxTurns:  MaxTurns,
		rng:       rng,
	}
}

// Run plays from the opening until an ending scene, generating scenes on
// demand when the player jumps somewhere unwritten. A story that reaches
// no ending within the turn limit gets the timeout ending.
func (d *Director) Run(ctx context.Context) error {
	log.Info().Msgf("director: starting playthrough at %q", script.OpeningScene)

	current := script.OpeningScene
	visited := map[string]bool{}

	for turn := 0; turn < d.maxTurns; turn++ {
		scene, ok := d.Script.Scene(current)
		if !ok {
			generated, err := d.generator.GenerateScene(ctx, d.Script, d.Log)
			if err != nil {
				return fmt.Errorf("failed to continue past %q: %w", current, err)
			}
			d.Script.Merge(generated)
			current = generated.Title()
			log.Info().Msgf("director: generated %q", current)
			continue
		}

		if scene.IsEnding() {
			d.Log.Ending = endingOf(scene)
			log.Info().Msgf("director: playthrough over after %d interactions: %s",
				len(d.Log.InteractionHistory), d.Log.Ending)
			return nil
		}

		if !visited[current] {
			visited[current] = true
			if flow := scene.Flow(); flow != "" {
				d.Log.RecordPlot(flow)
			}
			for _, clue := range scene.Clues() {
				d.Log.RecordClue(clue)
			}
		}

		choice := d.pickInteraction(scene)
		if choice == "" {
			break
		}

		result := "nothing happens"
		next := current
		if target, ok := scene.JumpTarget(choice); ok {
			result = "jump to " + target
			next = target
		}
		d.Log.RecordInteraction(current, choice, result)
		current = next
	}

	d.Log.Ending = TimeoutEnding
	log.Info().Msgf("director: playthrough over after %d interactions: %s",
		len(d.Log.InteractionHistory), d.Log.Ending)
	return nil
}

// pickInteraction chooses what the player does in a scene. Players favor
// dialogue over actions and only occasionally walk out.
func (d *Director) pickInteraction(scene script.Scene) string {
	dialogues := scene.Dialogues()
	actions := scene.Actions()
	if len(dialogues) == 0 && len(actions) == 0 {
		return ""
	}

	if len(dialogues) > 0 && (len(actions) == 0 || d.rng.Float64() < 0.6) {
		return dialogues[d.rng.Intn(len(dialogues))]
	}

	var leaves, others []string
	for _, action := range actions {
		if strings.HasPrefix(action, "leave") {
			leaves = append(leaves, action)
		} else {
			others = append(others, action)
		}
	}
	if len(others) == 0 || (len(leaves) > 0 && d.rng.Float64() < 0.2) {
		return leaves[d.rng.Intn(len(leaves))]
	}
	return others[d.rng.Intn(len(others))]
}

// endingOf names the outcome a playthrough finished with.
func endingOf(scene script.Scene) string {
	if flow := scene.Flow(); flow != "" {
		return flow
	}
	return scene.Title()
}
