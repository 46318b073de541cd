// Package agent holds the scriptwriter, the piece that decides which
// scene a story gets next.
package agent

import (
	"context"
	"errors"
	"fmt"

	"drama/oracle"
	"drama/script"
	"drama/searcher"

	"github.com/rs/zerolog/log"
)

// ErrGenerationFailed reports that neither the search nor the direct
// fallback produced a scene.
var ErrGenerationFailed = errors.New("scene generation failed")

// Generator produces the next scene of a story.
type Generator interface {
	GenerateScene(ctx context.Context, sc script.Script, glog *script.GameLog) (script.Scene, error)
}

// Scriptwriter generates scenes by searching over oracle proposals. When
// a search selects nothing it falls back to one direct proposal.
type Scriptwriter struct {
	mcts   *searcher.MCTS
	oracle oracle.Oracle
}

func NewScriptwriter(m *searcher.MCTS, o oracle.Oracle) *Scriptwriter {
	if m == nil || o == nil {
		panic("Must provide a searcher and an oracle")
	}
	return &Scriptwriter{mcts: m, oracle: o}
}

func (w *Scriptwriter) GenerateScene(ctx context.Context, sc script.Script, glog *script.GameLog) (script.Scene, error) {
	scene, metric, err := w.mcts.Search(ctx, sc, glog)
	if err == nil {
		log.Info().Msgf("scriptwriter: search %s selected %q", metric.RunID, scene.Title())
		return scene, nil
	}

	log.Warn().Msgf("scriptwriter: search failed (%v), falling back to a direct proposal", err)

	candidates, err := w.oracle.Propose(ctx, nil, sc, glog, 1)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}
	if len(candidates) == 0 || candidates[0] == nil {
		return nil, fmt.Errorf("%w: fallback proposal returned no scene", ErrGenerationFailed)
	}
	return candidates[0], nil
}
