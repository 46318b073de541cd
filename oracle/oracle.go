// Package oracle generates and evaluates candidate scenes through a
// language model. The searcher only sees the Oracle interface, so model
// providers can be swapped without touching the search code.
package oracle

import (
	"context"
	"errors"

	"drama/script"
)

// ErrUnavailable reports that the backing model could not produce a
// usable answer, whether the call failed outright or the reply did not
// parse.
var ErrUnavailable = errors.New("oracle unavailable")

// Score bounds for scene evaluations.
const (
	MinScore = 0.0
	MaxScore = 5.0
)

// Oracle proposes continuations of a scene and rates candidate scenes
// against the script so far.
type Oracle interface {
	// Propose returns up to n candidate scenes following from. A nil from
	// means the story's current tail should be continued.
	Propose(ctx context.Context, from script.Scene, sc script.Script, glog *script.GameLog, n int) ([]script.Scene, error)
	// Score rates a candidate scene between MinScore and MaxScore.
	Score(ctx context.Context, state script.Scene, sc script.Script, glog *script.GameLog) (float64, error)
}

// Completer is a raw text-in text-out model call. Implementations wrap a
// specific provider client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
