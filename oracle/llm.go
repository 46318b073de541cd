package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"drama/script"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("drama/oracle")

const defaultMaxConcurrent = 4

type LLMOption func(o *LLMOracle)

// WithMaxConcurrent caps how many completions a single Propose runs at
// once.
func WithMaxConcurrent(n int) LLMOption {
	return func(o *LLMOracle) {
		if n > 0 {
			o.maxConcurrent = n
		}
	}
}

// LLMOracle implements Oracle on top of any Completer.
type LLMOracle struct {
	completer     Completer
	maxConcurrent int
}

func NewLLMOracle(completer Completer, options ...LLMOption) *LLMOracle {
	if completer == nil {
		panic("Must provide a completer")
	}

	o := &LLMOracle{ // Default values
		completer:     completer,
		maxConcurrent: defaultMaxConcurrent,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// Propose asks the model for n candidate continuations, fanned out as
// concurrent completions of the same prompt. Sampling temperature is
// what keeps the candidates distinct.
func (o *LLMOracle) Propose(ctx context.Context, from script.Scene, sc script.Script, glog *script.GameLog, n int) ([]script.Scene, error) {
	ctx, span := tracer.Start(ctx, "oracle.propose")
	defer span.End()
	span.SetAttributes(attribute.Int("oracle.candidates", n))

	if n <= 0 {
		return nil, nil
	}

	prompt := genPrompt(from, sc, glog)
	candidates := make([]script.Scene, n)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(o.maxConcurrent)
	for i := 0; i < n; i++ {
		group.Go(func() error {
			answer, err := o.completer.Complete(ctx, prompt)
			if err != nil {
				return errors.Join(ErrUnavailable, err)
			}
			candidate, err := parseScene(answer)
			if err != nil {
				return err
			}
			candidates[i] = candidate
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "propose failed")
		return nil, err
	}

	return candidates, nil
}

type evaluation struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Score rates a candidate scene between MinScore and MaxScore.
func (o *LLMOracle) Score(ctx context.Context, state script.Scene, sc script.Script, glog *script.GameLog) (float64, error) {
	ctx, span := tracer.Start(ctx, "oracle.score")
	defer span.End()

	answer, err := o.completer.Complete(ctx, evalPrompt(state, sc, glog))
	if err != nil {
		err = errors.Join(ErrUnavailable, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "score failed")
		return 0, err
	}

	var eval evaluation
	if err := json.Unmarshal([]byte(strip(answer)), &eval); err != nil {
		err = fmt.Errorf("%w: failed to parse evaluation: %v", ErrUnavailable, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "score failed")
		return 0, err
	}
	if eval.Score < MinScore || eval.Score > MaxScore {
		return 0, fmt.Errorf("%w: score %v out of range", ErrUnavailable, eval.Score)
	}

	span.SetAttributes(attribute.Float64("oracle.score", eval.Score))
	return eval.Score, nil
}

// parseScene decodes a completion into a scene document. The model must
// answer with a single top-level key, the scene title.
func parseScene(answer string) (script.Scene, error) {
	var scene script.Scene
	if err := json.Unmarshal([]byte(strip(answer)), &scene); err != nil {
		return nil, fmt.Errorf("%w: failed to parse scene: %v", ErrUnavailable, err)
	}
	if len(scene) != 1 {
		return nil, fmt.Errorf("%w: expected a single scene, got %d keys", ErrUnavailable, len(scene))
	}
	return scene, nil
}

// strip removes the markdown code fence some models wrap around JSON
// answers.
func strip(answer string) string {
	trimmed := strings.TrimSpace(answer)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
