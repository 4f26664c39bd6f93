// Package scoring orchestrates LLM-assisted grading of free-text answers.
// Two interchangeable provider clients build a grading prompt, call an
// external text-generation endpoint, and normalize whatever JSON-ish text
// comes back into one scoring contract.
package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// ErrNoCredential marks a provider that was asked to score without a
// configured API key. Not retryable against the same provider.
var ErrNoCredential = errors.New("missing API credential")

// Error is returned when a provider fails to produce a parseable score, so
// the orchestrator can distinguish "provider unusable" from "bad grade".
type Error struct {
	Provider string
	Reason   string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s scoring failed: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s scoring failed: %s", e.Provider, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Signals are the structured quality indicators attached to an LLM score.
type Signals struct {
	AccuracyScore     float64 `json:"accuracy_score"`
	CompletenessScore float64 `json:"completeness_score"`
	LengthAppropriate bool    `json:"length_appropriate"`
	IsQuestionCopy    bool    `json:"is_question_copy"`
	HasContradiction  bool    `json:"has_contradiction"`
}

func defaultSignals() Signals {
	return Signals{
		AccuracyScore:     0.5,
		CompletenessScore: 0.5,
		LengthAppropriate: true,
	}
}

// RawScore is a provider's normalized response. Score is on the question's
// marks scale, ScoreOutOf5 on the internal 0-5 scale; either may be absent.
type RawScore struct {
	Score       *float64
	ScoreOutOf5 *float64
	Rationale   string
	Feedback    string
	Deviations  []string
	Signals     Signals
}

// Provider scores one candidate answer against a question. Implementations
// must return an *Error on any transport, credential or parse failure and
// never a silently guessed score; field-level defaulting happens only
// inside a successfully parsed response.
type Provider interface {
	Name() string
	ScoreAnswer(ctx context.Context, candidate string, q *model.Question, maxMarks float64) (RawScore, error)
}

// normalizeResponse maps a parsed provider object onto RawScore, applying
// the field-level defaults shared by every provider.
func normalizeResponse(parsed map[string]any) RawScore {
	raw := RawScore{Signals: defaultSignals()}

	if v, ok := normalize.Number(parsed, "Score"); ok {
		raw.Score = &v
	}
	if v, ok := normalize.Number(parsed, "score_out_of_5"); ok {
		raw.ScoreOutOf5 = &v
	}

	feedback := normalize.GetString(parsed, "feedback")
	rationale := normalize.GetString(parsed, "Rationale")
	if rationale == "" {
		rationale = feedback
	}
	if feedback == "" {
		feedback = rationale
	}
	raw.Rationale = rationale
	raw.Feedback = feedback

	raw.Deviations = normalize.StringSlice(parsed["deviations"])

	if m, ok := parsed["signals"].(map[string]any); ok {
		raw.Signals = parseSignals(m)
	}
	return raw
}

func parseSignals(m map[string]any) Signals {
	s := defaultSignals()
	if v, ok := normalize.Number(m, "accuracy_score"); ok {
		s.AccuracyScore = v
	}
	if v, ok := normalize.Number(m, "completeness_score"); ok {
		s.CompletenessScore = v
	}
	if b, ok := m["length_appropriate"].(bool); ok {
		s.LengthAppropriate = b
	}
	if b, ok := m["is_question_copy"].(bool); ok {
		s.IsQuestionCopy = b
	}
	if b, ok := m["has_contradiction"].(bool); ok {
		s.HasContradiction = b
	}
	return s
}
