package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// Length-penalty window: answers flagged length-inappropriate lose half a
// point on the 0-5 scale when outside targetLength±20%.
const (
	targetLength = 200
	minLength    = targetLength * 8 / 10
	maxLength    = targetLength * 12 / 10
)

// Service sequences provider attempts with fallback and applies the
// deterministic post-processing that turns a raw provider score into the
// final scoring detail.
type Service struct {
	providers []Provider
}

// NewService creates the orchestrator. Providers are tried strictly in the
// given order; the next one is attempted only after the previous failed.
func NewService(providers ...Provider) *Service {
	return &Service{providers: providers}
}

// ScoreSubjective produces the scoring detail for a free-text answer. It
// never fails: empty and plagiarized answers short-circuit to zero-score
// details, and when every provider fails the caller gets the deterministic
// neutral fallback so an unavailable judge does not zero out a submission.
func (s *Service) ScoreSubjective(ctx context.Context, answerText string, q *model.Question, maxMarks float64) (map[string]any, error) {
	trimmed := strings.TrimSpace(answerText)
	if trimmed == "" {
		return emptyAnswerDetail(maxMarks, answerText), nil
	}

	if prompt := questionPrompt(q); prompt != "" {
		na := normalize.CollapseSpace(trimmed)
		np := normalize.CollapseSpace(prompt)
		if na == np || strings.Contains(na, np) || strings.Contains(np, na) {
			return questionCopyDetail(maxMarks, answerText, answerLength(trimmed)), nil
		}
	}

	var raw RawScore
	scored := false
	for _, p := range s.providers {
		r, err := p.ScoreAnswer(ctx, trimmed, q, maxMarks)
		if err != nil {
			slog.Warn("provider scoring failed", "provider", p.Name(), "error", err)
			continue
		}
		slog.Info("answer scored", "provider", p.Name())
		raw, scored = r, true
		break
	}
	if !scored {
		var qid int64
		if q != nil {
			qid = q.ID
		}
		slog.Error("all scoring providers failed", "questionID", qid)
		return unavailableDetail(maxMarks, answerText, answerLength(trimmed)), nil
	}

	return s.processResult(raw, maxMarks, answerText, answerLength(trimmed), q), nil
}

// processResult converts the provider score to the internal 0-5 scale,
// applies the length penalty, and converts back to the marks scale.
func (s *Service) processResult(raw RawScore, maxMarks float64, candidateText string, length int, q *model.Question) map[string]any {
	score5 := 2.5
	switch {
	case raw.Score != nil:
		score5 = *raw.Score / maxMarks * 5
	case raw.ScoreOutOf5 != nil:
		score5 = *raw.ScoreOutOf5
	}
	score5 = clamp(score5, 0, 5)

	deviations := append([]string(nil), raw.Deviations...)
	adjusted := score5
	if !raw.Signals.LengthAppropriate && (length < minLength || length > maxLength) {
		adjusted = clamp(score5-0.5, 0, 5)
		if length < minLength {
			deviations = append(deviations, fmt.Sprintf("Too short (%d chars, target: %d±20%%)", length, targetLength))
		} else {
			deviations = append(deviations, fmt.Sprintf("Too long (%d chars, target: %d±20%%)", length, targetLength))
		}
	}

	finalScore := adjusted / 5 * maxMarks

	feedback := raw.Rationale
	if feedback == "" {
		feedback = "Answer evaluated"
	}

	rawScore := finalScore
	if raw.Score != nil {
		rawScore = *raw.Score
	}

	return map[string]any{
		"score":                      finalScore,
		"maxMarks":                   maxMarks,
		"signals":                    raw.Signals,
		"feedback":                   feedback,
		"rationale":                  raw.Rationale,
		"deviations":                 deviations,
		"candidate_text":             candidateText,
		"score_5":                    adjusted,
		"raw_score":                  rawScore,
		"answer_length":              length,
		"reference_answer_available": referenceAnswer(solutionOf(q)) != "",
	}
}

func emptyAnswerDetail(maxMarks float64, candidateText string) map[string]any {
	return map[string]any{
		"score":          0.0,
		"maxMarks":       maxMarks,
		"signals":        Signals{},
		"feedback":       "Answer is empty",
		"deviations":     []string{"Answer is empty"},
		"candidate_text": candidateText,
		"score_5":        0.0,
		"answer_length":  0,
	}
}

func questionCopyDetail(maxMarks float64, candidateText string, length int) map[string]any {
	return map[string]any{
		"score":          0.0,
		"maxMarks":       maxMarks,
		"signals":        Signals{IsQuestionCopy: true},
		"feedback":       "Answer appears to be a copy of the question. Please provide your own answer.",
		"deviations":     []string{"Answer copied from question prompt"},
		"candidate_text": candidateText,
		"score_5":        0.0,
		"answer_length":  length,
	}
}

// unavailableDetail is the neutral fallback: half credit pending manual
// review, because a temporarily unavailable judge should not zero out a
// student's submission.
func unavailableDetail(maxMarks float64, candidateText string, length int) map[string]any {
	return map[string]any{
		"score":          maxMarks * 0.5,
		"maxMarks":       maxMarks,
		"signals":        Signals{},
		"feedback":       "Scoring service unavailable. Answer submitted for manual review.",
		"deviations":     []string{"LLM scoring service error"},
		"candidate_text": candidateText,
		"score_5":        2.5,
		"answer_length":  length,
	}
}

func answerLength(s string) int {
	return utf8.RuneCountInString(s)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
