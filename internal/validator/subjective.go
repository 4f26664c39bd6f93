package validator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
)

// Scorer produces the LLM-assisted scoring detail for a free-text answer.
// Implemented by scoring.Service.
type Scorer interface {
	ScoreSubjective(ctx context.Context, answerText string, q *model.Question, maxMarks float64) (map[string]any, error)
}

// Subjective grades free-text answers through the scoring orchestrator and
// maps its score onto the pass threshold.
type Subjective struct {
	scorer       Scorer
	passingScore float64
}

// NewSubjective creates a subjective validator. passingScore is the fraction
// of totalMarks required for the answer to count as correct.
func NewSubjective(scorer Scorer, passingScore float64) *Subjective {
	return &Subjective{scorer: scorer, passingScore: passingScore}
}

func (s *Subjective) Validate(ctx context.Context, spec, answer map[string]any, totalMarks float64, q *model.Question) model.ValidationResult {
	answerText := strings.TrimSpace(getText(answer))

	if q == nil {
		q = &model.Question{Spec: spec, Marks: totalMarks}
	}

	// Always score, even empty answers, so feedback and deviations are
	// populated. The orchestrator short-circuits empties without an LLM call.
	details, err := s.scorer.ScoreSubjective(ctx, answerText, q, totalMarks)
	if err != nil {
		slog.Error("scoring subjective answer", "error", err)
		return model.ValidationResult{
			Verdict:        model.VerdictNeedsReview,
			AwardedMarks:   0,
			ScoringDetails: map[string]any{"error": err.Error()},
		}
	}

	if answerText == "" {
		return model.ValidationResult{
			Verdict:        model.VerdictIncorrect,
			AwardedMarks:   0,
			ScoringDetails: details,
		}
	}

	// A missing score reads as zero before the threshold comparison.
	score := 0.0
	if n, ok := details["score"].(float64); ok {
		score = n
	}
	threshold := totalMarks * s.passingScore

	return model.ValidationResult{
		Verdict:        verdict(score >= threshold),
		AwardedMarks:   score,
		ScoringDetails: details,
	}
}

func getText(answer map[string]any) string {
	t, _ := answer["text"].(string)
	return t
}
