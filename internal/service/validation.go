// Package service wires the validation pipeline: fetch the question,
// resolve its validator, grade the answer, and assemble the outward-facing
// response with feedback and a formatted solution.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
	"github.com/testepapers/test-e-portal-api-service/internal/validator"
)

// ErrUnknownQuestionType marks a question whose normalized type key has no
// registered validator. Surfaced to callers as a 400-equivalent.
var ErrUnknownQuestionType = errors.New("unknown question type")

// QuestionStore fetches question records. Implemented by store.Store; the
// engine only reads.
type QuestionStore interface {
	GetQuestion(ctx context.Context, id int64) (*model.Question, error)
}

// Service is the top-level validation pipeline.
type Service struct {
	store    QuestionStore
	registry *validator.Registry
}

// New creates the validation service.
func New(store QuestionStore, registry *validator.Registry) *Service {
	return &Service{store: store, registry: registry}
}

// ValidateAnswer grades userAnswer against the stored question. It returns
// the store's not-found error or ErrUnknownQuestionType as distinguishable
// failures; provider problems never surface here.
func (s *Service) ValidateAnswer(ctx context.Context, questionID int64, userAnswer map[string]any) (*model.ValidationResponse, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("fetch question %d: %w", questionID, err)
	}

	typeKey := normalize.TypeKey(q.TypeKey)
	v := s.registry.Resolve(typeKey)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestionType, q.TypeKey)
	}

	totalMarks := q.Marks
	result := v.Validate(ctx, q.Spec, userAnswer, totalMarks, q)

	resp := &model.ValidationResponse{
		IsCorrect:    result.Verdict.Bool(),
		AwardedMarks: result.AwardedMarks,
		TotalMarks:   totalMarks,
		Feedback:     feedback(typeKey, result.Verdict, result.ScoringDetails),
		Solution:     FormatSolution(typeKey, q.Solution, q.Spec, result.ScoringDetails),
	}

	slog.Info("validation completed",
		"questionID", questionID,
		"type", typeKey,
		"isCorrect", result.Verdict.Bool(),
		"awardedMarks", result.AwardedMarks,
		"totalMarks", totalMarks,
	)
	return resp, nil
}

func feedback(typeKey string, v model.Verdict, details map[string]any) string {
	if v == model.VerdictNeedsReview {
		return "Answer submitted for teacher review"
	}
	if typeKey == "subjective" || typeKey == "long_answer" {
		if fb, ok := details["feedback"].(string); ok && fb != "" {
			return fb
		}
		return "Answer evaluated"
	}
	if v == model.VerdictCorrect {
		return "Correct!"
	}
	return "Incorrect"
}
