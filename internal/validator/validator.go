// Package validator contains the type-specific grading algorithms and the
// registry that routes a question type key to one of them.
package validator

import (
	"context"
	"reflect"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
)

// Validator grades one answer against a question spec. Implementations must
// never fail on a missing or malformed answer field: absence of a required
// field grades as incorrect with zero marks.
type Validator interface {
	Validate(ctx context.Context, spec, answer map[string]any, totalMarks float64, q *model.Question) model.ValidationResult
}

// Resolver looks up the validator for a normalized type key. The case-study
// validator holds one to dispatch sub-questions, including nested case
// studies, without referencing individual validators.
type Resolver interface {
	Resolve(typeKey string) Validator
}

func incorrect() model.ValidationResult {
	return model.ValidationResult{Verdict: model.VerdictIncorrect, AwardedMarks: 0}
}

func verdict(correct bool) model.Verdict {
	if correct {
		return model.VerdictCorrect
	}
	return model.VerdictIncorrect
}

// equalValue compares two JSON tree values. reflect.DeepEqual keeps the
// comparison total even when elements are sequences or objects.
func equalValue(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
