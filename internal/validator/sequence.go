package validator

import (
	"context"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// Sequence grades ordering questions all-or-nothing: every element must sit
// at its expected position.
type Sequence struct{}

func (Sequence) Validate(_ context.Context, spec, answer map[string]any, totalMarks float64, _ *model.Question) model.ValidationResult {
	expected := normalize.AnySlice(spec["correctOrder"])
	user := normalize.AnySlice(answer["order"])

	if len(dropNils(user)) == 0 {
		return incorrect()
	}
	if len(dropNils(user)) != len(dropNils(expected)) {
		return incorrect()
	}

	for i := range expected {
		if !equalValue(at(user, i), at(expected, i)) {
			return incorrect()
		}
	}

	return model.ValidationResult{Verdict: model.VerdictCorrect, AwardedMarks: totalMarks}
}

func dropNils(s []any) []any {
	var out []any
	for _, v := range s {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func at(s []any, i int) any {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}
