package validator

import (
	"context"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// Match grades match-the-following questions with partial credit: each
// index-aligned pair whose two elements both match the expected pair
// counts toward the award.
type Match struct{}

func (Match) Validate(_ context.Context, spec, answer map[string]any, totalMarks float64, _ *model.Question) model.ValidationResult {
	expected := normalize.PairSlice(spec["pairs"])
	user := normalize.PairSlice(answer["pairs"])

	if len(user) == 0 || len(expected) != len(user) {
		return incorrect()
	}

	correctCount := 0
	for i, exp := range expected {
		got := user[i]
		if len(exp) >= 2 && len(got) >= 2 &&
			equalValue(exp[0], got[0]) && equalValue(exp[1], got[1]) {
			correctCount++
		}
	}

	return model.ValidationResult{
		Verdict:      verdict(correctCount == len(expected)),
		AwardedMarks: totalMarks * float64(correctCount) / float64(len(expected)),
	}
}
