package validator

import (
	"context"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// FillBlanks grades fill-in-the-blanks questions by index-aligned,
// normalized text comparison. An empty normalized value never matches,
// even when both sides are empty.
type FillBlanks struct{}

func (FillBlanks) Validate(_ context.Context, spec, answer map[string]any, totalMarks float64, _ *model.Question) model.ValidationResult {
	blanks := normalize.MapSlice(spec["blanks"])
	answers := normalize.StringSlice(answer["answers"])

	if len(answers) == 0 || len(blanks) == 0 {
		return incorrect()
	}

	correctCount := 0
	for i, blank := range blanks {
		expected := normalize.Text(normalize.GetString(blank, "answer"))
		var user string
		if i < len(answers) {
			user = normalize.Text(answers[i])
		}
		if user != "" && expected == user {
			correctCount++
		}
	}

	return model.ValidationResult{
		Verdict:      verdict(correctCount == len(blanks)),
		AwardedMarks: totalMarks * float64(correctCount) / float64(len(blanks)),
	}
}
