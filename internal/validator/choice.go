package validator

import (
	"context"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// Choice grades single-selection questions: mcq, true_false, mcq_codes and
// assertion_reason all reduce to comparing one answer index.
type Choice struct{}

// unansweredIndex is the client sentinel for "no option selected".
const unansweredIndex = -1

func (Choice) Validate(_ context.Context, spec, answer map[string]any, totalMarks float64, _ *model.Question) model.ValidationResult {
	userIdx, ok := normalize.Number(answer, "answerIndex")
	if !ok || int(userIdx) == unansweredIndex {
		return incorrect()
	}

	expIdx, expOK := normalize.Number(spec, "answerIndex")
	correct := expOK && int(expIdx) == int(userIdx)

	awarded := 0.0
	if correct {
		awarded = totalMarks
	}
	return model.ValidationResult{Verdict: verdict(correct), AwardedMarks: awarded}
}
