package validator

import (
	"context"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// CaseStudy grades composite questions by dispatching each sub-question to
// its own type's validator through the resolver. Sub-questions are graded
// sequentially in spec order so scoring is reproducible; nested case
// studies recurse through the same resolver.
type CaseStudy struct {
	resolver Resolver
}

// NewCaseStudy creates a case-study validator dispatching through r.
func NewCaseStudy(r Resolver) *CaseStudy {
	return &CaseStudy{resolver: r}
}

func (c *CaseStudy) Validate(ctx context.Context, spec, answer map[string]any, _ float64, _ *model.Question) model.ValidationResult {
	subQuestions := normalize.MapSlice(spec["questions"])
	subAnswers := normalize.MapSlice(answer["subQuestions"])

	if len(subAnswers) == 0 {
		return incorrect()
	}

	var totalSubMarks, awardedSubMarks float64
	for i, subQ := range subQuestions {
		subMarks := normalize.ParseNumeric(subQ["marks"], 1)
		totalSubMarks += subMarks

		if i >= len(subAnswers) {
			continue // no answer for this sub-question
		}

		subType := normalize.GetString(subQ, "type")
		if subType == "" {
			continue
		}
		sub := c.resolver.Resolve(subType)
		if sub == nil {
			// Unknown sub-question type contributes zero without erroring.
			continue
		}

		subResult := sub.Validate(ctx, subQ, subAnswers[i], subMarks, nil)
		awardedSubMarks += subResult.AwardedMarks
	}

	correct := awardedSubMarks == totalSubMarks && totalSubMarks > 0
	return model.ValidationResult{
		Verdict:      verdict(correct),
		AwardedMarks: awardedSubMarks,
	}
}
