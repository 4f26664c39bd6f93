package service

import (
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// FormatSolution projects the stored solution plus the type-specific spec
// fields into the response payload. It is read-only display material and
// has no bearing on correctness or scores.
func FormatSolution(typeKey string, solution, spec, scoringDetails map[string]any) map[string]any {
	switch typeKey {
	case "mcq", "true_false", "mcq_codes", "assertion_reason":
		return withField(solution, "answerIndex", valueOr(spec["answerIndex"], ""))
	case "match":
		return withField(solution, "pairs", valueOr(spec["pairs"], []any{}))
	case "fill_blanks":
		return withField(solution, "blanks", valueOr(spec["blanks"], []any{}))
	case "sequence":
		return withField(solution, "correctOrder", valueOr(spec["correctOrder"], []any{}))
	case "case_study":
		return withField(solution, "subQuestions", caseStudySubSolutions(spec))
	case "subjective", "long_answer":
		return subjectiveSolution(solution, scoringDetails)
	default:
		return copyMap(solution)
	}
}

func caseStudySubSolutions(spec map[string]any) []any {
	subQuestions := normalize.MapSlice(spec["questions"])
	out := make([]any, 0, len(subQuestions))
	for _, subQ := range subQuestions {
		sub := map[string]any{
			"type":   valueOr(subQ["type"], ""),
			"marks":  valueOr(subQ["marks"], 1),
			"prompt": valueOr(subQ["prompt"], ""),
		}
		switch normalize.GetString(subQ, "type") {
		case "mcq", "true_false", "mcq_codes", "assertion_reason":
			sub["answerIndex"] = valueOr(subQ["answerIndex"], "")
		case "fill_blanks":
			sub["blanks"] = valueOr(subQ["blanks"], []any{})
		case "sequence":
			sub["correctOrder"] = valueOr(subQ["correctOrder"], []any{})
		case "subjective", "long_answer":
			sub["referenceAnswer"] = valueOr(subQ["referenceAnswer"], valueOr(subQ["answer"], ""))
		}
		out = append(out, sub)
	}
	return out
}

func subjectiveSolution(solution, scoringDetails map[string]any) map[string]any {
	if scoringDetails == nil {
		return copyMap(solution)
	}

	out := copyMap(solution)
	out["scoring"] = valueOr(scoringDetails["signals"], map[string]any{})
	out["referenceAnswer"] = valueOr(solution["explanation"],
		valueOr(solution["description"], valueOr(solution["text"], "")))
	out["deviations"] = valueOr(scoringDetails["deviations"], []any{})
	out["candidate_text"] = valueOr(scoringDetails["candidate_text"], "")
	out["score_5"] = valueOr(scoringDetails["score_5"], 0.0)
	return out
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func withField(solution map[string]any, key string, value any) map[string]any {
	out := copyMap(solution)
	out[key] = value
	return out
}

func valueOr(v, def any) any {
	if v == nil {
		return def
	}
	return v
}
