package scoring

import (
	"fmt"
	"strings"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

func buildSystemPrompt(maxMarks float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a professional grader. Score the Student Answer out of a maximum of %g points based on the provided Question and Reference Answer. Your output MUST be in JSON format.\n\n", maxMarks)
	sb.WriteString("SCORING RUBRIC GUIDELINES:\n")
	sb.WriteString("- Allocate points based on key concepts/requirements from the reference answer\n")
	sb.WriteString("- Award partial credit for partially correct answers\n")
	sb.WriteString("- Deduct points for missing key concepts or incorrect information\n")
	sb.WriteString("- If answer is just the question repeated -> Score: 0 with deviation \"Answer copied from question\"\n")
	sb.WriteString("- If answer is too short or vague -> Apply appropriate deduction\n")
	sb.WriteString("- Provide clear rationale explaining point allocation\n\n")
	sb.WriteString("OUTPUT FORMAT (JSON):\n")
	fmt.Fprintf(&sb, `{
  "Score": number (0 to %g, can be fractional like 2.5),
  "Rationale": string (explanation of score with point breakdown),
  "deviations": array of strings (specific issues: missing concepts, inaccuracies, etc.),
  "signals": {
    "accuracy_score": number (0-1, proportion of correct content),
    "completeness_score": number (0-1, proportion of required points covered),
    "length_appropriate": boolean,
    "is_question_copy": boolean,
    "has_contradiction": boolean
  }
}`, maxMarks)
	return sb.String()
}

func buildUserPrompt(questionPrompt, referenceAnswer string, maxMarks float64, candidate string) string {
	return fmt.Sprintf("QUESTION: %s%s\n\nSTUDENT ANSWER: %s\n\nOUTPUT JSON:",
		questionPrompt, rubricSection(referenceAnswer, maxMarks), candidate)
}

// buildSinglePrompt merges the system and user halves for providers that
// take one combined prompt per request.
func buildSinglePrompt(questionPrompt, referenceAnswer string, maxMarks float64, candidate string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a professional grader. Score the Student Answer out of a maximum of %g points based on the provided Question and Reference Rubric. Your output MUST be in JSON format.\n\n", maxMarks)
	fmt.Fprintf(&sb, "QUESTION: %s%s\n\n", questionPrompt, rubricSection(referenceAnswer, maxMarks))
	fmt.Fprintf(&sb, "STUDENT ANSWER: %s\n\n", candidate)
	fmt.Fprintf(&sb, `OUTPUT JSON:
{
  "Score": number (0 to %g),
  "Rationale": string (explanation with point breakdown),
  "deviations": [string],
  "signals": {
    "accuracy_score": number (0-1),
    "completeness_score": number (0-1),
    "length_appropriate": boolean,
    "is_question_copy": boolean,
    "has_contradiction": boolean
  }
}`, maxMarks)
	return sb.String()
}

func rubricSection(referenceAnswer string, maxMarks float64) string {
	if referenceAnswer == "" {
		return "\n\nREFERENCE RUBRIC: Not provided. Score based on general correctness, completeness, and clarity of the answer."
	}
	return fmt.Sprintf("\n\nREFERENCE RUBRIC (Max %g Points):\nThe reference answer should guide point allocation. Key concepts/requirements identified from the reference:\n%s", maxMarks, referenceAnswer)
}

func questionPrompt(q *model.Question) string {
	if q == nil {
		return ""
	}
	return normalize.GetString(q.Spec, "prompt")
}

// referenceAnswer extracts the grading reference from a solution object:
// the first present of referenceAnswer, explanation, description, text wins.
// Sequence values are joined into one string with single spaces.
func referenceAnswer(solution map[string]any) string {
	for _, key := range []string{"referenceAnswer", "explanation", "description", "text"} {
		if v, ok := solution[key]; ok && v != nil {
			return fieldAsText(v)
		}
	}
	return ""
}

func fieldAsText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, fmt.Sprint(e))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(t)
	}
}
