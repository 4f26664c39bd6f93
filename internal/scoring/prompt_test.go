package scoring

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(10)
	for _, want := range []string{
		"maximum of 10 points",
		`"Score": number (0 to 10`,
		"accuracy_score",
		"completeness_score",
		"length_appropriate",
		"is_question_copy",
		"has_contradiction",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt should contain %q", want)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	t.Run("with reference answer", func(t *testing.T) {
		prompt := buildUserPrompt("What is DNS?", "DNS resolves names to addresses.", 5, "it maps names")
		if !strings.Contains(prompt, "QUESTION: What is DNS?") {
			t.Error("prompt should contain the question")
		}
		if !strings.Contains(prompt, "REFERENCE RUBRIC (Max 5 Points)") {
			t.Error("prompt should carry the rubric header")
		}
		if !strings.Contains(prompt, "DNS resolves names to addresses.") {
			t.Error("prompt should contain the reference answer")
		}
		if !strings.Contains(prompt, "STUDENT ANSWER: it maps names") {
			t.Error("prompt should contain the student answer")
		}
	})

	t.Run("without reference answer", func(t *testing.T) {
		prompt := buildUserPrompt("What is DNS?", "", 5, "it maps names")
		if !strings.Contains(prompt, "REFERENCE RUBRIC: Not provided") {
			t.Error("prompt should note the missing rubric")
		}
		if strings.Contains(prompt, "Max 5 Points") {
			t.Error("prompt should not carry the rubric header")
		}
	})
}

func TestBuildSinglePrompt(t *testing.T) {
	prompt := buildSinglePrompt("Explain TLS.", "handshake, certificates", 4, "it encrypts")
	for _, want := range []string{
		"professional grader",
		"QUESTION: Explain TLS.",
		"handshake, certificates",
		"STUDENT ANSWER: it encrypts",
		"OUTPUT JSON:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("combined prompt should contain %q", want)
		}
	}
}

func TestReferenceAnswer(t *testing.T) {
	tests := []struct {
		name     string
		solution map[string]any
		want     string
	}{
		{"referenceAnswer wins", map[string]any{
			"referenceAnswer": "primary",
			"explanation":     "secondary",
		}, "primary"},
		{"explanation second", map[string]any{
			"explanation": "from explanation",
			"description": "from description",
		}, "from explanation"},
		{"description third", map[string]any{
			"description": "from description",
			"text":        "from text",
		}, "from description"},
		{"text last", map[string]any{"text": "from text"}, "from text"},
		{"sequence joined with spaces", map[string]any{
			"referenceAnswer": []any{"first point", "second point"},
		}, "first point second point"},
		{"empty solution", map[string]any{}, ""},
		{"nil solution", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := referenceAnswer(tt.solution); got != tt.want {
				t.Errorf("referenceAnswer = %q, want %q", got, tt.want)
			}
		})
	}
}
