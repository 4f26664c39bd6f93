package validator

import (
	"context"
	"testing"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
)

func pairs(ps ...[2]string) []any {
	out := make([]any, 0, len(ps))
	for _, p := range ps {
		out = append(out, []any{p[0], p[1]})
	}
	return out
}

func TestMatch(t *testing.T) {
	spec := map[string]any{
		"pairs": pairs([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"}, [2]string{"d", "4"}),
	}

	tests := []struct {
		name      string
		answer    map[string]any
		wantV     model.Verdict
		wantMarks float64
	}{
		{
			"all correct",
			map[string]any{"pairs": pairs([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"}, [2]string{"d", "4"})},
			model.VerdictCorrect, 8,
		},
		{
			"half correct gives partial credit",
			map[string]any{"pairs": pairs([2]string{"a", "1"}, [2]string{"b", "9"}, [2]string{"c", "3"}, [2]string{"d", "9"})},
			model.VerdictIncorrect, 4,
		},
		{
			"count mismatch scores zero",
			map[string]any{"pairs": pairs([2]string{"a", "1"}, [2]string{"b", "2"})},
			model.VerdictIncorrect, 0,
		},
		{"no pairs", map[string]any{"pairs": []any{}}, model.VerdictIncorrect, 0},
		{"missing field", map[string]any{}, model.VerdictIncorrect, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match{}.Validate(context.Background(), spec, tt.answer, 8, nil)
			if got.Verdict != tt.wantV {
				t.Errorf("verdict = %v, want %v", got.Verdict, tt.wantV)
			}
			if got.AwardedMarks != tt.wantMarks {
				t.Errorf("awardedMarks = %v, want %v", got.AwardedMarks, tt.wantMarks)
			}
		})
	}
}

// A pair with fewer than two elements never counts as matched.
func TestMatchShortPair(t *testing.T) {
	spec := map[string]any{"pairs": []any{[]any{"a"}, []any{"b", "2"}}}
	answer := map[string]any{"pairs": []any{[]any{"a"}, []any{"b", "2"}}}
	got := Match{}.Validate(context.Background(), spec, answer, 4, nil)
	if got.Verdict != model.VerdictIncorrect {
		t.Errorf("verdict = %v, want incorrect", got.Verdict)
	}
	if got.AwardedMarks != 2 {
		t.Errorf("awardedMarks = %v, want 2", got.AwardedMarks)
	}
}
