package validator

import (
	"context"
	"testing"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
)

func TestChoice(t *testing.T) {
	spec := map[string]any{"answerIndex": 2.0}

	tests := []struct {
		name      string
		answer    map[string]any
		wantV     model.Verdict
		wantMarks float64
	}{
		{"correct index", map[string]any{"answerIndex": 2.0}, model.VerdictCorrect, 4},
		{"wrong index", map[string]any{"answerIndex": 1.0}, model.VerdictIncorrect, 0},
		{"unanswered sentinel", map[string]any{"answerIndex": -1.0}, model.VerdictIncorrect, 0},
		{"missing field", map[string]any{}, model.VerdictIncorrect, 0},
		{"non-numeric field", map[string]any{"answerIndex": "two"}, model.VerdictIncorrect, 0},
		{"numeric string", map[string]any{"answerIndex": "2"}, model.VerdictCorrect, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Choice{}.Validate(context.Background(), spec, tt.answer, 4, nil)
			if got.Verdict != tt.wantV {
				t.Errorf("verdict = %v, want %v", got.Verdict, tt.wantV)
			}
			if got.AwardedMarks != tt.wantMarks {
				t.Errorf("awardedMarks = %v, want %v", got.AwardedMarks, tt.wantMarks)
			}
		})
	}
}

func TestChoiceMissingSpecIndex(t *testing.T) {
	got := Choice{}.Validate(context.Background(), map[string]any{}, map[string]any{"answerIndex": 0.0}, 4, nil)
	if got.Verdict != model.VerdictIncorrect || got.AwardedMarks != 0 {
		t.Errorf("missing spec answerIndex should grade incorrect, got %+v", got)
	}
}

// Choice awards are all-or-nothing regardless of totalMarks.
func TestChoiceNeverPartial(t *testing.T) {
	spec := map[string]any{"answerIndex": 1.0}
	for _, idx := range []float64{0, 1, 2, 3} {
		got := Choice{}.Validate(context.Background(), spec, map[string]any{"answerIndex": idx}, 7, nil)
		if got.AwardedMarks != 0 && got.AwardedMarks != 7 {
			t.Fatalf("partial award %v for index %v", got.AwardedMarks, idx)
		}
	}
}
