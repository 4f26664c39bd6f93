package normalize

import (
	"reflect"
	"testing"
)

func TestTypeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphens replaced", "case-study", "case_study"},
		{"already canonical", "fill_blanks", "fill_blanks"},
		{"multiple hyphens", "true-false-extra", "true_false_extra"},
		{"empty passes through", "", ""},
		{"blank passes through", "   ", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeKey(tt.in); got != tt.want {
				t.Errorf("TypeKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello World  ", "hello world"},
		{"MIXED case", "mixed case"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	got := CollapseSpace("  What\t is \n a   Goroutine? ")
	want := "what is a goroutine?"
	if got != want {
		t.Errorf("CollapseSpace = %q, want %q", got, want)
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"float passes", 2.5, 0, 2.5},
		{"int passes", 3, 0, 3},
		{"string parses", "4.5", 0, 4.5},
		{"string with spaces", " 7 ", 0, 7},
		{"bad string falls back", "abc", 1.5, 1.5},
		{"nil falls back", nil, 1, 1},
		{"bool falls back", true, 2, 2},
		{"map falls back", map[string]any{}, 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumeric(tt.in, tt.def); got != tt.want {
				t.Errorf("ParseNumeric(%v, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	m := map[string]any{
		"f":    2.0,
		"s":    "3",
		"bad":  "nope",
		"null": nil,
		"obj":  map[string]any{},
	}
	if v, ok := Number(m, "f"); !ok || v != 2 {
		t.Errorf("Number(f) = %v, %v", v, ok)
	}
	if v, ok := Number(m, "s"); !ok || v != 3 {
		t.Errorf("Number(s) = %v, %v", v, ok)
	}
	for _, key := range []string{"bad", "null", "obj", "missing"} {
		if _, ok := Number(m, key); ok {
			t.Errorf("Number(%s) should not be ok", key)
		}
	}
}

func TestSliceCoercions(t *testing.T) {
	if got := AnySlice(nil); got != nil {
		t.Errorf("AnySlice(nil) = %v, want nil", got)
	}
	if got := AnySlice("x"); !reflect.DeepEqual(got, []any{"x"}) {
		t.Errorf("AnySlice scalar = %v", got)
	}
	if got := StringSlice([]any{"a", 1.0, "b", nil}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("StringSlice = %v", got)
	}
	maps := MapSlice([]any{map[string]any{"k": "v"}, "junk", nil})
	if len(maps) != 1 || maps[0]["k"] != "v" {
		t.Errorf("MapSlice = %v", maps)
	}
	pairs := PairSlice([]any{[]any{"a", "1"}, "junk", []any{"b", "2"}})
	if len(pairs) != 2 || pairs[1][0] != "b" {
		t.Errorf("PairSlice = %v", pairs)
	}
}
