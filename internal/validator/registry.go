package validator

import (
	"github.com/testepapers/test-e-portal-api-service/internal/normalize"
)

// Registry maps normalized question type keys to validator instances. The
// table is built once at construction and never mutated, so lookups are
// safe from any goroutine.
type Registry struct {
	table map[string]Validator
}

// NewRegistry builds the fixed routing table. The subjective validator is
// injected because it carries the scoring dependency; everything else is
// stateless. The case-study validator receives the registry itself as its
// resolver, so nested case studies dispatch through the same table.
func NewRegistry(subjective Validator) *Registry {
	r := &Registry{}
	choice := Choice{}
	caseStudy := NewCaseStudy(r)

	r.table = map[string]Validator{
		"mcq":              choice,
		"true_false":       choice,
		"mcq_codes":        choice,
		"assertion_reason": choice,

		"match":       Match{},
		"fill_blanks": FillBlanks{},
		"sequence":    Sequence{},
		"case_study":  caseStudy,
		"subjective":  subjective,
		"long_answer": subjective,
	}
	return r
}

// Resolve returns the validator for a type key, or nil when the normalized
// key is not registered.
func (r *Registry) Resolve(typeKey string) Validator {
	return r.table[normalize.TypeKey(typeKey)]
}

// Supported reports whether a type key has a registered validator.
func (r *Registry) Supported(typeKey string) bool {
	return r.Resolve(typeKey) != nil
}

// SupportedTypes returns all registered type keys.
func (r *Registry) SupportedTypes() []string {
	keys := make([]string, 0, len(r.table))
	for k := range r.table {
		keys = append(keys, k)
	}
	return keys
}
