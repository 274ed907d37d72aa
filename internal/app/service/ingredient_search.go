package service

import (
	"strings"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
)

// MatchMode is how a search term is compared against a field value.
type MatchMode string

const (
	MatchPrefix MatchMode = "prefix"
	MatchExact  MatchMode = "exact"
)

// SearchField pairs a field accessor with a match mode. The order of
// fields passed to SearchIngredients is part of the contract.
type SearchField struct {
	Value func(model.Ingredient) string
	Mode  MatchMode
}

// DefaultIngredientSearchFields searches the name by prefix first,
// then by exact match, so prefix hits surface before exact hits for
// the same term.
func DefaultIngredientSearchFields() []SearchField {
	name := func(ing model.Ingredient) string { return ing.Name }
	return []SearchField{
		{Value: name, Mode: MatchPrefix},
		{Value: name, Mode: MatchExact},
	}
}

// SearchIngredients returns the candidates matching the terms, ordered
// term-major then field-major: for each term in input order, for each
// (field, mode) pair in declared order, matches are appended unless the
// ingredient is already in the result. Matching is case-insensitive.
// Empty terms or fields return the candidates unchanged.
func SearchIngredients(candidates []model.Ingredient, terms []string, fields []SearchField) []model.Ingredient {
	if len(terms) == 0 || len(fields) == 0 {
		return candidates
	}

	result := make([]model.Ingredient, 0, len(candidates))
	seen := make(map[uint]bool, len(candidates))

	for _, term := range terms {
		loweredTerm := strings.ToLower(term)
		for _, field := range fields {
			for _, candidate := range candidates {
				if seen[candidate.ID] {
					continue
				}
				if matches(strings.ToLower(field.Value(candidate)), loweredTerm, field.Mode) {
					result = append(result, candidate)
					seen[candidate.ID] = true
				}
			}
		}
	}

	return result
}

func matches(value, term string, mode MatchMode) bool {
	switch mode {
	case MatchPrefix:
		return strings.HasPrefix(value, term)
	case MatchExact:
		return value == term
	}
	return false
}
