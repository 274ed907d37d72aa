package service

import (
	"testing"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func searchCatalog() []model.Ingredient {
	return []model.Ingredient{
		{ID: 1, Name: "salt", MeasurementUnit: "g"},
		{ID: 2, Name: "salted butter", MeasurementUnit: "g"},
		{ID: 3, Name: "sea salt", MeasurementUnit: "g"},
		{ID: 4, Name: "sugar", MeasurementUnit: "g"},
		{ID: 5, Name: "Salmon fillet", MeasurementUnit: "g"},
	}
}

func names(ingredients []model.Ingredient) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, ing.Name)
	}
	return out
}

func TestSearchIngredients_EmptyTermsReturnsAll(t *testing.T) {
	catalog := searchCatalog()

	result := SearchIngredients(catalog, nil, DefaultIngredientSearchFields())
	assert.Equal(t, catalog, result)

	result = SearchIngredients(catalog, []string{}, DefaultIngredientSearchFields())
	assert.Equal(t, catalog, result)
}

func TestSearchIngredients_EmptyFieldsReturnsAll(t *testing.T) {
	catalog := searchCatalog()

	result := SearchIngredients(catalog, []string{"salt"}, nil)
	assert.Equal(t, catalog, result)
}

func TestSearchIngredients_PrefixMatching(t *testing.T) {
	result := SearchIngredients(searchCatalog(), []string{"sal"}, DefaultIngredientSearchFields())

	assert.Equal(t, []string{"salt", "salted butter", "Salmon fillet"}, names(result))
}

func TestSearchIngredients_CaseInsensitive(t *testing.T) {
	result := SearchIngredients(searchCatalog(), []string{"SALT"}, DefaultIngredientSearchFields())

	assert.Equal(t, []string{"salt", "salted butter"}, names(result))
}

func TestSearchIngredients_NoDuplicatesAcrossModes(t *testing.T) {
	// "salt" matches by prefix and exactly; the exact pass must not
	// append it again.
	result := SearchIngredients(searchCatalog(), []string{"salt"}, DefaultIngredientSearchFields())

	assert.Equal(t, []string{"salt", "salted butter"}, names(result))
}

func TestSearchIngredients_TermMajorOrdering(t *testing.T) {
	// All matches for the first term come before any match for the
	// second, regardless of catalog position.
	result := SearchIngredients(searchCatalog(), []string{"sug", "sal"}, DefaultIngredientSearchFields())

	assert.Equal(t, []string{"sugar", "salt", "salted butter", "Salmon fillet"}, names(result))
}

func TestSearchIngredients_NoDuplicatesAcrossTerms(t *testing.T) {
	result := SearchIngredients(searchCatalog(), []string{"salt", "salted"}, DefaultIngredientSearchFields())

	assert.Equal(t, []string{"salt", "salted butter"}, names(result))
}

func TestSearchIngredients_NoMatches(t *testing.T) {
	result := SearchIngredients(searchCatalog(), []string{"pepper"}, DefaultIngredientSearchFields())

	assert.Empty(t, result)
}

func TestSearchIngredients_ModeOrderWithinTerm(t *testing.T) {
	// A custom field list with exact before prefix changes the order
	// within a term: exact hits surface first.
	name := func(ing model.Ingredient) string { return ing.Name }
	fields := []SearchField{
		{Value: name, Mode: MatchExact},
		{Value: name, Mode: MatchPrefix},
	}

	catalog := []model.Ingredient{
		{ID: 1, Name: "salted butter"},
		{ID: 2, Name: "salt"},
	}

	result := SearchIngredients(catalog, []string{"salt"}, fields)
	assert.Equal(t, []string{"salt", "salted butter"}, names(result))
}
