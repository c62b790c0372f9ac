package spoonacular

import (
	"strconv"
	"strings"

	"github.com/fridgeraiders/backend/internal/types"
)

// BuildQuery serializes a filter set into the complexSearch query string.
// Field order is fixed, list values are comma-joined, pairs are joined with
// "&", and values are left verbatim (the API accepts multi-word values).
func BuildQuery(f types.SearchFilters) string {
	var pairs []string
	add := func(key, value string) {
		pairs = append(pairs, key+"="+value)
	}

	if len(f.Cuisine) > 0 {
		add("cuisine", strings.Join(f.Cuisine, ","))
	}
	if len(f.Diet) > 0 {
		add("diet", strings.Join(f.Diet, ","))
	}
	if len(f.Intolerances) > 0 {
		add("intolerances", strings.Join(f.Intolerances, ","))
	}
	if f.IncludeIngredients != "" {
		add("includeIngredients", f.IncludeIngredients)
	}
	if f.ExcludeIngredients != "" {
		add("excludeIngredients", f.ExcludeIngredients)
	}
	if f.MaxReadyTime > 0 {
		add("maxReadyTime", strconv.Itoa(f.MaxReadyTime))
	}
	if f.Number > 0 {
		add("number", strconv.Itoa(f.Number))
	}

	return strings.Join(pairs, "&")
}

// BuildIngredientsQuery serializes a find-by-ingredients request.
func BuildIngredientsQuery(ingredients string, ranking int) string {
	pairs := []string{"ingredients=" + ingredients}
	if ranking > 0 {
		pairs = append(pairs, "ranking="+strconv.Itoa(ranking))
	}
	return strings.Join(pairs, "&")
}
