// Package types holds the form payloads bound from requests and the search
// filter set shared between the search flow and stored preferences.
package types

import (
	"fmt"
)

// Fixed enumerations accepted by the Spoonacular complex search endpoint.
var (
	Cuisines = []string{
		"african", "american", "british", "cajun", "caribbean", "chinese",
		"eastern european", "european", "french", "german", "greek", "indian",
		"irish", "italian", "japanese", "jewish", "korean", "latin american",
		"mediterranean", "mexican", "middle eastern", "nordic", "southern",
		"spanish", "thai", "vietnamese",
	}

	Diets = []string{
		"gluten free", "ketogenic", "vegetarian", "lacto-vegetarian",
		"ovo-vegetarian", "pescetarian", "paleo", "primal", "low FODMAP",
		"Whole30",
	}

	Intolerances = []string{
		"dairy", "egg", "gluten", "grain", "peanut", "seafood", "sesame",
		"shellfish", "soy", "sulfite", "tree nut", "wheat",
	}
)

// SignupForm is the registration payload.
type SignupForm struct {
	Username  string `form:"username" binding:"required"`
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	ImageURL  string `form:"image_url" binding:"omitempty,url"`
	Password  string `form:"password" binding:"required"`
}

// LoginForm is the credentials payload.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// UpdateUserForm edits profile fields in place. Password changes are not
// part of the profile screen.
type UpdateUserForm struct {
	Username  string `form:"username" binding:"required"`
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	ImageURL  string `form:"image_url" binding:"omitempty,url"`
}

// SearchFilters is the filter set for a complex search. The json tags match
// the Spoonacular query parameter names; the same shape is persisted as a
// user's preference payload.
type SearchFilters struct {
	Cuisine            []string `form:"cuisine" json:"cuisine,omitempty"`
	Diet               []string `form:"diet" json:"diet,omitempty"`
	Intolerances       []string `form:"intolerances" json:"intolerances,omitempty"`
	IncludeIngredients string   `form:"includeIngredients" json:"includeIngredients,omitempty"`
	ExcludeIngredients string   `form:"excludeIngredients" json:"excludeIngredients,omitempty"`
	MaxReadyTime       int      `form:"maxReadyTime" json:"maxReadyTime,omitempty" binding:"omitempty,gte=0,lte=180"`
	Number             int      `form:"number" json:"number,omitempty" binding:"omitempty,gte=1,lte=100"`
}

// IsZero reports whether no filter field is set.
func (f SearchFilters) IsZero() bool {
	return len(f.Cuisine) == 0 && len(f.Diet) == 0 && len(f.Intolerances) == 0 &&
		f.IncludeIngredients == "" && f.ExcludeIngredients == "" &&
		f.MaxReadyTime == 0 && f.Number == 0
}

// Validate checks the multi-select fields against their enumerations. The
// values contain spaces, so validator oneof tags cannot express them.
func (f SearchFilters) Validate() error {
	if err := checkChoices("cuisine", f.Cuisine, Cuisines); err != nil {
		return err
	}
	if err := checkChoices("diet", f.Diet, Diets); err != nil {
		return err
	}
	return checkChoices("intolerances", f.Intolerances, Intolerances)
}

func checkChoices(field string, values, allowed []string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	for _, v := range values {
		if _, ok := set[v]; !ok {
			return fmt.Errorf("%s: %q is not a valid choice", field, v)
		}
	}
	return nil
}

// ComplexSearchForm is the general search payload: filters plus the
// save-these-as-my-preferences flag.
type ComplexSearchForm struct {
	SearchFilters
	Save bool `form:"save"`
}

// Rankings for the find-by-ingredients endpoint.
const (
	RankMaximizeUsed   = 1
	RankMinimizeMissed = 2
)

// ByIngredientsForm is the "what's in your fridge" payload.
type ByIngredientsForm struct {
	Ingredients string `form:"ingredients" binding:"required"`
	Ranking     int    `form:"ranking" binding:"omitempty,oneof=1 2"`
}

// UpdatePreferencesForm edits the stored filter set from the profile area.
type UpdatePreferencesForm struct {
	SearchFilters
}
