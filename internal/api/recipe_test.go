package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridgeraiders/backend/internal/session"
)

func searchStub(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/recipes/complexSearch"):
		w.Write([]byte(`{"results":[{"id":11,"title":"Minestrone"},{"id":12,"title":"Risotto"}]}`))
	case strings.HasPrefix(r.URL.Path, "/recipes/findByIngredients"):
		w.Write([]byte(`[{"id":21,"title":"Apple Crumble","usedIngredientCount":2,"missedIngredientCount":0}]`))
	case strings.HasSuffix(r.URL.Path, "/information"):
		w.Write([]byte(`{"id":11,"title":"Minestrone","readyInMinutes":40,"servings":4,"extendedIngredients":[{"id":1,"name":"beans","original":"200g beans"}]}`))
	case strings.HasSuffix(r.URL.Path, "/similar"):
		w.Write([]byte(`[{"id":31,"title":"Ribollita"}]`))
	case strings.Contains(r.URL.Path, "/substitutes"):
		w.Write([]byte(`{"ingredient":"butter","substitutes":["margarine"],"message":""}`))
	default:
		w.Write([]byte(`{}`))
	}
}

func TestSearchCachesResultsAndRedirects(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(postForm("/recipes/search", url.Values{
		"cuisine": {"italian"},
		"number":  {"5"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	data := env.sessionData(t, cookie)
	assert.Contains(t, string(data.Recipes), "Minestrone")
}

func TestSearchRejectsUnknownCuisine(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(postForm("/recipes/search", url.Values{
		"cuisine": {"martian"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes/search", w.Header().Get("Location"))
	assert.Zero(t, env.calls(), "invalid input must not reach the external API")
}

func TestSearchResultsWithoutSearchRedirects(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(httptest.NewRequest(http.MethodGet, "/recipes", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes/search", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	data := env.sessionData(t, cookie)
	require.Len(t, data.Flashes, 1)
	assert.Contains(t, data.Flashes[0].Message, "no recipes were found")
}

func TestSearchResultsRendersCachedRecipes(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(postForm("/recipes/search", url.Values{"cuisine": {"italian"}}))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.AddCookie(cookie)
	w = env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Minestrone")
	assert.Contains(t, w.Body.String(), "Risotto")
}

func TestSearchSaveFlagStoresPreferences(t *testing.T) {
	env := setupEnv(t, searchStub)
	user := env.createUser(t, "alice")
	cookie := env.loginAs(t, user)

	w := env.do(postForm("/recipes/search", url.Values{
		"cuisine": {"italian"},
		"save":    {"true"},
	}, cookie))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes", w.Header().Get("Location"))

	// Second save is a conflict: flash and back to the form.
	w = env.do(postForm("/recipes/search", url.Values{
		"cuisine": {"thai"},
		"save":    {"true"},
	}, cookie))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes/search", w.Header().Get("Location"))

	data := env.sessionData(t, cookie)
	require.NotEmpty(t, data.Flashes)
	assert.Contains(t, data.Flashes[len(data.Flashes)-1].Message, "already been saved")
}

func TestByIngredientsRequiresLogin(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(httptest.NewRequest(http.MethodGet, "/recipes/byIngredients", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes/search", w.Header().Get("Location"))
	assert.Zero(t, env.calls())
}

func TestByIngredientsSearchFlow(t *testing.T) {
	env := setupEnv(t, searchStub)
	user := env.createUser(t, "bob")
	cookie := env.loginAs(t, user)

	w := env.do(postForm("/recipes/byIngredients", url.Values{
		"ingredients": {"apples,flour,sugar"},
		"ranking":     {"2"},
	}, cookie))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes/results", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/recipes/results", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Apple Crumble")
}

func TestRecipeDetail(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(httptest.NewRequest(http.MethodGet, "/recipes/11", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Minestrone")
	assert.Contains(t, w.Body.String(), "200g beans")
}

func TestRecipeDetailUnknownID(t *testing.T) {
	env := setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := env.do(httptest.NewRequest(http.MethodGet, "/recipes/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeDetailBadID(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(httptest.NewRequest(http.MethodGet, "/recipes/not-a-number", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, env.calls())
}

func TestSimilarRecipes(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(httptest.NewRequest(http.MethodGet, "/recipes/11/similar", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ribollita")
}

func TestIngredientSubstitutes(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(httptest.NewRequest(http.MethodGet, "/ingredient/5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "margarine")
}

func TestSaveRecipeRequiresLogin(t *testing.T) {
	env := setupEnv(t, searchStub)

	w := env.do(postForm("/recipes/11/saved", url.Values{}))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSaveAndFavouriteFlow(t *testing.T) {
	env := setupEnv(t, searchStub)
	user := env.createUser(t, "carol")
	cookie := env.loginAs(t, user)

	w := env.do(postForm("/recipes/11/saved", url.Values{}, cookie))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/saved-recipes")

	w = env.do(postForm("/recipes/11/favourite", url.Values{}, cookie))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/favourite-recipes")

	req := httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Minestrone")
}

func TestEmptySavedListRedirectsWithFlash(t *testing.T) {
	env := setupEnv(t, searchStub)
	user := env.createUser(t, "dave")
	cookie := env.loginAs(t, user)

	req := httptest.NewRequest(http.MethodGet, "/user/"+itoa(user.ID)+"/saved-recipes", nil)
	req.AddCookie(cookie)
	w := env.do(req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	data := env.sessionData(t, cookie)
	require.Len(t, data.Flashes, 1)
	assert.Equal(t, session.FlashInfo, data.Flashes[0].Level)
	assert.Contains(t, data.Flashes[0].Message, "No recipes currently saved")
	assert.Zero(t, env.calls(), "empty list must not trigger detail lookups")
}

func TestSavedListRejectsOtherUsers(t *testing.T) {
	env := setupEnv(t, searchStub)
	owner := env.createUser(t, "erin")
	intruder := env.createUser(t, "frank")
	cookie := env.loginAs(t, intruder)

	req := httptest.NewRequest(http.MethodGet, "/user/"+itoa(owner.ID)+"/saved-recipes", nil)
	req.AddCookie(cookie)
	w := env.do(req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Zero(t, env.calls(), "rejected requests must not reach the external API")
}
