package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fridgeraiders/backend/internal/logger"
	"github.com/fridgeraiders/backend/internal/service"
	"github.com/fridgeraiders/backend/internal/session"
	"github.com/fridgeraiders/backend/internal/spoonacular"
	"github.com/fridgeraiders/backend/internal/types"
)

const msgNoResults = "Sorry, no recipes were found that match your search criteria. Please ammend your search and try again."

// RecipeHandler covers the search flows, recipe detail pages, and the
// per-user saved/favourite lists.
type RecipeHandler struct {
	recipes *service.RecipeService
	prefs   *service.PreferenceService
	spoon   *spoonacular.Client
	log     *logger.Logger
}

func NewRecipeHandler(recipes *service.RecipeService, prefs *service.PreferenceService, spoon *spoonacular.Client, log *logger.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, prefs: prefs, spoon: spoon, log: log}
}

func (h *RecipeHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/recipes/search", h.ShowSearch)
	r.POST("/recipes/search", h.Search)
	r.GET("/recipes", h.SearchResults)
	r.GET("/recipes/byIngredients", h.ShowByIngredients)
	r.POST("/recipes/byIngredients", h.SearchByIngredients)
	r.GET("/recipes/results", h.IngredientResults)
	r.GET("/recipes/:id", h.Detail)
	r.GET("/recipes/:id/similar", h.Similar)
	r.GET("/ingredient/:id", h.Substitutes)
	r.POST("/recipes/:id/saved", h.SaveRecipe)
	r.POST("/recipes/:id/favourite", h.AddFavourite)
	r.POST("/recipes/:id/favourite/remove", h.RemoveFavourite)
	r.GET("/user/:id/saved-recipes", h.SavedRecipes)
	r.GET("/user/:id/favourite-recipes", h.FavouriteRecipes)
}

func (h *RecipeHandler) ShowSearch(c *gin.Context) {
	render(c, http.StatusOK, "complex_search.html", gin.H{
		"Cuisines":     types.Cuisines,
		"Diets":        types.Diets,
		"Intolerances": types.Intolerances,
	})
}

// Search runs a complex search, caches the results in the session and
// redirects to the results page. The save flag additionally stores the
// submitted filters as the user's preferences.
func (h *RecipeHandler) Search(c *gin.Context) {
	var form types.ComplexSearchForm
	if err := c.ShouldBind(&form); err != nil {
		session.FromContext(c).Flash(session.FlashDanger, err.Error())
		c.Redirect(http.StatusFound, "/recipes/search")
		return
	}
	if err := form.Validate(); err != nil {
		session.FromContext(c).Flash(session.FlashDanger, err.Error())
		c.Redirect(http.StatusFound, "/recipes/search")
		return
	}

	recipes, err := h.spoon.ComplexSearch(c.Request.Context(), spoonacular.BuildQuery(form.SearchFilters))
	if err != nil {
		h.log.Warn("complex search failed", "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
		c.Redirect(http.StatusFound, "/recipes/search")
		return
	}
	cacheRecipes(c, recipes)

	if form.Save {
		user, ok := session.CurrentUser(c)
		if !ok {
			session.FromContext(c).Flash(session.FlashDanger, msgLoginRequired)
			c.Redirect(http.StatusFound, "/recipes/search")
			return
		}
		if err := h.prefs.Create(c.Request.Context(), user.ID, form.SearchFilters); err != nil {
			if errors.Is(err, service.ErrPreferencesExist) {
				session.FromContext(c).Flash(session.FlashDanger, "Preferences have already been saved. Please visit your profile page to update them.")
				c.Redirect(http.StatusFound, "/recipes/search")
				return
			}
			h.log.Error("saving preferences failed", "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	c.Redirect(http.StatusFound, "/recipes")
}

func (h *RecipeHandler) SearchResults(c *gin.Context) {
	recipes := cachedRecipes(c)
	if len(recipes) == 0 {
		session.FromContext(c).Flash(session.FlashInfo, msgNoResults)
		c.Redirect(http.StatusFound, "/recipes/search")
		return
	}
	render(c, http.StatusOK, "recipes.html", gin.H{"Recipes": recipes})
}

func (h *RecipeHandler) ShowByIngredients(c *gin.Context) {
	if _, ok := requireUser(c, "/recipes/search"); !ok {
		return
	}
	render(c, http.StatusOK, "by_ingredients.html", nil)
}

func (h *RecipeHandler) SearchByIngredients(c *gin.Context) {
	if _, ok := requireUser(c, "/recipes/search"); !ok {
		return
	}

	var form types.ByIngredientsForm
	if err := c.ShouldBind(&form); err != nil {
		session.FromContext(c).Flash(session.FlashDanger, err.Error())
		c.Redirect(http.StatusFound, "/recipes/byIngredients")
		return
	}
	if form.Ranking == 0 {
		form.Ranking = types.RankMaximizeUsed
	}

	recipes, err := h.spoon.FindByIngredients(c.Request.Context(), spoonacular.BuildIngredientsQuery(form.Ingredients, form.Ranking))
	if err != nil {
		h.log.Warn("ingredient search failed", "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
		c.Redirect(http.StatusFound, "/recipes/byIngredients")
		return
	}
	cacheRecipes(c, recipes)

	c.Redirect(http.StatusFound, "/recipes/results")
}

func (h *RecipeHandler) IngredientResults(c *gin.Context) {
	recipes := cachedRecipes(c)
	if len(recipes) == 0 {
		session.FromContext(c).Flash(session.FlashInfo, msgNoResults)
		c.Redirect(http.StatusFound, "/recipes/byIngredients")
		return
	}
	render(c, http.StatusOK, "ingredient_results.html", gin.H{"Recipes": recipes})
}

func (h *RecipeHandler) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	info, err := h.spoon.RecipeInformation(c.Request.Context(), id)
	if err != nil {
		var apiErr *spoonacular.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.log.Warn("recipe detail failed", "id", id, "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
		c.Redirect(http.StatusFound, "/recipes/search")
		return
	}

	saved := false
	if user, ok := session.CurrentUser(c); ok {
		rows, err := h.recipes.ListByUser(c.Request.Context(), user.ID)
		if err != nil {
			h.log.Error("listing saved recipes failed", "error", err)
		} else {
			for _, rid := range service.RecipeIDs(rows) {
				if rid == id {
					saved = true
					break
				}
			}
		}
	}

	render(c, http.StatusOK, "recipe_detail.html", gin.H{"Recipe": info, "Saved": saved})
}

func (h *RecipeHandler) Similar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipes, err := h.spoon.SimilarRecipes(c.Request.Context(), id)
	if err != nil {
		h.log.Warn("similar recipes failed", "id", id, "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
		c.Redirect(http.StatusFound, fmt.Sprintf("/recipes/%d", id))
		return
	}
	if len(recipes) == 0 {
		session.FromContext(c).Flash(session.FlashInfo, msgNoResults)
		c.Redirect(http.StatusFound, fmt.Sprintf("/recipes/%d", id))
		return
	}
	render(c, http.StatusOK, "recipes.html", gin.H{"Recipes": recipes})
}

func (h *RecipeHandler) Substitutes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	subs, err := h.spoon.IngredientSubstitutes(c.Request.Context(), id)
	if err != nil {
		h.log.Warn("ingredient substitutes failed", "id", id, "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
		c.Redirect(http.StatusFound, "/recipes/search")
		return
	}
	render(c, http.StatusOK, "substitutes.html", gin.H{"Substitutes": subs})
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	user, ok := requireUser(c, "/login")
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipes.Save(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrRecipeAlreadySaved) {
			session.FromContext(c).Flash(session.FlashInfo, "That recipe is already in your saved list.")
		} else {
			h.log.Error("saving recipe failed", "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d/saved-recipes", user.ID))
}

func (h *RecipeHandler) AddFavourite(c *gin.Context) {
	h.setFavourite(c, true)
}

func (h *RecipeHandler) RemoveFavourite(c *gin.Context) {
	h.setFavourite(c, false)
}

func (h *RecipeHandler) setFavourite(c *gin.Context, favourite bool) {
	user, ok := requireUser(c, "/login")
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.recipes.SetFavourite(c.Request.Context(), id, favourite); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.log.Error("updating favourite failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d/favourite-recipes", user.ID))
}

func (h *RecipeHandler) SavedRecipes(c *gin.Context) {
	h.listRecipes(c, false)
}

func (h *RecipeHandler) FavouriteRecipes(c *gin.Context) {
	h.listRecipes(c, true)
}

// savedRecipeView pairs the external detail payload with the local
// favourite flag for the list templates.
type savedRecipeView struct {
	Info      *spoonacular.RecipeInfo
	Favourite bool
}

// listRecipes renders the saved or favourite list. Details come from one
// information call per saved row.
func (h *RecipeHandler) listRecipes(c *gin.Context, favouritesOnly bool) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}

	list := h.recipes.ListByUser
	if favouritesOnly {
		list = h.recipes.ListFavourites
	}
	rows, err := list(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("listing recipes failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if len(rows) == 0 {
		msg := "No recipes currently saved."
		if favouritesOnly {
			msg = "No recipes currently in favourites."
		}
		session.FromContext(c).Flash(session.FlashInfo, msg)
		c.Redirect(http.StatusFound, "/")
		return
	}

	views := make([]savedRecipeView, 0, len(rows))
	for _, row := range rows {
		info, err := h.spoon.RecipeInformation(c.Request.Context(), row.RecipeID)
		if err != nil {
			h.log.Warn("recipe lookup failed", "id", row.RecipeID, "error", err)
			session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
			c.Redirect(http.StatusFound, "/")
			return
		}
		views = append(views, savedRecipeView{Info: info, Favourite: row.Favourite})
	}

	render(c, http.StatusOK, "saved_recipes.html", gin.H{
		"Recipes":    views,
		"Favourites": favouritesOnly,
	})
}
