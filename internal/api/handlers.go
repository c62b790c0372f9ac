// Package api contains the route handlers. Every handler follows the same
// shape: authentication check, form validation, store and/or external API
// work, then a render or redirect. Errors stay local to the handler.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/session"
	"github.com/fridgeraiders/backend/internal/spoonacular"
)

const (
	msgLoginRequired      = "Unauthorized access. Please login."
	msgOwnerOnly          = "Unauthorized access. Please login or view your own profile."
	msgServiceUnavailable = "The recipe service is unavailable right now. Please try again later."
)

// render executes a template with the pending flash messages and the
// current user injected alongside the handler's own data.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	sess := session.FromContext(c)
	data["Flashes"] = sess.PopFlashes()
	if user, ok := session.CurrentUser(c); ok {
		data["User"] = user
	}
	c.HTML(status, name, data)
}

// requireUser redirects anonymous callers away with a warning.
func requireUser(c *gin.Context, redirectTo string) (*models.User, bool) {
	user, ok := session.CurrentUser(c)
	if !ok {
		session.FromContext(c).Flash(session.FlashDanger, msgLoginRequired)
		c.Redirect(http.StatusFound, redirectTo)
		return nil, false
	}
	return user, true
}

// requireOwner rejects unless the authenticated user's id equals the path's
// user id. Anonymous and mismatched callers get the same treatment and
// never reach the store or the external API.
func requireOwner(c *gin.Context) (*models.User, bool) {
	user, ok := session.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if !ok || err != nil || user.ID != uint(id) {
		session.FromContext(c).Flash(session.FlashDanger, msgOwnerOnly)
		c.Redirect(http.StatusFound, "/")
		return nil, false
	}
	return user, true
}

// cacheRecipes stores search results in the session for the results view.
func cacheRecipes(c *gin.Context, recipes []spoonacular.Recipe) {
	raw, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	session.FromContext(c).SetRecipes(raw)
}

// cachedRecipes reads back the session's search results. An absent key, an
// empty list, and an undecodable payload are all the one "no results yet"
// case.
func cachedRecipes(c *gin.Context) []spoonacular.Recipe {
	raw := session.FromContext(c).Recipes
	if len(raw) == 0 {
		return nil
	}
	var recipes []spoonacular.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil
	}
	return recipes
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}
