// Package router assembles the gin engine: global middleware, template
// loading, and the per-handler route registrations.
package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/api"
	"github.com/fridgeraiders/backend/internal/middleware"
	"github.com/fridgeraiders/backend/internal/session"
)

// Handlers collects everything the router wires up.
type Handlers struct {
	Auth     *api.AuthHandler
	Recipe   *api.RecipeHandler
	Profile  *api.ProfileHandler
	Shopping *api.ShoppingHandler
	Health   *api.HealthHandler
}

// Setup builds the engine with all middleware and routes registered.
func Setup(templatesGlob string, db *gorm.DB, sessions *session.Manager, h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(middleware.NoCache())
	r.LoadHTMLGlob(templatesGlob)
	r.Use(sessions.Middleware(db))

	h.Auth.RegisterRoutes(r)
	h.Recipe.RegisterRoutes(r)
	h.Profile.RegisterRoutes(r)
	h.Shopping.RegisterRoutes(r)
	h.Health.RegisterRoutes(r)

	return r
}
