package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fridgeraiders/backend/internal/logger"
	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/session"
	"github.com/fridgeraiders/backend/internal/spoonacular"
)

// ShoppingHandler proxies the remote shopping list. The list itself lives
// with the external API; locally we only hold the per-user credentials.
type ShoppingHandler struct {
	spoon *spoonacular.Client
	log   *logger.Logger
}

func NewShoppingHandler(spoon *spoonacular.Client, log *logger.Logger) *ShoppingHandler {
	return &ShoppingHandler{spoon: spoon, log: log}
}

func (h *ShoppingHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/user/:id/shoppinglist", h.Show)
	r.POST("/shoppinglist/add/:name", h.Add)
	r.POST("/shoppinglist/delete/:id", h.Delete)
}

func apiCredentials(user *models.User) spoonacular.Credentials {
	return spoonacular.Credentials{Username: user.APIUsername, Hash: user.APIHash}
}

func (h *ShoppingHandler) Show(c *gin.Context) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}

	aisles, err := h.spoon.ShoppingList(c.Request.Context(), apiCredentials(user))
	if err != nil {
		h.log.Warn("fetching shopping list failed", "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
		c.Redirect(http.StatusFound, "/")
		return
	}

	render(c, http.StatusOK, "shoppinglist.html", gin.H{"Aisles": aisles})
}

func (h *ShoppingHandler) Add(c *gin.Context) {
	user, ok := requireUser(c, "/")
	if !ok {
		return
	}

	name := c.Param("name")
	if err := h.spoon.AddShoppingListItem(c.Request.Context(), apiCredentials(user), name, true); err != nil {
		h.log.Warn("adding shopping list item failed", "item", name, "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d/shoppinglist", user.ID))
}

func (h *ShoppingHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c, "/")
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.spoon.DeleteShoppingListItem(c.Request.Context(), apiCredentials(user), id); err != nil {
		h.log.Warn("deleting shopping list item failed", "item_id", id, "error", err)
		session.FromContext(c).Flash(session.FlashDanger, msgServiceUnavailable)
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d/shoppinglist", user.ID))
}
