package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fridgeraiders/backend/internal/logger"
	"github.com/fridgeraiders/backend/internal/service"
	"github.com/fridgeraiders/backend/internal/session"
	"github.com/fridgeraiders/backend/internal/types"
)

// ProfileHandler serves the profile page and its edit forms.
type ProfileHandler struct {
	profile *service.ProfileService
	prefs   *service.PreferenceService
	log     *logger.Logger
}

func NewProfileHandler(profile *service.ProfileService, prefs *service.PreferenceService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, prefs: prefs, log: log}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/user/:id", h.Show)
	r.GET("/user/:id/update", h.ShowUpdate)
	r.POST("/user/:id/update", h.Update)
	r.GET("/user/:id/delete", h.Delete)
	r.GET("/user/:id/preferences", h.ShowPreferences)
	r.POST("/user/:id/preferences", h.UpdatePreferences)
}

func (h *ProfileHandler) Show(c *gin.Context) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}

	prefs, err := h.prefs.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("loading preferences failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	render(c, http.StatusOK, "profile.html", gin.H{
		"Profile":     user,
		"Preferences": prefs,
	})
}

func (h *ProfileHandler) ShowUpdate(c *gin.Context) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}
	form := types.UpdateUserForm{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		ImageURL:  user.ImageURL,
	}
	render(c, http.StatusOK, "update_user.html", gin.H{"Form": form})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}

	var form types.UpdateUserForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "update_user.html", gin.H{"Form": form, "Error": err.Error()})
		return
	}

	if _, err := h.profile.UpdateUser(c.Request.Context(), user.ID, form); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			session.FromContext(c).Flash(session.FlashDanger, "Username already taken. Please try another.")
			render(c, http.StatusOK, "update_user.html", gin.H{"Form": form})
			return
		}
		h.log.Error("updating profile failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.FromContext(c).Flash(session.FlashSuccess, "Profile updated.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d", user.ID))
}

// Delete removes the account and everything hanging off it, then ends the
// session.
func (h *ProfileHandler) Delete(c *gin.Context) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}

	if err := h.profile.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.log.Error("deleting user failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	sess := session.FromContext(c)
	sess.Logout()
	sess.Flash(session.FlashSuccess, "Your account has been deleted.")
	c.Redirect(http.StatusFound, "/")
}

func (h *ProfileHandler) ShowPreferences(c *gin.Context) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}

	prefs, err := h.prefs.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("loading preferences failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if prefs == nil {
		prefs = &types.SearchFilters{}
	}

	render(c, http.StatusOK, "update_preferences.html", gin.H{
		"Filters":      prefs,
		"Cuisines":     types.Cuisines,
		"Diets":        types.Diets,
		"Intolerances": types.Intolerances,
	})
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	user, ok := requireOwner(c)
	if !ok {
		return
	}

	var form types.UpdatePreferencesForm
	if err := c.ShouldBind(&form); err != nil {
		session.FromContext(c).Flash(session.FlashDanger, err.Error())
		c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d/preferences", user.ID))
		return
	}
	if err := form.Validate(); err != nil {
		session.FromContext(c).Flash(session.FlashDanger, err.Error())
		c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d/preferences", user.ID))
		return
	}

	if err := h.prefs.Update(c.Request.Context(), user.ID, form.SearchFilters); err != nil {
		h.log.Error("updating preferences failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.FromContext(c).Flash(session.FlashSuccess, "Preferences updated.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d", user.ID))
}
