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

// AuthHandler serves the home page and the signup/login/logout flow.
type AuthHandler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/signup", h.ShowSignup)
	r.POST("/signup", h.Signup)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}

func (h *AuthHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "homepage.html", nil)
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{"Form": types.SignupForm{}})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form types.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "signup.html", gin.H{"Form": form, "Error": err.Error()})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), form)
	if err != nil {
		sess := session.FromContext(c)
		var apiErr *spoonacular.APIError
		switch {
		case errors.Is(err, service.ErrDuplicateUser):
			sess.Flash(session.FlashDanger, "Username already taken. Please try another.")
			render(c, http.StatusOK, "signup.html", gin.H{"Form": form})
		case errors.As(err, &apiErr):
			h.log.Warn("signup registration call failed", "error", err)
			sess.Flash(session.FlashDanger, msgServiceUnavailable)
			render(c, http.StatusBadGateway, "signup.html", gin.H{"Form": form})
		default:
			h.log.Error("signup failed", "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	session.FromContext(c).Login(user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Form": types.LoginForm{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form types.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "login.html", gin.H{"Form": form, "Error": err.Error()})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		sess := session.FromContext(c)
		if errors.Is(err, service.ErrInvalidCredentials) {
			sess.Flash(session.FlashDanger, "Invalid credentials. Please try again if you have already signed up. Otherwise please click the signup button to join.")
			render(c, http.StatusOK, "login.html", gin.H{"Form": form})
			return
		}
		h.log.Error("login failed", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	sess := session.FromContext(c)
	sess.Login(user.ID)
	sess.Flash(session.FlashSuccess, fmt.Sprintf("Hello, %s!", user.Username))
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := session.FromContext(c)
	sess.Logout()
	sess.Flash(session.FlashSuccess, "You have been logged out. Log back in below to access all of the features.")
	c.Redirect(http.StatusFound, "/login")
}
