package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/session"
)

func postForm(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestHomePage(t *testing.T) {
	env := setupEnv(t, nil)

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fridge Raiders")
}

func TestSignupLogsUserIn(t *testing.T) {
	env := setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"sp-user","hash":"sp-hash"}`))
	})

	w := env.do(postForm("/signup", url.Values{
		"username":   {"alice"},
		"first_name": {"Alice"},
		"last_name":  {"Smith"},
		"email":      {"alice@example.com"},
		"password":   {"secret"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	data := env.sessionData(t, cookie)
	assert.NotZero(t, data.UserID)

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, "sp-user", user.APIUsername)
}

func TestSignupDuplicateUsernameShowsFlash(t *testing.T) {
	env := setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"sp-user","hash":"sp-hash"}`))
	})
	env.createUser(t, "bob")

	w := env.do(postForm("/signup", url.Values{
		"username":   {"bob"},
		"first_name": {"Bob"},
		"last_name":  {"Jones"},
		"email":      {"new-bob@example.com"},
		"password":   {"secret"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestSignupExternalFailureIsRecoverable(t *testing.T) {
	env := setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	w := env.do(postForm("/signup", url.Values{
		"username":   {"carol"},
		"first_name": {"Carol"},
		"last_name":  {"White"},
		"email":      {"carol@example.com"},
		"password":   {"secret"},
	}))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable right now")

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginWrongCredentialsShowsFlash(t *testing.T) {
	env := setupEnv(t, nil)
	env.createUser(t, "dave")

	w := env.do(postForm("/login", url.Values{
		"username": {"dave"},
		"password": {"not-the-password"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLogoutClearsUserAndFlashes(t *testing.T) {
	env := setupEnv(t, nil)
	user := env.createUser(t, "erin")
	cookie := env.loginAs(t, user)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	w := env.do(req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	data := env.sessionData(t, cookie)
	assert.Zero(t, data.UserID)
	require.Len(t, data.Flashes, 1)
	assert.Contains(t, data.Flashes[0].Message, "logged out")
}
