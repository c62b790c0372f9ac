package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/logger"
	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/service"
	"github.com/fridgeraiders/backend/internal/spoonacular"
	"github.com/fridgeraiders/backend/internal/testhelpers"
	"github.com/fridgeraiders/backend/internal/types"
)

func newConnectStub(t *testing.T) *spoonacular.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"sp-user","hash":"sp-hash"}`))
	}))
	t.Cleanup(srv.Close)
	return spoonacular.New("test-key", logger.NewNop(), spoonacular.WithBaseURL(srv.URL))
}

func setupAuthTest(t *testing.T) (*gorm.DB, *service.AuthService) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return db, service.NewAuthService(db, newConnectStub(t))
}

func signupForm(username string) types.SignupForm {
	return types.SignupForm{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		Password:  "secret-password",
	}
}

func TestSignupCreatesUserWithAPICredentials(t *testing.T) {
	db, svc := setupAuthTest(t)

	user, err := svc.Signup(context.Background(), signupForm("alice"))
	require.NoError(t, err)
	assert.Equal(t, "sp-user", user.APIUsername)
	assert.Equal(t, "sp-hash", user.APIHash)
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.NotEqual(t, "secret-password", user.PasswordHash)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignupDuplicateUsernameLeavesOneRow(t *testing.T) {
	db, svc := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), signupForm("bob"))
	require.NoError(t, err)

	form := signupForm("bob")
	form.Email = "other@example.com"
	_, err = svc.Signup(context.Background(), form)
	assert.ErrorIs(t, err, service.ErrDuplicateUser)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignupFailsWhenConnectFails(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	svc := service.NewAuthService(db, spoonacular.New("k", logger.NewNop(), spoonacular.WithBaseURL(srv.URL)))

	_, err := svc.Signup(context.Background(), signupForm("carol"))
	var apiErr *spoonacular.APIError
	assert.ErrorAs(t, err, &apiErr)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "no user row should exist without API credentials")
}

func TestAuthenticate(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), signupForm("dave"))
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "dave", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "dave", user.Username)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), signupForm("erin"))
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "erin", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
