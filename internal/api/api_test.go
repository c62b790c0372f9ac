package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/api"
	"github.com/fridgeraiders/backend/internal/logger"
	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/router"
	"github.com/fridgeraiders/backend/internal/service"
	"github.com/fridgeraiders/backend/internal/session"
	"github.com/fridgeraiders/backend/internal/spoonacular"
	"github.com/fridgeraiders/backend/internal/testhelpers"
)

const templatesGlob = "../../web/templates/*.html"

// testEnv wires a full engine against an in-memory database, an in-memory
// session store, and a stubbed external API that counts its calls.
type testEnv struct {
	db       *gorm.DB
	store    *session.MemoryStore
	engine   *gin.Engine
	apiCalls *int32
}

// setupEnv builds the environment. The stub handler may be nil, in which
// case every external call returns an empty 200.
func setupEnv(t *testing.T, stub http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var calls int32
	if stub == nil {
		stub = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		stub(w, r)
	}))
	t.Cleanup(srv.Close)

	db := testhelpers.SetupTestDatabase(t)
	store := session.NewMemoryStore()
	log := logger.NewNop()

	sessions := session.NewManager(store, time.Hour, log)
	spoon := spoonacular.New("test-key", log, spoonacular.WithBaseURL(srv.URL))

	authService := service.NewAuthService(db, spoon)
	recipeService := service.NewRecipeService(db)
	prefService := service.NewPreferenceService(db)
	profileService := service.NewProfileService(db)

	engine := router.Setup(templatesGlob, db, sessions, router.Handlers{
		Auth:     api.NewAuthHandler(authService, log),
		Recipe:   api.NewRecipeHandler(recipeService, prefService, spoon, log),
		Profile:  api.NewProfileHandler(profileService, prefService, log),
		Shopping: api.NewShoppingHandler(spoon, log),
		Health:   api.NewHealthHandler(db, nil),
	})

	return &testEnv{db: db, store: store, engine: engine, apiCalls: &calls}
}

func (e *testEnv) calls() int32 {
	return atomic.LoadInt32(e.apiCalls)
}

// createUser inserts a user row directly.
func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@example.com",
		ImageURL:     models.DefaultImageURL,
		PasswordHash: "hash",
		APIUsername:  "sp-" + username,
		APIHash:      "sp-hash",
	}
	require.NoError(t, e.db.Create(&user).Error)
	return &user
}

// loginAs seeds a session for the user and returns the cookie to send.
func (e *testEnv) loginAs(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	id := "sess-" + user.Username
	data := &session.Data{}
	data.Login(user.ID)
	require.NoError(t, e.store.Set(context.Background(), id, data, time.Hour))
	return &http.Cookie{Name: session.CookieName, Value: id}
}

// sessionData reads back a session by cookie.
func (e *testEnv) sessionData(t *testing.T, cookie *http.Cookie) *session.Data {
	t.Helper()
	data, err := e.store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, data)
	return data
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
