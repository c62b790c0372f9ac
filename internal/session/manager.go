package session

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/logger"
	"github.com/fridgeraiders/backend/internal/models"
)

const (
	// CookieName identifies the browser session.
	CookieName = "fridge_session"

	ctxDataKey = "session_data"
	ctxIDKey   = "session_id"
	ctxUserKey = "current_user"
)

// Manager loads sessions around each request and persists mutated ones
// after the handler runs.
type Manager struct {
	store Store
	ttl   time.Duration
	log   *logger.Logger
}

func NewManager(store Store, ttl time.Duration, log *logger.Logger) *Manager {
	return &Manager{store: store, ttl: ttl, log: log}
}

// Middleware resolves the session and, when present, the logged-in user, and
// attaches both to the request context. There is no shared mutable state:
// each request gets its own Data value.
func (m *Manager) Middleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(CookieName, id, int(m.ttl.Seconds()), "/", "", false, true)
		}

		data, err := m.store.Get(c.Request.Context(), id)
		if err != nil {
			m.log.Error("session load failed", "error", err)
			data = nil
		}
		if data == nil {
			data = &Data{}
		}

		c.Set(ctxIDKey, id)
		c.Set(ctxDataKey, data)

		if data.UserID != 0 {
			var user models.User
			if err := db.First(&user, data.UserID).Error; err == nil {
				c.Set(ctxUserKey, &user)
			} else {
				// Stale session pointing at a deleted user.
				data.Logout()
			}
		}

		c.Next()

		if data.Dirty() {
			if err := m.store.Set(c.Request.Context(), id, data, m.ttl); err != nil {
				m.log.Error("session save failed", "error", err, "session_id", id)
			}
		}
	}
}

// FromContext returns the request's session data. The session middleware
// must have run.
func FromContext(c *gin.Context) *Data {
	return c.MustGet(ctxDataKey).(*Data)
}

// CurrentUser returns the authenticated user attached to the request, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	return v.(*models.User), true
}
