// Package session implements server-side browser sessions. The cookie holds
// only a random session id; the payload (logged-in user, last search results,
// pending flash messages) lives in the backing store.
package session

import (
	"context"
	"encoding/json"
	"time"
)

// Flash levels mirror the bootstrap alert classes the templates use.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Data is the per-browser session payload.
type Data struct {
	UserID  uint            `json:"user_id,omitempty"`
	Recipes json.RawMessage `json:"recipes,omitempty"`
	Flashes []Flash         `json:"flashes,omitempty"`

	dirty bool
}

// Login records the authenticated user in the session.
func (d *Data) Login(userID uint) {
	d.UserID = userID
	d.dirty = true
}

// Logout clears the user but keeps the rest of the session alive,
// matching the original behaviour of deleting only the user key.
func (d *Data) Logout() {
	d.UserID = 0
	d.dirty = true
}

// Flash queues a one-shot message.
func (d *Data) Flash(level, message string) {
	d.Flashes = append(d.Flashes, Flash{Level: level, Message: message})
	d.dirty = true
}

// PopFlashes returns queued messages and clears them.
func (d *Data) PopFlashes() []Flash {
	if len(d.Flashes) == 0 {
		return nil
	}
	flashes := d.Flashes
	d.Flashes = nil
	d.dirty = true
	return flashes
}

// SetRecipes caches the latest search results. The session treats results as
// opaque JSON; callers marshal their own types.
func (d *Data) SetRecipes(raw json.RawMessage) {
	d.Recipes = raw
	d.dirty = true
}

// Dirty reports whether the session needs persisting.
func (d *Data) Dirty() bool {
	return d.dirty
}

// Store persists session payloads by id. Get returns (nil, nil) for an
// unknown id: an absent session is a valid empty session, not an error.
type Store interface {
	Get(ctx context.Context, id string) (*Data, error)
	Set(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
