package middleware

import "github.com/gin-gonic/gin"

// NoCache disables client-side caching on every response. Pages flip between
// anonymous and logged-in states, so stale renders leak the wrong view.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")
		c.Next()
	}
}
