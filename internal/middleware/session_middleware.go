package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velora/storefront_api/internal/view"
)

// SessionHeader carries the storefront view-session id.
const SessionHeader = "X-Session-Id"

// sessionKey is the gin context key holding the resolved *view.Session.
const sessionKey = "view_session"

// SessionMiddleware resolves the visitor's view session from the session
// header, minting a fresh id when absent. New sessions default their category
// selection from the page's category query parameter.
func SessionMiddleware(store *view.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.New().String()
		}

		sess := store.GetOrCreate(id, c.Query("category"))
		c.Set(sessionKey, sess)
		c.Set("session_id", id)
		c.Header(SessionHeader, id)

		c.Next()
	}
}

// SessionFromContext returns the view session resolved by SessionMiddleware,
// or nil when the middleware did not run.
func SessionFromContext(c *gin.Context) *view.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*view.Session)
	return sess
}
