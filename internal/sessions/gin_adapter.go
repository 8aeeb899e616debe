package sessions

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// cookieWriter holds back the session cookie until the response headers are
// about to be sent, since a cookie set after that point is lost.
type cookieWriter struct {
	gin.ResponseWriter
	save func()
	sent bool
}

func (w *cookieWriter) flush() {
	if w.sent {
		return
	}
	w.sent = true
	w.save()
}

func (w *cookieWriter) WriteHeader(code int) {
	w.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) WriteHeaderNow() {
	w.flush()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *cookieWriter) WriteString(s string) (int, error) {
	w.flush()
	return w.ResponseWriter.WriteString(s)
}

// save persists a changed session and sets its cookie. Untouched sessions
// write nothing, so read-only page views never create a session row.
func (m *Manager) save(ctx context.Context, w http.ResponseWriter) {
	switch m.Status(ctx) {
	case scs.Modified:
		token, expiry, err := m.Commit(ctx)
		if err != nil {
			log.Printf("Failed to save session: %v", err)
			return
		}
		m.WriteSessionCookie(ctx, w, token, expiry)
	case scs.Destroyed:
		m.WriteSessionCookie(ctx, w, "", time.Time{})
	}
}

// LoadSave loads the session into the request context and saves it once the
// handler responds. It must run before any Flash or PopFlash call.
func (m *Manager) LoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(m.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := m.Load(c.Request.Context(), token)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		underlying := c.Writer
		w := &cookieWriter{ResponseWriter: underlying}
		w.save = func() { m.save(ctx, underlying) }
		c.Writer = w

		c.Next()

		// Handlers that write no body, such as a bare redirect, still save.
		w.flush()
	}
}
