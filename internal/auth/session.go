package auth

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/jeswin2007cs/scms/internal/model"
)

// SessionOptions configures the signed cookie that carries the session.
type SessionOptions struct {
	Name   string
	Secret string
	MaxAge int
	Secure bool
}

// Sessions returns the middleware that attaches the cookie session to each
// request. The cookie is signed with Secret and encrypted with a key derived
// from it.
func Sessions(opts SessionOptions) gin.HandlerFunc {
	blockKey := sha256.Sum256([]byte(opts.Secret))
	store := cookie.NewStore([]byte(opts.Secret), blockKey[:])
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(opts.Name, store)
}

// Begin replaces whatever the session held with p. The session is cleared
// first so it can never carry a student and an admin at the same time.
// The stored record copy has its password removed.
func Begin(c *gin.Context, p Principal) error {
	s := sessions.Default(c)
	s.Clear()

	var (
		data []byte
		err  error
	)
	switch p.role {
	case RoleStudent:
		st := p.student
		st.Password = ""
		data, err = json.Marshal(st)
	case RoleAdmin:
		ad := p.admin
		ad.Password = ""
		data, err = json.Marshal(ad)
	}
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	if data != nil {
		s.Set(string(p.role), string(data))
	}
	c.Set(principalKey, p)
	return s.Save()
}

// End clears all session state.
func End(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	c.Set(principalKey, Anonymous())
	return s.Save()
}

// fromSession reads the principal stored at login. Admin is checked first,
// matching the order the index page redirects in.
func fromSession(c *gin.Context) Principal {
	s := sessions.Default(c)

	if raw, ok := s.Get(string(RoleAdmin)).(string); ok {
		var a model.Admin
		if err := json.Unmarshal([]byte(raw), &a); err == nil {
			return AdminPrincipal(a)
		}
		slog.Warn("discarding unreadable admin session")
	}
	if raw, ok := s.Get(string(RoleStudent)).(string); ok {
		var st model.Student
		if err := json.Unmarshal([]byte(raw), &st); err == nil {
			return StudentPrincipal(st)
		}
		slog.Warn("discarding unreadable student session")
	}
	return Anonymous()
}
