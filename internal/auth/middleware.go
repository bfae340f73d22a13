package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// DenyFunc answers a request whose principal lacks the required role.
// It must write a response.
type DenyFunc func(c *gin.Context)

// RedirectTo sends page requests to a login page.
func RedirectTo(path string) DenyFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, path)
	}
}

// Unauthorized answers JSON APIs with 401.
func Unauthorized() DenyFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

// EmptyList answers list APIs with an empty array and 200.
func EmptyList() DenyFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, []any{})
	}
}

// Gate resolves the principal of each request and enforces role requirements.
type Gate struct {
	authn  *Authenticator
	tokens TokenConfig
}

// NewGate creates a gate. Bearer tokens are only honored when tokens is enabled.
func NewGate(authn *Authenticator, tokens TokenConfig) *Gate {
	return &Gate{authn: authn, tokens: tokens}
}

// Current returns the principal for the request: a valid bearer access token
// wins over the cookie session. The result is cached on the context.
func (g *Gate) Current(c *gin.Context) (Principal, error) {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p, nil
		}
	}

	p := Anonymous()
	if token := bearerToken(c); token != "" && g.tokens.Enabled() {
		claims, err := Parse(token, AccessToken, g.tokens)
		if err != nil {
			slog.Debug("ignoring bearer token", slog.String("error", err.Error()))
		} else {
			role, _ := ParseRole(claims.Role)
			resolved, err := g.authn.Lookup(c.Request.Context(), role, claims.Subject)
			if err != nil {
				return Anonymous(), err
			}
			p = resolved
		}
	}
	if p.IsAnonymous() {
		p = fromSession(c)
	}

	c.Set(principalKey, p)
	return p, nil
}

// Require lets the request through only when its principal has role;
// otherwise deny answers it.
func (g *Gate) Require(role Role, deny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.Current(c)
		if err != nil {
			slog.Error("resolve principal", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if p.Role() != role {
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// FromContext returns the principal a Gate stored on the context.
func FromContext(c *gin.Context) Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Anonymous()
}

func bearerToken(c *gin.Context) string {
	authz := c.GetHeader("Authorization")
	if len(authz) < len("bearer ") || !strings.EqualFold(authz[:len("bearer ")], "bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[len("bearer "):])
}
