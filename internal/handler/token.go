package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeswin2007cs/scms/internal/auth"
	"github.com/jeswin2007cs/scms/internal/httpmiddleware"
	"github.com/jeswin2007cs/scms/internal/response"
)

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student admin"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

var (
	errTokensDisabled = errors.New("token authentication is disabled")
	errBadCredentials = errors.New("invalid credentials")
	errBadRefresh     = errors.New("invalid refresh token")
)

// IssueToken exchanges credentials for a bearer token pair.
func (h *Handler) IssueToken(c *gin.Context) {
	if !h.tokens.Enabled() {
		c.JSON(http.StatusServiceUnavailable, response.GeneralError(errTokensDisabled))
		return
	}
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}
	role, _ := auth.ParseRole(req.Role)

	p, err := h.authn.Authenticate(c.Request.Context(), role, req.Email, req.Password)
	if err != nil {
		httpmiddleware.LoginsTotal.WithLabelValues(req.Role, "error").Inc()
		failJSON(c, err)
		return
	}
	if p.IsAnonymous() {
		httpmiddleware.LoginsTotal.WithLabelValues(req.Role, "invalid").Inc()
		c.JSON(http.StatusUnauthorized, response.GeneralError(errBadCredentials))
		return
	}
	httpmiddleware.LoginsTotal.WithLabelValues(req.Role, "ok").Inc()
	h.writeTokens(c, p)
}

// RefreshToken trades a refresh token for a new pair. The subject is looked
// up again so removed accounts cannot keep refreshing.
func (h *Handler) RefreshToken(c *gin.Context) {
	if !h.tokens.Enabled() {
		c.JSON(http.StatusServiceUnavailable, response.GeneralError(errTokensDisabled))
		return
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BindError(err))
		return
	}
	claims, err := auth.Parse(req.RefreshToken, auth.RefreshToken, h.tokens)
	if err != nil {
		slog.Debug("refresh rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, response.GeneralError(errBadRefresh))
		return
	}
	role, _ := auth.ParseRole(claims.Role)
	p, err := h.authn.Lookup(c.Request.Context(), role, claims.Subject)
	if err != nil {
		failJSON(c, err)
		return
	}
	if p.IsAnonymous() {
		c.JSON(http.StatusUnauthorized, response.GeneralError(errBadRefresh))
		return
	}
	h.writeTokens(c, p)
}

func (h *Handler) writeTokens(c *gin.Context, p auth.Principal) {
	pair, err := auth.Issue(p.Subject(), p.Role(), h.tokens)
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.AccessExp.Unix(),
	})
}
