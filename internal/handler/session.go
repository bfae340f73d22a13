package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeswin2007cs/scms/internal/auth"
	"github.com/jeswin2007cs/scms/internal/httpmiddleware"
)

const (
	studentLoginError = "Invalid Gmail or Password"
	adminLoginError   = "Invalid Admin Credentials"
)

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Index sends the visitor to the home of whichever role they hold, admin first.
func (h *Handler) Index(c *gin.Context) {
	p, err := h.gate.Current(c)
	if err != nil {
		failPage(c, err)
		return
	}
	switch p.Role() {
	case auth.RoleAdmin:
		c.Redirect(http.StatusFound, "/admin/dashboard")
	case auth.RoleStudent:
		c.Redirect(http.StatusFound, "/dashboard")
	default:
		c.Redirect(http.StatusFound, "/login")
	}
}

func (h *Handler) StudentLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) AdminLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

func (h *Handler) StudentLogin(c *gin.Context) {
	h.login(c, auth.RoleStudent, "login.html", studentLoginError, "/dashboard")
}

func (h *Handler) AdminLogin(c *gin.Context) {
	h.login(c, auth.RoleAdmin, "admin_login.html", adminLoginError, "/admin/dashboard")
}

// login checks the posted form. A missing field is treated like a wrong
// password: the form is shown again with the role's fixed message.
func (h *Handler) login(c *gin.Context, role auth.Role, tmpl, failMsg, home string) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		httpmiddleware.LoginsTotal.WithLabelValues(string(role), "invalid").Inc()
		c.HTML(http.StatusOK, tmpl, gin.H{"error": failMsg})
		return
	}

	p, err := h.authn.Authenticate(c.Request.Context(), role, form.Email, form.Password)
	if err != nil {
		httpmiddleware.LoginsTotal.WithLabelValues(string(role), "error").Inc()
		failPage(c, err)
		return
	}
	if p.IsAnonymous() {
		httpmiddleware.LoginsTotal.WithLabelValues(string(role), "invalid").Inc()
		c.HTML(http.StatusOK, tmpl, gin.H{"error": failMsg})
		return
	}

	if err := auth.Begin(c, p); err != nil {
		httpmiddleware.LoginsTotal.WithLabelValues(string(role), "error").Inc()
		failPage(c, err)
		return
	}
	httpmiddleware.LoginsTotal.WithLabelValues(string(role), "ok").Inc()
	c.Redirect(http.StatusFound, home)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := auth.End(c); err != nil {
		failPage(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
