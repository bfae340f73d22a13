package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeswin2007cs/scms/internal/auth"
)

// AdminDashboard renders the counts and full tables for the logged-in admin.
func (h *Handler) AdminDashboard(c *gin.Context) {
	a, _ := auth.FromContext(c).Admin()
	ov, err := h.admin.Overview(c.Request.Context())
	if err != nil {
		failPage(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"admin":      a,
		"stats":      ov.Stats,
		"students":   ov.Students,
		"courses":    ov.Courses,
		"leaves":     ov.Leaves,
		"attendance": ov.Attendance,
	})
}
