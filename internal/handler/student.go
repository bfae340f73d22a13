package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeswin2007cs/scms/internal/auth"
	"github.com/jeswin2007cs/scms/internal/httpmiddleware"
	"github.com/jeswin2007cs/scms/internal/response"
)

func (h *Handler) Dashboard(c *gin.Context) {
	s, _ := auth.FromContext(c).Student()
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"student": s})
}

// Attendance returns the logged-in student's per-course attendance.
func (h *Handler) Attendance(c *gin.Context) {
	s, _ := auth.FromContext(c).Student()
	report, err := h.attendance.Report(c.Request.Context(), s)
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) MyCourses(c *gin.Context) {
	s, _ := auth.FromContext(c).Student()
	courses, err := h.attendance.Courses(c.Request.Context(), s)
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

var errLeaveBody = errors.New("leave request must be a JSON object")

// ApplyLeave stores the posted object as a new pending leave. Any fields
// are accepted; id, studentEmail and status are always set by the server.
func (h *Handler) ApplyLeave(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, response.GeneralError(errLeaveBody))
		return
	}
	if payload == nil {
		c.JSON(http.StatusBadRequest, response.GeneralError(errLeaveBody))
		return
	}

	s, _ := auth.FromContext(c).Student()
	if _, err := h.leaves.Submit(c.Request.Context(), s, payload); err != nil {
		failJSON(c, err)
		return
	}
	httpmiddleware.LeavesSubmitted.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) LeaveHistory(c *gin.Context) {
	s, _ := auth.FromContext(c).Student()
	own, err := h.leaves.History(c.Request.Context(), s.Gmail)
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, own)
}
