// Package handler serves the SCMS pages and JSON API on a gin router.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeswin2007cs/scms/internal/admin"
	"github.com/jeswin2007cs/scms/internal/attendance"
	"github.com/jeswin2007cs/scms/internal/auth"
	"github.com/jeswin2007cs/scms/internal/leave"
	"github.com/jeswin2007cs/scms/internal/response"
	"github.com/jeswin2007cs/scms/internal/store"
)

// Deps are the collaborators built once at startup.
type Deps struct {
	Repo       *store.Repository
	Authn      *auth.Authenticator
	Gate       *auth.Gate
	Attendance *attendance.Service
	Leaves     *leave.Service
	Admin      *admin.Service
	Tokens     auth.TokenConfig
}

type Handler struct {
	repo       *store.Repository
	authn      *auth.Authenticator
	gate       *auth.Gate
	attendance *attendance.Service
	leaves     *leave.Service
	admin      *admin.Service
	tokens     auth.TokenConfig
}

func New(d Deps) *Handler {
	return &Handler{
		repo:       d.Repo,
		authn:      d.Authn,
		gate:       d.Gate,
		attendance: d.Attendance,
		leaves:     d.Leaves,
		admin:      d.Admin,
		tokens:     d.Tokens,
	}
}

// Options controls the routes that depend on deployment layout.
type Options struct {
	StaticDir string
	PhotosDir string
	// LoginLimit, if set, guards the credential endpoints.
	LoginLimit gin.HandlerFunc
	// Metrics, if set, is mounted at /metrics.
	Metrics http.Handler
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine, opts Options) {
	limit := opts.LoginLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	studentPage := h.gate.Require(auth.RoleStudent, auth.RedirectTo("/login"))
	adminPage := h.gate.Require(auth.RoleAdmin, auth.RedirectTo("/admin/login"))

	r.GET("/", h.Index)
	r.GET("/login", h.StudentLoginPage)
	r.POST("/login", limit, h.StudentLogin)
	r.GET("/admin/login", h.AdminLoginPage)
	r.POST("/admin/login", limit, h.AdminLogin)
	r.GET("/logout", h.Logout)

	r.GET("/dashboard", studentPage, h.Dashboard)
	r.GET("/attendance", studentPage, h.page("attendance.html"))
	r.GET("/leave", studentPage, h.page("leave.html"))
	r.GET("/my-courses", studentPage, h.page("my_courses.html"))

	r.GET("/admin/dashboard", adminPage, h.AdminDashboard)
	r.GET("/admin/courses", adminPage, h.page("course_admin.html"))

	api := r.Group("/api")
	api.GET("/attendance", h.gate.Require(auth.RoleStudent, auth.Unauthorized()), h.Attendance)
	api.GET("/my-courses", h.gate.Require(auth.RoleStudent, auth.EmptyList()), h.MyCourses)
	api.POST("/leave", h.gate.Require(auth.RoleStudent, auth.Unauthorized()), h.ApplyLeave)
	api.GET("/leaves", h.gate.Require(auth.RoleStudent, auth.EmptyList()), h.LeaveHistory)
	api.POST("/token", limit, h.IssueToken)
	api.POST("/token/refresh", limit, h.RefreshToken)

	if opts.PhotosDir != "" {
		r.Static("/photos", opts.PhotosDir)
	}
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	r.GET("/healthz", h.Healthz)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}
}

// Healthz reports whether the document store is reachable.
func (h *Handler) Healthz(c *gin.Context) {
	storeOK := true
	if err := h.repo.Documents().Ping(c.Request.Context()); err != nil {
		slog.Warn("store ping failed", slog.String("error", err.Error()))
		storeOK = false
	}
	status := http.StatusOK
	if !storeOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "store": storeOK})
}

func (h *Handler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{})
	}
}

var errInternal = errors.New("internal error")

// failJSON logs err against the request and answers with a generic 500.
func failJSON(c *gin.Context, err error) {
	_ = c.Error(err)
	slog.Error("request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusInternalServerError, response.GeneralError(errInternal))
}

func failPage(c *gin.Context, err error) {
	_ = c.Error(err)
	slog.Error("request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	c.Abort()
	c.String(http.StatusInternalServerError, "Internal Server Error")
}
