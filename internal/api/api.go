// Package api binds the HTTP surface to the identity, roster, and
// attendance services. Handlers stay thin: bind, call, map errors.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clubroster/internal/attendance"
	"clubroster/internal/auth"
	"clubroster/internal/config"
	"clubroster/internal/identity"
	"clubroster/internal/roster"
)

// Server holds the handler dependencies.
type Server struct {
	cfg        config.App
	identity   *identity.Service
	roster     *roster.Service
	attendance *attendance.Service
}

// New creates the API server.
func New(cfg config.App, id *identity.Service, ros *roster.Service, att *attendance.Service) *Server {
	return &Server{cfg: cfg, identity: id, roster: ros, attendance: att}
}

// Register mounts all v1 routes on the engine.
func (s *Server) Register(r *gin.Engine) {
	v1 := r.Group("/v1")
	v1.POST("/auth/login", s.login)
	v1.GET("/catalog", s.catalog)

	authed := v1.Group("", auth.UserAuth(s.cfg.JWTSigningKey, s.cfg.JWTIssuer))
	authed.POST("/auth/logout", s.logout)
	authed.GET("/auth/session", s.session)

	authed.GET("/students", s.listStudents)
	authed.POST("/students", s.addStudent)
	authed.DELETE("/students/:id", auth.AdminOnly(), s.deleteStudent)

	authed.GET("/attendance", s.listAttendance)
	authed.POST("/attendance", s.recordAttendance)

	admin := authed.Group("/users", auth.AdminOnly())
	admin.GET("", s.listUsers)
	admin.POST("", s.addUser)
	admin.PUT("/:username/password", s.updatePassword)
}

// respondError maps service errors onto HTTP statuses. Nothing here is
// fatal; every failure is recoverable at the request that caused it.
func respondError(c *gin.Context, err error) {
	switch {
	case identity.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, identity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not permitted"})
	case errors.Is(err, identity.ErrNotFound), errors.Is(err, attendance.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func actorOrAbort(c *gin.Context) (identity.Actor, bool) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return actor, ok
}
