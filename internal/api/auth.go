package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubroster/internal/auth"
	"clubroster/internal/catalog"
	"clubroster/internal/metrics"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	sess, err := s.identity.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		metrics.Logins.WithLabelValues("fail").Inc()
		respondError(c, err)
		return
	}
	metrics.Logins.WithLabelValues("ok").Inc()

	club := ""
	if sess.Club != nil {
		club = *sess.Club
	}
	token, err := auth.Issue(*sess.Username, *sess.Role, club, s.cfg.JWTIssuer, s.cfg.JWTSigningKey, s.cfg.AccessTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token.Value,
		"expires_at": token.ExpiresAt.Unix(),
		"session":    sess,
	})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.identity.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) session(c *gin.Context) {
	sess, err := s.identity.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

func (s *Server) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"clubs":    catalog.Clubs,
		"years":    catalog.Years,
		"branches": catalog.Branches,
		"sections": catalog.Sections,
	})
}
