package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubroster/internal/identity"
)

// userView is the admin-facing user shape; password hashes never leave
// the identity package boundary.
type userView struct {
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Club     *string `json:"club"`
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.identity.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]userView, len(users))
	for i, u := range users {
		views[i] = userView{Username: u.Username, Role: u.Role, Club: u.Club}
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

type addUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin coordinator"`
	Club     string `json:"club"`
}

func (s *Server) addUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := s.identity.AddUser(c.Request.Context(), identity.NewUser{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Club:     req.Club,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": userView{Username: user.Username, Role: user.Role, Club: user.Club}})
}

type updatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (s *Server) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}
	if err := s.identity.UpdatePassword(c.Request.Context(), c.Param("username"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
