package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubroster/internal/metrics"
	"clubroster/internal/roster"
)

type addStudentRequest struct {
	Name       string   `json:"name" binding:"required"`
	RollNumber string   `json:"rollNumber" binding:"required"`
	Year       string   `json:"year" binding:"required"`
	Branch     string   `json:"branch" binding:"required"`
	Section    string   `json:"section" binding:"required"`
	Clubs      []string `json:"clubs"`
}

func (s *Server) addStudent(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req addStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	student, err := s.roster.Add(c.Request.Context(), roster.NewStudent{
		Name:       req.Name,
		RollNumber: req.RollNumber,
		Year:       req.Year,
		Branch:     req.Branch,
		Section:    req.Section,
		Clubs:      req.Clubs,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.StudentsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{"student": student})
}

func (s *Server) listStudents(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	students, err := s.roster.Filter(c.Request.Context(), c.Query("q"), c.Query("club"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (s *Server) deleteStudent(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := s.roster.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}
	metrics.StudentsDeleted.Inc()
	c.Status(http.StatusNoContent)
}
