package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubroster/internal/attendance"
	"clubroster/internal/metrics"
)

type recordAttendanceRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	ClubName  string `json:"clubName"`
	Date      string `json:"date"`
	Present   *bool  `json:"present" binding:"required"`
}

func (s *Server) recordAttendance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req recordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.attendance.Record(c.Request.Context(), attendance.NewRecord{
		StudentID: req.StudentID,
		ClubName:  req.ClubName,
		Date:      req.Date,
		Present:   *req.Present,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.AttendanceRecorded.Inc()
	c.JSON(http.StatusCreated, gin.H{"attendance": rec})
}

func (s *Server) listAttendance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	records, err := s.attendance.Filter(c.Request.Context(), c.Query("q"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}
