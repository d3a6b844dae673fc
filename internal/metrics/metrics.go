// Package metrics registers the Prometheus counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Logins counts login attempts by outcome ("ok" or "fail").
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubroster_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	// StudentsCreated counts roster additions.
	StudentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubroster_students_created_total",
		Help: "Students added to the roster.",
	})

	// StudentsDeleted counts roster deletions.
	StudentsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubroster_students_deleted_total",
		Help: "Students deleted from the roster.",
	})

	// AttendanceRecorded counts attendance rows created.
	AttendanceRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubroster_attendance_recorded_total",
		Help: "Attendance records created.",
	})
)
