// Package attendance owns the attendance collection. Records are
// append-only: they are never edited, and only removed through the
// student-deletion cascade.
package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clubroster/internal/identity"
	"clubroster/internal/roster"
	"clubroster/internal/store"
)

// ErrStudentNotFound rejects a record for an unknown student id.
var ErrStudentNotFound = errors.New("student not found")

// DateLayout is the ISO calendar date format used for the Date field.
const DateLayout = "2006-01-02"

// Record is one attendance row. StudentName and ClubName are denormalized
// copies captured at creation time; later roster changes do not rewrite
// history.
type Record struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	ClubName    string `json:"clubName"`
	Date        string `json:"date"`
	Present     bool   `json:"present"`
}

// StudentDirectory resolves student ids for membership checks.
type StudentDirectory interface {
	Get(ctx context.Context, id string) (*roster.Student, error)
}

// Service implements attendance operations over the store.
type Service struct {
	store    store.Store
	students StudentDirectory
}

// NewService creates the attendance service.
func NewService(st store.Store, students StudentDirectory) *Service {
	return &Service{store: st, students: students}
}

// NewRecord is the Record input; the ID is assigned by the service.
type NewRecord struct {
	StudentID string
	ClubName  string
	Date      string
	Present   bool
}

// Record appends an attendance row. The club must be one the student
// actually belongs to; for a coordinator the club is forced to their own
// and the call is rejected when the student is not a member of it. An
// empty date defaults to today.
func (s *Service) Record(ctx context.Context, input NewRecord, actor identity.Actor) (Record, error) {
	student, err := s.students.Get(ctx, input.StudentID)
	if err != nil {
		return Record{}, err
	}
	if student == nil {
		return Record{}, ErrStudentNotFound
	}

	club := input.ClubName
	if !actor.IsAdmin() {
		club = actor.Club
	}
	if club == "" {
		return Record{}, identity.Validation("club is required")
	}
	if !memberOf(student, club) {
		return Record{}, identity.Validation("student %s is not a member of %s", student.Name, club)
	}

	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return Record{}, identity.Validation("date must be formatted as %s", DateLayout)
	}

	rec := Record{
		ID:          uuid.NewString(),
		StudentID:   student.ID,
		StudentName: student.Name,
		ClubName:    club,
		Date:        date,
		Present:     input.Present,
	}
	records, err := s.all(ctx)
	if err != nil {
		return Record{}, err
	}
	records = append(records, rec)
	if err := s.store.Write(ctx, store.KeyAttendance, records); err != nil {
		return Record{}, err
	}
	logrus.WithFields(logrus.Fields{
		"record_id":  rec.ID,
		"student_id": rec.StudentID,
		"club":       rec.ClubName,
		"date":       rec.Date,
		"present":    rec.Present,
		"actor":      actor.Username,
	}).Info("attendance recorded")
	return rec, nil
}

// Filter returns records matching a case-insensitive substring of the
// student name or club name, or a raw substring of the date, scoped by
// role: a coordinator only sees rows for their own club.
func (s *Service) Filter(ctx context.Context, query string, actor identity.Actor) ([]Record, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if query != "" &&
			!strings.Contains(strings.ToLower(rec.StudentName), q) &&
			!strings.Contains(strings.ToLower(rec.ClubName), q) &&
			!strings.Contains(rec.Date, query) {
			continue
		}
		if !actor.IsAdmin() && rec.ClubName != actor.Club {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// RemoveByStudent drops every record referencing studentID and reports
// how many were removed. This is the cascade target for student deletion.
func (s *Service) RemoveByStudent(ctx context.Context, studentID string) (int, error) {
	records, err := s.all(ctx)
	if err != nil {
		return 0, err
	}
	kept := records[:0]
	removed := 0
	for _, rec := range records {
		if rec.StudentID == studentID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.store.Write(ctx, store.KeyAttendance, kept)
}

func memberOf(st *roster.Student, club string) bool {
	for _, c := range st.Clubs {
		if c == club {
			return true
		}
	}
	return false
}

func (s *Service) all(ctx context.Context) ([]Record, error) {
	var records []Record
	if _, err := s.store.Read(ctx, store.KeyAttendance, &records); err != nil {
		return nil, err
	}
	return records, nil
}
