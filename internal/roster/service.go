// Package roster owns the students collection: creation, admin-only
// deletion with its attendance cascade, and membership-scoped filtering.
package roster

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clubroster/internal/catalog"
	"clubroster/internal/identity"
	"clubroster/internal/store"
)

// Student is a roster entry. Clubs holds the subset of catalog clubs the
// student belongs to.
type Student struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	RollNumber string   `json:"rollNumber"`
	Year       string   `json:"year"`
	Branch     string   `json:"branch"`
	Section    string   `json:"section"`
	Clubs      []string `json:"clubs"`
}

// AttendanceRemover is the cascade hook: deleting a student removes every
// attendance row referencing them.
type AttendanceRemover interface {
	RemoveByStudent(ctx context.Context, studentID string) (int, error)
}

// Service implements roster operations over the store.
type Service struct {
	store      store.Store
	attendance AttendanceRemover
}

// NewService creates the roster service. BindAttendance must be called
// before Delete so the cascade has a target.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// BindAttendance wires the cascade target. Roster and attendance refer to
// each other, so the hookup happens after both services exist.
func (s *Service) BindAttendance(a AttendanceRemover) {
	s.attendance = a
}

// NewStudent is the Add input; the ID is assigned by the service.
type NewStudent struct {
	Name       string
	RollNumber string
	Year       string
	Branch     string
	Section    string
	Clubs      []string
}

// Add validates and appends a student with a fresh opaque ID. A
// coordinator's student is always placed in exactly the coordinator's own
// club, whatever clubs the caller submitted; the client-side restriction
// is advisory only.
func (s *Service) Add(ctx context.Context, input NewStudent, actor identity.Actor) (Student, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.RollNumber) == "" {
		return Student{}, identity.Validation("name and roll number are required")
	}
	if !catalog.ValidYear(input.Year) {
		return Student{}, identity.Validation("unknown year %q", input.Year)
	}
	if !catalog.ValidBranch(input.Branch) {
		return Student{}, identity.Validation("unknown branch %q", input.Branch)
	}
	if !catalog.ValidSection(input.Section) {
		return Student{}, identity.Validation("unknown section %q", input.Section)
	}

	clubs := input.Clubs
	if !actor.IsAdmin() {
		clubs = []string{actor.Club}
	}
	for _, club := range clubs {
		if !catalog.ValidClub(club) {
			return Student{}, identity.Validation("unknown club %q", club)
		}
	}
	if clubs == nil {
		clubs = []string{}
	}

	student := Student{
		ID:         uuid.NewString(),
		Name:       input.Name,
		RollNumber: input.RollNumber,
		Year:       input.Year,
		Branch:     input.Branch,
		Section:    input.Section,
		Clubs:      clubs,
	}
	students, err := s.all(ctx)
	if err != nil {
		return Student{}, err
	}
	students = append(students, student)
	if err := s.store.Write(ctx, store.KeyStudents, students); err != nil {
		return Student{}, err
	}
	logrus.WithFields(logrus.Fields{
		"student_id": student.ID,
		"actor":      actor.Username,
		"clubs":      clubs,
	}).Info("student added")
	return student, nil
}

// Delete removes a student and cascades into attendance. Admin only; a
// non-existent id is a silent no-op.
func (s *Service) Delete(ctx context.Context, id string, actor identity.Actor) error {
	if !actor.IsAdmin() {
		return identity.ErrForbidden
	}
	students, err := s.all(ctx)
	if err != nil {
		return err
	}
	kept := students[:0]
	removed := false
	for _, st := range students {
		if st.ID == id {
			removed = true
			continue
		}
		kept = append(kept, st)
	}
	if !removed {
		return nil
	}
	if err := s.store.Write(ctx, store.KeyStudents, kept); err != nil {
		return err
	}
	cascaded, err := s.attendance.RemoveByStudent(ctx, id)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"student_id":         id,
		"actor":              actor.Username,
		"attendance_removed": cascaded,
	}).Info("student deleted")
	return nil
}

// Filter returns students matching a case-insensitive substring of the
// name or roll number, scoped by role: an admin sees every club (or just
// clubFilter when set), a coordinator only their own club regardless of
// clubFilter. Insertion order is preserved.
func (s *Service) Filter(ctx context.Context, query, clubFilter string, actor identity.Actor) ([]Student, error) {
	students, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]Student, 0, len(students))
	for _, st := range students {
		if q != "" &&
			!strings.Contains(strings.ToLower(st.Name), q) &&
			!strings.Contains(strings.ToLower(st.RollNumber), q) {
			continue
		}
		if actor.IsAdmin() {
			if clubFilter != "" && !memberOf(st, clubFilter) {
				continue
			}
		} else if !memberOf(st, actor.Club) {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// Get returns the student with the given id, or nil when absent.
func (s *Service) Get(ctx context.Context, id string) (*Student, error) {
	students, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == id {
			return &students[i], nil
		}
	}
	return nil, nil
}

func memberOf(st Student, club string) bool {
	for _, c := range st.Clubs {
		if c == club {
			return true
		}
	}
	return false
}

func (s *Service) all(ctx context.Context) ([]Student, error) {
	var students []Student
	if _, err := s.store.Read(ctx, store.KeyStudents, &students); err != nil {
		return nil, err
	}
	return students, nil
}
