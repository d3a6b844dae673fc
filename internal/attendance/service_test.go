package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clubroster/internal/attendance"
	"clubroster/internal/identity"
	"clubroster/internal/roster"
	"clubroster/internal/store"
)

var (
	admin = identity.Actor{Username: "admin", Role: identity.RoleAdmin}
	coord = identity.Actor{Username: "music", Role: identity.RoleCoordinator, Club: "MUSIC CLUB"}
)

func newServices(t *testing.T) (*roster.Service, *attendance.Service) {
	t.Helper()
	st := store.NewMemory()
	ros := roster.NewService(st)
	att := attendance.NewService(st, ros)
	ros.BindAttendance(att)
	return ros, att
}

func addStudent(t *testing.T, ros *roster.Service, name string, clubs ...string) roster.Student {
	t.Helper()
	student, err := ros.Add(context.Background(), roster.NewStudent{
		Name:       name,
		RollNumber: "R-" + name,
		Year:       "2nd Year",
		Branch:     "ECE",
		Section:    "B",
		Clubs:      clubs,
	}, admin)
	require.NoError(t, err)
	return student
}

func TestRecordDenormalizesStudentAndClub(t *testing.T) {
	ros, att := newServices(t)
	student := addStudent(t, ros, "Alice", "MUSIC CLUB", "YOGA CLUB")

	rec, err := att.Record(context.Background(), attendance.NewRecord{
		StudentID: student.ID,
		ClubName:  "YOGA CLUB",
		Date:      "2026-08-28",
		Present:   true,
	}, admin)
	require.NoError(t, err)

	require.NotEmpty(t, rec.ID)
	require.Equal(t, student.ID, rec.StudentID)
	require.Equal(t, "Alice", rec.StudentName)
	require.Equal(t, "YOGA CLUB", rec.ClubName)
	require.Equal(t, "2026-08-28", rec.Date)
	require.True(t, rec.Present)
}

func TestRecordDefaultsDateToToday(t *testing.T) {
	ros, att := newServices(t)
	student := addStudent(t, ros, "Alice", "MUSIC CLUB")

	rec, err := att.Record(context.Background(), attendance.NewRecord{
		StudentID: student.ID,
		ClubName:  "MUSIC CLUB",
	}, admin)
	require.NoError(t, err)
	require.Equal(t, time.Now().UTC().Format(attendance.DateLayout), rec.Date)
}

func TestRecordRejectsNonMemberClub(t *testing.T) {
	ros, att := newServices(t)
	student := addStudent(t, ros, "Alice", "DANCE CLUB")
	ctx := context.Background()

	_, err := att.Record(ctx, attendance.NewRecord{StudentID: student.ID, ClubName: "MUSIC CLUB"}, admin)
	require.True(t, identity.IsValidation(err))

	_, err = att.Record(ctx, attendance.NewRecord{StudentID: student.ID}, admin)
	require.True(t, identity.IsValidation(err), "club is required for admins")
}

func TestRecordCoordinatorClubIsForced(t *testing.T) {
	ros, att := newServices(t)
	member := addStudent(t, ros, "Alice", "MUSIC CLUB", "DANCE CLUB")
	outsider := addStudent(t, ros, "Bob", "DANCE CLUB")
	ctx := context.Background()

	// The submitted club is ignored for coordinators.
	rec, err := att.Record(ctx, attendance.NewRecord{StudentID: member.ID, ClubName: "DANCE CLUB"}, coord)
	require.NoError(t, err)
	require.Equal(t, "MUSIC CLUB", rec.ClubName)

	// A student outside the coordinator's club is rejected even though the
	// student exists and belongs to the named club.
	_, err = att.Record(ctx, attendance.NewRecord{StudentID: outsider.ID, ClubName: "DANCE CLUB"}, coord)
	require.True(t, identity.IsValidation(err))
}

func TestRecordUnknownStudent(t *testing.T) {
	_, att := newServices(t)
	_, err := att.Record(context.Background(), attendance.NewRecord{StudentID: "no-such-id", ClubName: "MUSIC CLUB"}, admin)
	require.ErrorIs(t, err, attendance.ErrStudentNotFound)
}

func TestRecordRejectsMalformedDate(t *testing.T) {
	ros, att := newServices(t)
	student := addStudent(t, ros, "Alice", "MUSIC CLUB")

	for _, date := range []string{"28-08-2026", "2026/08/28", "yesterday"} {
		_, err := att.Record(context.Background(), attendance.NewRecord{
			StudentID: student.ID,
			ClubName:  "MUSIC CLUB",
			Date:      date,
		}, admin)
		require.True(t, identity.IsValidation(err), "expected validation error for date %q", date)
	}
}

func TestFilterScopesAndMatches(t *testing.T) {
	ros, att := newServices(t)
	ctx := context.Background()
	alice := addStudent(t, ros, "Alice", "MUSIC CLUB")
	bob := addStudent(t, ros, "Bob", "DANCE CLUB")

	_, err := att.Record(ctx, attendance.NewRecord{StudentID: alice.ID, ClubName: "MUSIC CLUB", Date: "2026-08-01", Present: true}, admin)
	require.NoError(t, err)
	_, err = att.Record(ctx, attendance.NewRecord{StudentID: bob.ID, ClubName: "DANCE CLUB", Date: "2026-08-02", Present: false}, admin)
	require.NoError(t, err)

	all, err := att.Filter(ctx, "", admin)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byName, err := att.Filter(ctx, "alice", admin)
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byClub, err := att.Filter(ctx, "dance", admin)
	require.NoError(t, err)
	require.Len(t, byClub, 1)

	byDate, err := att.Filter(ctx, "2026-08-02", admin)
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	require.Equal(t, "Bob", byDate[0].StudentName)

	// Coordinator only ever sees rows for their own club.
	scoped, err := att.Filter(ctx, "", coord)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, "MUSIC CLUB", scoped[0].ClubName)

	none, err := att.Filter(ctx, "bob", coord)
	require.NoError(t, err)
	require.Empty(t, none)
}
