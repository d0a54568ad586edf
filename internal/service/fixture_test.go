package service

import (
	"context"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/repository/memory"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	instructorSess = domain.Session{UID: "inst-1", Email: "coach@dict.gov.ph", DisplayName: "Coach Dela Cruz", Kind: domain.AccountInstructor}
	otherInstSess  = domain.Session{UID: "inst-2", Email: "other@dict.gov.ph", DisplayName: "Other Coach", Kind: domain.AccountInstructor}
	studentSess    = domain.Session{UID: "stu-a", Email: "a@school.edu", DisplayName: "Alma", Kind: domain.AccountStudent}
	anonymous      = domain.Session{}
)

// fixedClock returns a clock that starts at start and advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(time.Second)
		return now
	}
}

type fixture struct {
	ctx   context.Context
	store repository.Store

	rosters       *rosterService
	assignments   *assignmentService
	announcements *announcementService
	students      *studentService
	instructors   *instructorService
	dashboard     *dashboardService
	accounts      *accountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(memory.Open())
	clock := fixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	f := &fixture{
		ctx:           context.Background(),
		store:         store,
		rosters:       NewRosterService(store.Rosters, store.Students).(*rosterService),
		assignments:   NewAssignmentService(store.Assignments, store.PerformedExercises, store.Rosters, store.Students).(*assignmentService),
		announcements: NewAnnouncementService(store.Announcements, store.Rosters).(*announcementService),
		students:      NewStudentService(store.Students).(*studentService),
		instructors:   NewInstructorService(store.Instructors).(*instructorService),
		dashboard:     NewDashboardService(store.Students, store.Rosters, store.Assignments, store.PerformedExercises).(*dashboardService),
		accounts:      NewAccountService(store.Students, store.Instructors, "").(*accountService),
	}
	f.rosters.now = clock
	f.assignments.now = clock
	f.announcements.now = clock
	f.students.now = clock
	f.instructors.now = clock
	f.dashboard.now = clock
	f.accounts.now = clock
	return f
}

// seedStudent saves a student profile created at the given offset from a fixed base.
func (f *fixture) seedStudent(t *testing.T, id, name, email string, mutate ...func(*domain.StudentProfile)) domain.StudentProfile {
	t.Helper()
	p := domain.NewStudentProfile(domain.NewAccount{UID: id, Email: email, DisplayName: name})
	p.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(len(id)) * time.Hour)
	p.LastActive = p.CreatedAt
	for _, m := range mutate {
		m(p)
	}
	require.NoError(t, f.store.Students.Save(f.ctx, p))
	return *p
}

func intPtr(v int) *int {
	return &v
}
