package repository

import (
	"context"
	"fitu/dashboard/internal/domain"
	"time"
)

// Collection names are the wire contract shared with the other FitU clients.
const (
	StudentsCollection           = "users"
	InstructorsCollection        = "instructors"
	RostersCollection            = "classRosters"
	AssignmentsCollection        = "exerciseAssignments"
	PerformedExercisesCollection = "performedExercises"
	AnnouncementsCollection      = "announcements"
)

var (
	ErrNotFound      = RepositoryError("not found")
	ErrAlreadyExists = RepositoryError("already exists")
	ErrUpdateFailed  = RepositoryError("update failed")
	ErrDeleteFailed  = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// StudentRepository stores student profiles ("users").
type StudentRepository interface {
	// Save writes the whole profile under its ID, replacing any existing document.
	Save(ctx context.Context, student *domain.StudentProfile) error
	GetByID(ctx context.Context, id string) (*domain.StudentProfile, error)
	// GetByIDs returns the profiles that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]domain.StudentProfile, error)
	// List returns every student, newest first.
	List(ctx context.Context) ([]domain.StudentProfile, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.StudentStatus) (int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.StudentStatus, lastActive time.Time) error
	TouchLastActive(ctx context.Context, id string, at time.Time) error
}

// InstructorRepository stores instructor profiles.
type InstructorRepository interface {
	Save(ctx context.Context, instructor *domain.InstructorProfile) error
	GetByID(ctx context.Context, id string) (*domain.InstructorProfile, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, updatedAt time.Time) error
	TouchLastActive(ctx context.Context, id string, at time.Time) error
}

// RosterRepository stores one roster document per instructor.
type RosterRepository interface {
	GetByInstructorID(ctx context.Context, instructorID string) (*domain.ClassRoster, error)
	// Replace overwrites the roster document as a whole. Last write wins.
	Replace(ctx context.Context, roster *domain.ClassRoster) error
	// ListContainingStudent returns every roster whose students include studentID.
	ListContainingStudent(ctx context.Context, studentID string) ([]domain.ClassRoster, error)
}

// AssignmentRepository stores exercise assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.ExerciseAssignment) (string, error)
	GetByID(ctx context.Context, id string) (*domain.ExerciseAssignment, error)
	// ListByInstructors returns the assignments owned by any of instructorIDs, newest first.
	ListByInstructors(ctx context.Context, instructorIDs ...string) ([]domain.ExerciseAssignment, error)
	CountByInstructor(ctx context.Context, instructorID string) (int64, error)
	// UpdateSchedule writes repetitions, isUnlimited and dueDate and nothing else.
	UpdateSchedule(ctx context.Context, id string, repetitions *int, isUnlimited bool, dueDate time.Time) error
	Delete(ctx context.Context, id string) error
}

// PerformedExerciseRepository stores the performed records owned by assignments.
type PerformedExerciseRepository interface {
	Create(ctx context.Context, performed *domain.PerformedExercise) (string, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]domain.PerformedExercise, error)
	ListByAssignments(ctx context.Context, assignmentIDs []string) ([]domain.PerformedExercise, error)
	CountByAssignment(ctx context.Context, assignmentID string) (int64, error)
	SetAccomplished(ctx context.Context, assignmentID, id string, accomplished bool) error
	Delete(ctx context.Context, assignmentID, id string) error
}

// AnnouncementRepository stores announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) (string, error)
	// ListByOwner returns announcements matching both instructor and roster, newest first.
	ListByOwner(ctx context.Context, instructorID, rosterID string) ([]domain.Announcement, error)
	// ListByRecipient returns announcements whose recipient snapshot contains studentID, newest first.
	ListByRecipient(ctx context.Context, studentID string) ([]domain.Announcement, error)
	Delete(ctx context.Context, instructorID, id string) error
}

// Store bundles the repositories of one backing database.
type Store struct {
	Students           StudentRepository
	Instructors        InstructorRepository
	Rosters            RosterRepository
	Assignments        AssignmentRepository
	PerformedExercises PerformedExerciseRepository
	Announcements      AnnouncementRepository
}
