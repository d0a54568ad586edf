package service

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	ErrAssignmentNotFound       = errors.New("assignment not found")
	ErrAssignmentAccessDenied   = errors.New("access denied to this assignment")
	ErrAssignmentHasCompletions = errors.New("assignment has performed records and cannot be deleted")
	ErrPerformedNotFound        = errors.New("performed exercise not found")
	ErrNotOnRoster              = errors.New("student is not on the roster of this assignment")
)

// countConcurrency bounds the completion count queries issued per listing.
const countConcurrency = 8

// dueDateLayouts are tried in order when parsing a due date.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

type AssignmentService interface {
	ListAssignments(ctx context.Context, sess domain.Session, search string) ([]domain.AssignmentView, error)
	CreateAssignment(ctx context.Context, sess domain.Session, spec domain.ExerciseSpec) (*domain.ExerciseAssignment, error)
	UpdateAssignment(ctx context.Context, sess domain.Session, id string, update domain.AssignmentUpdate) (*domain.ExerciseAssignment, error)
	DeleteAssignment(ctx context.Context, sess domain.Session, id string) error

	ListPerformedExercises(ctx context.Context, sess domain.Session, assignmentID string) ([]domain.PerformedExerciseView, error)
	SetPerformedAccomplished(ctx context.Context, sess domain.Session, assignmentID, performedID string, accomplished bool) error
	DeletePerformedExercise(ctx context.Context, sess domain.Session, assignmentID, performedID string) error

	ListStudentAssignments(ctx context.Context, sess domain.Session) ([]domain.AssignmentView, error)
	RecordPerformance(ctx context.Context, sess domain.Session, assignmentID string, input domain.PerformanceInput) (*domain.PerformedExercise, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	performedRepo  repository.PerformedExerciseRepository
	rosterRepo     repository.RosterRepository
	studentRepo    repository.StudentRepository
	now            func() time.Time
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	performedRepo repository.PerformedExerciseRepository,
	rosterRepo repository.RosterRepository,
	studentRepo repository.StudentRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		performedRepo:  performedRepo,
		rosterRepo:     rosterRepo,
		studentRepo:    studentRepo,
		now:            time.Now,
	}
}

// === Instructor side ===

// ListAssignments returns the caller's assignments with completion counts
// recomputed from the performed records.
func (s *assignmentService) ListAssignments(ctx context.Context, sess domain.Session, search string) ([]domain.AssignmentView, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.ListByInstructors(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	matched := assignments[:0]
	for _, a := range assignments {
		if domain.MatchesAny(search, a.ExerciseName, repetitionsLabel(a), a.DueDate.Format("2006-01-02")) {
			matched = append(matched, a)
		}
	}
	return s.withCompletionCounts(ctx, matched)
}

func (s *assignmentService) withCompletionCounts(ctx context.Context, assignments []domain.ExerciseAssignment) ([]domain.AssignmentView, error) {
	views := make([]domain.AssignmentView, len(assignments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countConcurrency)
	for i := range assignments {
		i := i
		views[i].ExerciseAssignment = assignments[i]
		g.Go(func() error {
			n, err := s.performedRepo.CountByAssignment(gctx, assignments[i].ID)
			if err != nil {
				return err
			}
			views[i].CompletionCount = int(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *assignmentService) CreateAssignment(ctx context.Context, sess domain.Session, spec domain.ExerciseSpec) (*domain.ExerciseAssignment, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	if err := validateStruct(spec, "invalid exercise"); err != nil {
		return nil, err
	}
	reps, due, err := parseSchedule(spec.Repetitions, spec.IsUnlimited, spec.DueDate)
	if err != nil {
		return nil, err
	}

	assignment := &domain.ExerciseAssignment{
		InstructorID:  sess.UID,
		ClassRosterID: sess.UID,
		ExerciseName:  spec.ExerciseName,
		Repetitions:   reps,
		IsUnlimited:   spec.IsUnlimited,
		DueDate:       due,
		CreatedAt:     s.now().UTC(),
	}
	id, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return nil, writeFailure("create assignment", err)
	}
	assignment.ID = id
	log.Printf("INFO: Assignment %s (%s) created by instructor %s", id, assignment.ExerciseName, sess.UID)
	return assignment, nil
}

// UpdateAssignment changes the schedule of an assignment. Name, owner and
// creation time are never touched.
func (s *assignmentService) UpdateAssignment(ctx context.Context, sess domain.Session, id string, update domain.AssignmentUpdate) (*domain.ExerciseAssignment, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	if err := validateStruct(update, "invalid exercise"); err != nil {
		return nil, err
	}
	reps, due, err := parseSchedule(update.Repetitions, update.IsUnlimited, update.DueDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedAssignment(ctx, sess, id); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.UpdateSchedule(ctx, id, reps, update.IsUnlimited, due); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, writeFailure("update assignment", err)
	}
	return s.assignmentRepo.GetByID(ctx, id)
}

// DeleteAssignment removes an assignment that nobody has performed yet.
// The count check and the delete are separate round trips, so a record
// written in between is left without its assignment.
func (s *assignmentService) DeleteAssignment(ctx context.Context, sess domain.Session, id string) error {
	if err := requireInstructor(sess); err != nil {
		return err
	}
	if _, err := s.ownedAssignment(ctx, sess, id); err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return nil
		}
		return err
	}
	n, err := s.performedRepo.CountByAssignment(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrAssignmentHasCompletions
	}
	if err := s.assignmentRepo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return writeFailure("delete assignment", err)
	}
	log.Printf("INFO: Assignment %s deleted by instructor %s", id, sess.UID)
	return nil
}

// ListPerformedExercises returns the records of one assignment with the
// performing student's name.
func (s *assignmentService) ListPerformedExercises(ctx context.Context, sess domain.Session, assignmentID string) ([]domain.PerformedExerciseView, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	if _, err := s.ownedAssignment(ctx, sess, assignmentID); err != nil {
		return nil, err
	}
	records, err := s.performedRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	studentIDs := domain.NewStudentIDSet()
	for _, r := range records {
		studentIDs.Add(r.StudentID)
	}
	profiles, err := s.studentRepo.GetByIDs(ctx, studentIDs.IDs())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Name
	}

	views := make([]domain.PerformedExerciseView, len(records))
	for i, r := range records {
		name, ok := names[r.StudentID]
		if !ok {
			name = domain.UnknownStudentName
		}
		views[i] = domain.PerformedExerciseView{PerformedExercise: r, StudentName: name}
	}
	return views, nil
}

func (s *assignmentService) SetPerformedAccomplished(ctx context.Context, sess domain.Session, assignmentID, performedID string, accomplished bool) error {
	if err := requireInstructor(sess); err != nil {
		return err
	}
	if _, err := s.ownedAssignment(ctx, sess, assignmentID); err != nil {
		return err
	}
	if err := s.performedRepo.SetAccomplished(ctx, assignmentID, performedID, accomplished); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPerformedNotFound
		}
		return writeFailure("update performed exercise", err)
	}
	return nil
}

// DeletePerformedExercise removes one record. Deleting a missing record is a no-op.
func (s *assignmentService) DeletePerformedExercise(ctx context.Context, sess domain.Session, assignmentID, performedID string) error {
	if err := requireInstructor(sess); err != nil {
		return err
	}
	if _, err := s.ownedAssignment(ctx, sess, assignmentID); err != nil {
		return err
	}
	if err := s.performedRepo.Delete(ctx, assignmentID, performedID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return writeFailure("delete performed exercise", err)
	}
	return nil
}

// === Student side ===

// ListStudentAssignments returns the assignments of every instructor whose
// roster contains the caller.
func (s *assignmentService) ListStudentAssignments(ctx context.Context, sess domain.Session) ([]domain.AssignmentView, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	rosters, err := s.rosterRepo.ListContainingStudent(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	if len(rosters) == 0 {
		return []domain.AssignmentView{}, nil
	}
	owners := make([]string, len(rosters))
	for i, r := range rosters {
		owners[i] = r.InstructorID
	}
	assignments, err := s.assignmentRepo.ListByInstructors(ctx, owners...)
	if err != nil {
		return nil, err
	}
	return s.withCompletionCounts(ctx, assignments)
}

// RecordPerformance stores a performed record for the caller. Only students on
// the owning roster may record.
func (s *assignmentService) RecordPerformance(ctx context.Context, sess domain.Session, assignmentID string, input domain.PerformanceInput) (*domain.PerformedExercise, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if err := validateStruct(input, "invalid performance"); err != nil {
		return nil, err
	}
	assignment, err := s.getAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	roster, err := loadRosterSet(ctx, s.rosterRepo, assignment.ClassRosterID)
	if err != nil {
		return nil, err
	}
	if !roster.Has(sess.UID) {
		return nil, ErrNotOnRoster
	}

	performed := &domain.PerformedExercise{
		AssignmentID: assignment.ID,
		StudentID:    sess.UID,
		Duration:     input.Duration,
		Repetition:   input.Repetition,
		PerformedAt:  s.now().UTC(),
		Accomplished: input.Accomplished,
	}
	id, err := s.performedRepo.Create(ctx, performed)
	if err != nil {
		return nil, writeFailure("record performance", err)
	}
	performed.ID = id
	return performed, nil
}

// === Helpers ===

func (s *assignmentService) getAssignment(ctx context.Context, id string) (*domain.ExerciseAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) ownedAssignment(ctx context.Context, sess domain.Session, id string) (*domain.ExerciseAssignment, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.InstructorID != sess.UID {
		return nil, ErrAssignmentAccessDenied
	}
	return assignment, nil
}

// parseSchedule checks the repetitions/unlimited pair and the due date.
// Unlimited assignments are stored without repetitions.
func parseSchedule(repetitions *int, isUnlimited bool, dueDate string) (*int, time.Time, error) {
	var fields []FieldError
	hasReps := repetitions != nil
	switch {
	case hasReps && *repetitions <= 0:
		fields = append(fields, FieldError{Field: "repetitions", Error: "repetitions must be greater than 0"})
	case isUnlimited && hasReps:
		fields = append(fields, FieldError{Field: "repetitions", Error: "repetitions must be empty when isUnlimited is set"})
	case !isUnlimited && !hasReps:
		fields = append(fields, FieldError{Field: "repetitions", Error: "repetitions must be greater than 0 unless isUnlimited is set"})
	}
	due, err := parseDueDate(dueDate)
	if err != nil {
		fields = append(fields, FieldError{Field: "dueDate", Error: "dueDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"})
	}
	if len(fields) > 0 {
		return nil, time.Time{}, NewValidationError(errors.New("invalid exercise"), fields...)
	}
	if isUnlimited {
		return nil, due, nil
	}
	reps := *repetitions
	return &reps, due, nil
}

func parseDueDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func repetitionsLabel(a domain.ExerciseAssignment) string {
	if a.IsUnlimited || a.Repetitions == nil {
		return "Unlimited"
	}
	return strconv.Itoa(*a.Repetitions)
}
