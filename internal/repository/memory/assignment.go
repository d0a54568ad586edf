package memory

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"time"
)

type assignmentRecord struct {
	domain.ExerciseAssignment
}

func (r *assignmentRecord) copyOut() domain.ExerciseAssignment {
	a := r.ExerciseAssignment
	a.Repetitions = cloneInt(r.Repetitions)
	return a
}

type assignmentRepository struct {
	db *DB
}

func NewAssignmentRepository(db *DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) Create(_ context.Context, assignment *domain.ExerciseAssignment) (string, error) {
	if assignment.InstructorID == "" || assignment.ExerciseName == "" {
		return "", errors.New("assignment requires instructorId and exerciseName")
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	assignment.ID = repo.db.nextID()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	rec := &assignmentRecord{ExerciseAssignment: *assignment}
	rec.Repetitions = cloneInt(assignment.Repetitions)
	repo.db.assignments.put(assignment.ID, rec)
	return assignment.ID, nil
}

func (repo *assignmentRepository) GetByID(_ context.Context, id string) (*domain.ExerciseAssignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rec, ok := repo.db.assignments.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	a := rec.copyOut()
	return &a, nil
}

func (repo *assignmentRepository) ListByInstructors(_ context.Context, instructorIDs ...string) ([]domain.ExerciseAssignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	owners := make(map[string]bool, len(instructorIDs))
	for _, id := range instructorIDs {
		owners[id] = true
	}
	rows := repo.db.assignments.newestFirst(func(r *assignmentRecord) bool { return owners[r.InstructorID] })
	out := make([]domain.ExerciseAssignment, len(rows))
	for i, rec := range rows {
		out[i] = rec.copyOut()
	}
	sortByTimeDesc(out, func(a domain.ExerciseAssignment) time.Time { return a.CreatedAt })
	return out, nil
}

func (repo *assignmentRepository) CountByInstructor(_ context.Context, instructorID string) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := repo.db.assignments.newestFirst(func(r *assignmentRecord) bool { return r.InstructorID == instructorID })
	return int64(len(rows)), nil
}

func (repo *assignmentRepository) UpdateSchedule(_ context.Context, id string, repetitions *int, isUnlimited bool, dueDate time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.assignments.get(id)
	if !ok {
		return repository.ErrNotFound
	}
	rec.Repetitions = cloneInt(repetitions)
	rec.IsUnlimited = isUnlimited
	rec.DueDate = dueDate
	return nil
}

// Delete leaves performed records of the assignment in place, like the MongoDB implementation.
func (repo *assignmentRepository) Delete(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if !repo.db.assignments.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}
