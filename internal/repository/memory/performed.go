package memory

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"time"
)

type performedRecord struct {
	domain.PerformedExercise
}

type performedExerciseRepository struct {
	db *DB
}

func NewPerformedExerciseRepository(db *DB) repository.PerformedExerciseRepository {
	return &performedExerciseRepository{db: db}
}

func (repo *performedExerciseRepository) Create(_ context.Context, performed *domain.PerformedExercise) (string, error) {
	if performed.AssignmentID == "" || performed.StudentID == "" {
		return "", errors.New("performed exercise requires assignmentId and uid")
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	performed.ID = repo.db.nextID()
	if performed.PerformedAt.IsZero() {
		performed.PerformedAt = time.Now().UTC()
	}
	repo.db.performed.put(performed.ID, &performedRecord{PerformedExercise: *performed})
	return performed.ID, nil
}

func (repo *performedExerciseRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]domain.PerformedExercise, error) {
	out, err := repo.ListByAssignments(ctx, []string{assignmentID})
	if err != nil {
		return nil, err
	}
	sortByTimeDesc(out, func(p domain.PerformedExercise) time.Time { return p.PerformedAt })
	return out, nil
}

func (repo *performedExerciseRepository) ListByAssignments(_ context.Context, assignmentIDs []string) ([]domain.PerformedExercise, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	wanted := make(map[string]bool, len(assignmentIDs))
	for _, id := range assignmentIDs {
		wanted[id] = true
	}
	rows := repo.db.performed.newestFirst(func(r *performedRecord) bool { return wanted[r.AssignmentID] })
	out := make([]domain.PerformedExercise, len(rows))
	for i, rec := range rows {
		out[i] = rec.PerformedExercise
	}
	return out, nil
}

func (repo *performedExerciseRepository) CountByAssignment(_ context.Context, assignmentID string) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := repo.db.performed.newestFirst(func(r *performedRecord) bool { return r.AssignmentID == assignmentID })
	return int64(len(rows)), nil
}

func (repo *performedExerciseRepository) SetAccomplished(_ context.Context, assignmentID, id string, accomplished bool) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.performed.get(id)
	if !ok || rec.AssignmentID != assignmentID {
		return repository.ErrNotFound
	}
	rec.Accomplished = accomplished
	return nil
}

func (repo *performedExerciseRepository) Delete(_ context.Context, assignmentID, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.performed.get(id)
	if !ok || rec.AssignmentID != assignmentID {
		return repository.ErrNotFound
	}
	repo.db.performed.remove(id)
	return nil
}
