package memory

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"time"
)

type studentRecord struct {
	domain.StudentProfile
}

func (r *studentRecord) copyOut() domain.StudentProfile {
	p := r.StudentProfile
	p.SearchTerms = cloneStrings(r.SearchTerms)
	return p
}

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) Save(_ context.Context, student *domain.StudentProfile) error {
	if student.ID == "" || student.Email == "" {
		return errors.New("student id and email are required")
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	if student.LastActive.IsZero() {
		student.LastActive = now
	}
	rec := &studentRecord{StudentProfile: *student}
	rec.SearchTerms = cloneStrings(student.SearchTerms)
	repo.db.students.put(student.ID, rec)
	return nil
}

func (repo *studentRepository) GetByID(_ context.Context, id string) (*domain.StudentProfile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rec, ok := repo.db.students.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := rec.copyOut()
	return &p, nil
}

func (repo *studentRepository) GetByIDs(_ context.Context, ids []string) ([]domain.StudentProfile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := []domain.StudentProfile{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if rec, ok := repo.db.students.get(id); ok {
			out = append(out, rec.copyOut())
		}
	}
	return out, nil
}

func (repo *studentRepository) List(_ context.Context) ([]domain.StudentProfile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := repo.db.students.newestFirst(nil)
	out := make([]domain.StudentProfile, len(rows))
	for i, rec := range rows {
		out[i] = rec.copyOut()
	}
	sortByTimeDesc(out, func(p domain.StudentProfile) time.Time { return p.CreatedAt })
	return out, nil
}

func (repo *studentRepository) Count(_ context.Context) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return int64(len(repo.db.students.rows)), nil
}

func (repo *studentRepository) CountByStatus(_ context.Context, status domain.StudentStatus) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := repo.db.students.newestFirst(func(r *studentRecord) bool { return r.Status == status })
	return int64(len(rows)), nil
}

func (repo *studentRepository) UpdateStatus(_ context.Context, id string, status domain.StudentStatus, lastActive time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.students.get(id)
	if !ok {
		return repository.ErrNotFound
	}
	rec.Status = status
	rec.LastActive = lastActive
	return nil
}

func (repo *studentRepository) TouchLastActive(_ context.Context, id string, at time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.students.get(id)
	if !ok {
		return repository.ErrNotFound
	}
	rec.LastActive = at
	return nil
}
