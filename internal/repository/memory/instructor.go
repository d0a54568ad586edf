package memory

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"time"
)

type instructorRecord struct {
	domain.InstructorProfile
}

type instructorRepository struct {
	db *DB
}

func NewInstructorRepository(db *DB) repository.InstructorRepository {
	return &instructorRepository{db: db}
}

func (repo *instructorRepository) Save(_ context.Context, instructor *domain.InstructorProfile) error {
	if instructor.ID == "" {
		return errors.New("instructor id is required")
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	now := time.Now().UTC()
	if instructor.CreatedAt.IsZero() {
		instructor.CreatedAt = now
	}
	if instructor.LastActive.IsZero() {
		instructor.LastActive = now
	}
	if instructor.Role == "" {
		instructor.Role = domain.InstructorRole
	}
	repo.db.instructors.put(instructor.ID, &instructorRecord{InstructorProfile: *instructor})
	return nil
}

func (repo *instructorRepository) GetByID(_ context.Context, id string) (*domain.InstructorProfile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rec, ok := repo.db.instructors.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := rec.InstructorProfile
	return &p, nil
}

func (repo *instructorRepository) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate, updatedAt time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.instructors.get(id)
	if !ok {
		return repository.ErrNotFound
	}
	rec.FullName = update.FullName
	rec.Department = update.Department
	rec.Expertise = update.Expertise
	rec.UpdatedAt = updatedAt
	return nil
}

func (repo *instructorRepository) TouchLastActive(_ context.Context, id string, at time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.instructors.get(id)
	if !ok {
		return repository.ErrNotFound
	}
	rec.LastActive = at
	return nil
}
