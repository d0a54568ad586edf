package memory

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
)

type rosterRecord struct {
	domain.ClassRoster
}

func (r *rosterRecord) copyOut() domain.ClassRoster {
	c := r.ClassRoster
	c.Students = cloneStrings(r.Students)
	return c
}

type rosterRepository struct {
	db *DB
}

func NewRosterRepository(db *DB) repository.RosterRepository {
	return &rosterRepository{db: db}
}

func (repo *rosterRepository) GetByInstructorID(_ context.Context, instructorID string) (*domain.ClassRoster, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rec, ok := repo.db.rosters.get(instructorID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := rec.copyOut()
	return &c, nil
}

func (repo *rosterRepository) Replace(_ context.Context, roster *domain.ClassRoster) error {
	if roster.InstructorID == "" {
		return errors.New("roster requires instructorId")
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec := &rosterRecord{ClassRoster: *roster}
	rec.Students = cloneStrings(roster.Students)
	repo.db.rosters.put(roster.InstructorID, rec)
	return nil
}

func (repo *rosterRepository) ListContainingStudent(_ context.Context, studentID string) ([]domain.ClassRoster, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := []domain.ClassRoster{}
	for _, id := range repo.db.rosters.order {
		rec := repo.db.rosters.rows[id]
		for _, s := range rec.Students {
			if s == studentID {
				out = append(out, rec.copyOut())
				break
			}
		}
	}
	return out, nil
}
