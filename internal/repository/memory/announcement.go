package memory

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"time"
)

type announcementRecord struct {
	domain.Announcement
}

func (r *announcementRecord) copyOut() domain.Announcement {
	a := r.Announcement
	a.Students = cloneStrings(r.Students)
	return a
}

type announcementRepository struct {
	db *DB
}

func NewAnnouncementRepository(db *DB) repository.AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create stores its own copy of the recipient list, so later changes to the
// caller's slice cannot reach the stored snapshot.
func (repo *announcementRepository) Create(_ context.Context, announcement *domain.Announcement) (string, error) {
	if announcement.InstructorID == "" || announcement.ClassRosterID == "" {
		return "", errors.New("announcement requires instructorId and classRosterId")
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	announcement.ID = repo.db.nextID()
	if announcement.Timestamp.IsZero() {
		announcement.Timestamp = time.Now().UTC()
	}
	rec := &announcementRecord{Announcement: *announcement}
	rec.Students = cloneStrings(announcement.Students)
	repo.db.announcements.put(announcement.ID, rec)
	return announcement.ID, nil
}

func (repo *announcementRepository) ListByOwner(_ context.Context, instructorID, rosterID string) ([]domain.Announcement, error) {
	return repo.list(func(r *announcementRecord) bool {
		return r.InstructorID == instructorID && r.ClassRosterID == rosterID
	}), nil
}

func (repo *announcementRepository) ListByRecipient(_ context.Context, studentID string) ([]domain.Announcement, error) {
	return repo.list(func(r *announcementRecord) bool {
		for _, s := range r.Students {
			if s == studentID {
				return true
			}
		}
		return false
	}), nil
}

func (repo *announcementRepository) list(keep func(*announcementRecord) bool) []domain.Announcement {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := repo.db.announcements.newestFirst(keep)
	out := make([]domain.Announcement, len(rows))
	for i, rec := range rows {
		out[i] = rec.copyOut()
	}
	sortByTimeDesc(out, func(a domain.Announcement) time.Time { return a.Timestamp })
	return out
}

func (repo *announcementRepository) Delete(_ context.Context, instructorID, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec, ok := repo.db.announcements.get(id)
	if !ok || rec.InstructorID != instructorID {
		return repository.ErrNotFound
	}
	repo.db.announcements.remove(id)
	return nil
}
