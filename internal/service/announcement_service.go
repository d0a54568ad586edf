package service

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"log"
	"strings"
	"time"
)

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, sess domain.Session, input domain.AnnouncementInput) (*domain.Announcement, error)
	ListAnnouncements(ctx context.Context, sess domain.Session) ([]domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, sess domain.Session, id string) error
	ListStudentAnnouncements(ctx context.Context, sess domain.Session) ([]domain.Announcement, error)
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	rosterRepo       repository.RosterRepository
	now              func() time.Time
}

func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, rosterRepo repository.RosterRepository) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		rosterRepo:       rosterRepo,
		now:              time.Now,
	}
}

// CreateAnnouncement addresses the students on the caller's roster at this
// moment. Later roster changes do not affect who it was sent to.
func (s *announcementService) CreateAnnouncement(ctx context.Context, sess domain.Session, input domain.AnnouncementInput) (*domain.Announcement, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	if err := validateStruct(input, "invalid announcement"); err != nil {
		return nil, err
	}
	roster, err := loadRosterSet(ctx, s.rosterRepo, sess.UID)
	if err != nil {
		return nil, err
	}

	announcement := &domain.Announcement{
		InstructorID:  sess.UID,
		ClassRosterID: sess.UID,
		Students:      roster.IDs(),
		Title:         strings.TrimSpace(input.Title),
		Message:       strings.TrimSpace(input.Message),
		Timestamp:     s.now().UTC(),
	}
	id, err := s.announcementRepo.Create(ctx, announcement)
	if err != nil {
		return nil, writeFailure("create announcement", err)
	}
	announcement.ID = id
	log.Printf("INFO: Announcement %s sent by instructor %s to %d students", id, sess.UID, len(announcement.Students))
	return announcement, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context, sess domain.Session) ([]domain.Announcement, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	return s.announcementRepo.ListByOwner(ctx, sess.UID, sess.UID)
}

// DeleteAnnouncement removes one of the caller's announcements. Missing ones are ignored.
func (s *announcementService) DeleteAnnouncement(ctx context.Context, sess domain.Session, id string) error {
	if err := requireInstructor(sess); err != nil {
		return err
	}
	if err := s.announcementRepo.Delete(ctx, sess.UID, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return writeFailure("delete announcement", err)
	}
	return nil
}

func (s *announcementService) ListStudentAnnouncements(ctx context.Context, sess domain.Session) ([]domain.Announcement, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.announcementRepo.ListByRecipient(ctx, sess.UID)
}
