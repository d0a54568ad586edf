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

type InstructorService interface {
	GetOrCreateProfile(ctx context.Context, sess domain.Session) (*domain.InstructorProfile, error)
	UpdateProfile(ctx context.Context, sess domain.Session, update domain.ProfileUpdate) (*domain.InstructorProfile, error)
}

type instructorService struct {
	instructorRepo repository.InstructorRepository
	now            func() time.Time
}

func NewInstructorService(instructorRepo repository.InstructorRepository) InstructorService {
	return &instructorService{instructorRepo: instructorRepo, now: time.Now}
}

// GetOrCreateProfile returns the caller's profile, creating it on first visit.
func (s *instructorService) GetOrCreateProfile(ctx context.Context, sess domain.Session) (*domain.InstructorProfile, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	profile, err := s.instructorRepo.GetByID(ctx, sess.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	profile = domain.NewInstructorProfile(domain.NewAccount{UID: sess.UID, Email: sess.Email, DisplayName: sess.DisplayName})
	profile.CreatedAt = now
	profile.LastActive = now
	if err := s.instructorRepo.Save(ctx, profile); err != nil {
		return nil, writeFailure("create instructor profile", err)
	}
	log.Printf("INFO: Instructor profile created for %s", sess.UID)
	return profile, nil
}

// UpdateProfile writes fullName, department and expertise plus updatedAt.
func (s *instructorService) UpdateProfile(ctx context.Context, sess domain.Session, update domain.ProfileUpdate) (*domain.InstructorProfile, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	if err := validateStruct(update, "invalid profile"); err != nil {
		return nil, err
	}
	if _, err := s.GetOrCreateProfile(ctx, sess); err != nil {
		return nil, err
	}
	update.FullName = strings.TrimSpace(update.FullName)
	update.Department = strings.TrimSpace(update.Department)
	update.Expertise = strings.TrimSpace(update.Expertise)
	if err := s.instructorRepo.UpdateProfile(ctx, sess.UID, update, s.now().UTC()); err != nil {
		return nil, writeFailure("update instructor profile", err)
	}
	return s.instructorRepo.GetByID(ctx, sess.UID)
}
