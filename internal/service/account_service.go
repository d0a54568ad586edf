package service

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"log"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

type AccountService interface {
	ClassifyAccount(email string) domain.AccountKind
	ProvisionAccount(ctx context.Context, acct domain.NewAccount) (domain.AccountKind, error)
	UpdateLastActive(ctx context.Context, sess domain.Session, isInstructor bool) error
}

type accountService struct {
	studentRepo      repository.StudentRepository
	instructorRepo   repository.InstructorRepository
	instructorDomain string
	now              func() time.Time
}

// NewAccountService classifies accounts by instructorDomain; empty means the
// default instructor domain.
func NewAccountService(
	studentRepo repository.StudentRepository,
	instructorRepo repository.InstructorRepository,
	instructorDomain string,
) AccountService {
	return &accountService{
		studentRepo:      studentRepo,
		instructorRepo:   instructorRepo,
		instructorDomain: instructorDomain,
		now:              time.Now,
	}
}

func (s *accountService) ClassifyAccount(email string) domain.AccountKind {
	return domain.ClassifyAccountFor(email, s.instructorDomain)
}

// ProvisionAccount writes the initial profile for a newly created account.
// An account that already has a profile is left untouched.
func (s *accountService) ProvisionAccount(ctx context.Context, acct domain.NewAccount) (domain.AccountKind, error) {
	if err := validateStruct(acct, "invalid account"); err != nil {
		return "", err
	}
	kind := s.ClassifyAccount(acct.Email)
	now := s.now().UTC()

	switch kind {
	case domain.AccountInstructor:
		if _, err := s.instructorRepo.GetByID(ctx, acct.UID); err == nil {
			return kind, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
		profile := domain.NewInstructorProfile(acct)
		profile.CreatedAt, profile.LastActive = now, now
		if err := s.instructorRepo.Save(ctx, profile); err != nil {
			return "", writeFailure("provision instructor", err)
		}
	default:
		if _, err := s.studentRepo.GetByID(ctx, acct.UID); err == nil {
			return kind, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
		profile := domain.NewStudentProfile(acct)
		profile.CreatedAt, profile.LastActive = now, now
		if err := s.studentRepo.Save(ctx, profile); err != nil {
			return "", writeFailure("provision student", err)
		}
	}
	log.Printf("INFO: Provisioned %s account %s (%s)", kind, acct.UID, acct.Email)
	return kind, nil
}

// UpdateLastActive stamps the caller's own profile.
func (s *accountService) UpdateLastActive(ctx context.Context, sess domain.Session, isInstructor bool) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	now := s.now().UTC()
	var err error
	if isInstructor {
		err = s.instructorRepo.TouchLastActive(ctx, sess.UID, now)
	} else {
		err = s.studentRepo.TouchLastActive(ctx, sess.UID, now)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return writeFailure("update last active", err)
	}
	return nil
}
