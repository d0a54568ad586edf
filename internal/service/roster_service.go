package service

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"log"
	"time"
)

type RosterService interface {
	LoadRoster(ctx context.Context, sess domain.Session) (domain.StudentIDSet, error)
	SaveRoster(ctx context.Context, sess domain.Session, studentIDs []string) (domain.StudentIDSet, error)
	JoinWithProfiles(ctx context.Context, studentIDs []string) ([]domain.StudentProfile, error)
	RosterStudents(ctx context.Context, sess domain.Session, q domain.ListQuery) (domain.Page[domain.StudentProfile], error)
	RosterCandidates(ctx context.Context, sess domain.Session, q domain.ListQuery) (domain.Page[domain.RosterCandidate], error)
}

type rosterService struct {
	rosterRepo  repository.RosterRepository
	studentRepo repository.StudentRepository
	now         func() time.Time
}

func NewRosterService(rosterRepo repository.RosterRepository, studentRepo repository.StudentRepository) RosterService {
	return &rosterService{
		rosterRepo:  rosterRepo,
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// LoadRoster returns the caller's roster. A missing roster document is an empty set.
func (s *rosterService) LoadRoster(ctx context.Context, sess domain.Session) (domain.StudentIDSet, error) {
	if err := requireInstructor(sess); err != nil {
		return domain.StudentIDSet{}, err
	}
	return loadRosterSet(ctx, s.rosterRepo, sess.UID)
}

func loadRosterSet(ctx context.Context, repo repository.RosterRepository, instructorID string) (domain.StudentIDSet, error) {
	roster, err := repo.GetByInstructorID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewStudentIDSet(), nil
		}
		return domain.StudentIDSet{}, err
	}
	return domain.NewStudentIDSet(roster.Students...), nil
}

// SaveRoster replaces the whole roster with studentIDs. Last write wins.
func (s *rosterService) SaveRoster(ctx context.Context, sess domain.Session, studentIDs []string) (domain.StudentIDSet, error) {
	if err := requireInstructor(sess); err != nil {
		return domain.StudentIDSet{}, err
	}
	set := domain.NewStudentIDSet(studentIDs...)
	roster := &domain.ClassRoster{
		InstructorID: sess.UID,
		Students:     set.IDs(),
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.rosterRepo.Replace(ctx, roster); err != nil {
		return domain.StudentIDSet{}, writeFailure("save roster", err)
	}
	log.Printf("INFO: Roster of instructor %s saved with %d students", sess.UID, set.Len())
	return set, nil
}

// JoinWithProfiles resolves ids to profiles in the order given. Ids without a
// profile are dropped.
func (s *rosterService) JoinWithProfiles(ctx context.Context, studentIDs []string) ([]domain.StudentProfile, error) {
	return joinProfiles(ctx, s.studentRepo, studentIDs)
}

func joinProfiles(ctx context.Context, repo repository.StudentRepository, studentIDs []string) ([]domain.StudentProfile, error) {
	if len(studentIDs) == 0 {
		return []domain.StudentProfile{}, nil
	}
	found, err := repo.GetByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.StudentProfile, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	joined := make([]domain.StudentProfile, 0, len(studentIDs))
	for _, id := range studentIDs {
		p, ok := byID[id]
		if !ok {
			log.Printf("INFO: Roster entry %s has no student profile, skipping", id)
			continue
		}
		joined = append(joined, p)
	}
	return joined, nil
}

func (s *rosterService) RosterStudents(ctx context.Context, sess domain.Session, q domain.ListQuery) (domain.Page[domain.StudentProfile], error) {
	set, err := s.LoadRoster(ctx, sess)
	if err != nil {
		return domain.Page[domain.StudentProfile]{}, err
	}
	profiles, err := s.JoinWithProfiles(ctx, set.IDs())
	if err != nil {
		return domain.Page[domain.StudentProfile]{}, err
	}
	matched := make([]domain.StudentProfile, 0, len(profiles))
	for _, p := range profiles {
		if domain.MatchesAny(q.Search, p.Name, p.Email, p.YearLevel, p.Course) {
			matched = append(matched, p)
		}
	}
	return domain.Paginate(matched, q.Page, q.PerPage), nil
}

// RosterCandidates lists every student, flagging the ones on the caller's roster.
func (s *rosterService) RosterCandidates(ctx context.Context, sess domain.Session, q domain.ListQuery) (domain.Page[domain.RosterCandidate], error) {
	set, err := s.LoadRoster(ctx, sess)
	if err != nil {
		return domain.Page[domain.RosterCandidate]{}, err
	}
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return domain.Page[domain.RosterCandidate]{}, err
	}
	candidates := make([]domain.RosterCandidate, 0, len(students))
	for _, p := range students {
		if !domain.MatchesAny(q.Search, p.Name, p.Email, p.YearLevel) {
			continue
		}
		candidates = append(candidates, domain.RosterCandidate{StudentProfile: p, Selected: set.Has(p.ID)})
	}
	return domain.Paginate(candidates, q.Page, q.PerPage), nil
}
