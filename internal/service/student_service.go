package service

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"log"
	"sort"
	"strings"
	"time"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidStatus   = errors.New("invalid status")
)

// StudentQuery filters and orders the all-students listing.
type StudentQuery struct {
	domain.ListQuery
	Status string `form:"status"` // "all" or a StudentStatus
	SortBy string `form:"sortBy"` // createdAt, name, email, status, yearLevel
	Order  string `form:"order"`  // asc or desc
}

type StudentService interface {
	ListStudents(ctx context.Context, q StudentQuery) (domain.Page[domain.StudentProfile], error)
	GetStudent(ctx context.Context, id string) (*domain.StudentProfile, error)
	UpdateStatus(ctx context.Context, sess domain.Session, id string, status domain.StudentStatus) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	now         func() time.Time
}

func NewStudentService(studentRepo repository.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo, now: time.Now}
}

func (s *studentService) ListStudents(ctx context.Context, q StudentQuery) (domain.Page[domain.StudentProfile], error) {
	status := domain.StudentStatus(strings.TrimSpace(q.Status))
	if status != "" && status != "all" && !status.IsValid() {
		return domain.Page[domain.StudentProfile]{}, NewValidationError(ErrInvalidStatus,
			FieldError{Field: "status", Error: "status must be all, pending, active or inactive"})
	}
	less, err := studentOrder(q.SortBy, q.Order)
	if err != nil {
		return domain.Page[domain.StudentProfile]{}, err
	}

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return domain.Page[domain.StudentProfile]{}, err
	}
	matched := make([]domain.StudentProfile, 0, len(students))
	for _, p := range students {
		if status != "" && status != "all" && p.Status != status {
			continue
		}
		if !domain.MatchesAny(q.Search, p.Name, p.Email, p.Course) {
			continue
		}
		matched = append(matched, p)
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	return domain.Paginate(matched, q.Page, q.PerPage), nil
}

func studentOrder(sortBy, order string) (func(a, b domain.StudentProfile) bool, error) {
	var key func(a, b domain.StudentProfile) int
	switch sortBy {
	case "", "createdAt":
		key = func(a, b domain.StudentProfile) int { return a.CreatedAt.Compare(b.CreatedAt) }
		if order == "" {
			order = "desc"
		}
	case "name":
		key = func(a, b domain.StudentProfile) int { return strings.Compare(domain.Fold(a.Name), domain.Fold(b.Name)) }
	case "email":
		key = func(a, b domain.StudentProfile) int { return strings.Compare(domain.Fold(a.Email), domain.Fold(b.Email)) }
	case "status":
		key = func(a, b domain.StudentProfile) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case "yearLevel":
		key = func(a, b domain.StudentProfile) int { return strings.Compare(a.YearLevel, b.YearLevel) }
	default:
		return nil, NewValidationError(errors.New("invalid sort"),
			FieldError{Field: "sortBy", Error: "sortBy must be createdAt, name, email, status or yearLevel"})
	}
	switch order {
	case "", "asc":
		return func(a, b domain.StudentProfile) bool { return key(a, b) < 0 }, nil
	case "desc":
		return func(a, b domain.StudentProfile) bool { return key(a, b) > 0 }, nil
	default:
		return nil, NewValidationError(errors.New("invalid sort"),
			FieldError{Field: "order", Error: "order must be asc or desc"})
	}
}

func (s *studentService) GetStudent(ctx context.Context, id string) (*domain.StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// UpdateStatus sets any status on a student. The change also stamps lastActive.
func (s *studentService) UpdateStatus(ctx context.Context, sess domain.Session, id string, status domain.StudentStatus) error {
	if err := requireInstructor(sess); err != nil {
		return err
	}
	if !status.IsValid() {
		return NewValidationError(ErrInvalidStatus,
			FieldError{Field: "status", Error: "status must be pending, active or inactive"})
	}
	if err := s.studentRepo.UpdateStatus(ctx, id, status, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return writeFailure("update student status", err)
	}
	log.Printf("INFO: Student %s set to %s by instructor %s", id, status, sess.UID)
	return nil
}
