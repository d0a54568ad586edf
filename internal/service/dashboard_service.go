package service

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"time"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidTrendRange = errors.New("range must be daily, monthly or yearly")

type DashboardService interface {
	Stats(ctx context.Context, sess domain.Session) (*domain.DashboardStats, error)
	PerformanceTrend(ctx context.Context, sess domain.Session, rng domain.TrendRange) ([]domain.TrendPoint, error)
}

type dashboardService struct {
	studentRepo    repository.StudentRepository
	rosterRepo     repository.RosterRepository
	assignmentRepo repository.AssignmentRepository
	performedRepo  repository.PerformedExerciseRepository
	now            func() time.Time
}

func NewDashboardService(
	studentRepo repository.StudentRepository,
	rosterRepo repository.RosterRepository,
	assignmentRepo repository.AssignmentRepository,
	performedRepo repository.PerformedExerciseRepository,
) DashboardService {
	return &dashboardService{
		studentRepo:    studentRepo,
		rosterRepo:     rosterRepo,
		assignmentRepo: assignmentRepo,
		performedRepo:  performedRepo,
		now:            time.Now,
	}
}

// Stats recomputes every headline number on each call.
func (s *dashboardService) Stats(ctx context.Context, sess domain.Session) (*domain.DashboardStats, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	var total, active, assigned int64
	var roster domain.StudentIDSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.studentRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		active, err = s.studentRepo.CountByStatus(gctx, domain.StatusActive)
		return err
	})
	g.Go(func() (err error) {
		roster, err = loadRosterSet(gctx, s.rosterRepo, sess.UID)
		return err
	})
	g.Go(func() (err error) {
		assigned, err = s.assignmentRepo.CountByInstructor(gctx, sess.UID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &domain.DashboardStats{
		TotalStudents:     int(total),
		ActiveStudents:    int(active),
		RosterStudents:    roster.Len(),
		AssignedExercises: int(assigned),
	}, nil
}

// PerformanceTrend buckets the performed records of the caller's assignments.
// Records outside the window are ignored.
func (s *dashboardService) PerformanceTrend(ctx context.Context, sess domain.Session, rng domain.TrendRange) ([]domain.TrendPoint, error) {
	if err := requireInstructor(sess); err != nil {
		return nil, err
	}
	points, bucket, err := trendBuckets(rng, s.now().UTC())
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByInstructors(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return points, nil
	}
	ids := make([]string, len(assignments))
	for i, a := range assignments {
		ids[i] = a.ID
	}
	records, err := s.performedRepo.ListByAssignments(ctx, ids)
	if err != nil {
		return nil, err
	}

	index := make(map[time.Time]int, len(points))
	for i, p := range points {
		index[p.Start] = i
	}
	for _, r := range records {
		if i, ok := index[bucket(r.PerformedAt.UTC())]; ok {
			points[i].Count++
		}
	}
	return points, nil
}

// trendBuckets returns the empty points of the window ending at now, oldest
// first, and the function mapping a time to its bucket start.
func trendBuckets(rng domain.TrendRange, now time.Time) ([]domain.TrendPoint, func(time.Time) time.Time, error) {
	var (
		n      int
		layout string
		bucket func(time.Time) time.Time
		step   func(time.Time, int) time.Time
	)
	switch rng {
	case domain.TrendDaily, "":
		n, layout = 7, "Jan 02"
		bucket = func(t time.Time) time.Time { return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC) }
		step = func(t time.Time, k int) time.Time { return t.AddDate(0, 0, k) }
	case domain.TrendMonthly:
		n, layout = 12, "Jan 2006"
		bucket = func(t time.Time) time.Time { return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC) }
		step = func(t time.Time, k int) time.Time { return t.AddDate(0, k, 0) }
	case domain.TrendYearly:
		n, layout = 5, "2006"
		bucket = func(t time.Time) time.Time { return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC) }
		step = func(t time.Time, k int) time.Time { return t.AddDate(k, 0, 0) }
	default:
		return nil, nil, NewValidationError(ErrInvalidTrendRange,
			FieldError{Field: "range", Error: ErrInvalidTrendRange.Error()})
	}

	current := bucket(now)
	points := make([]domain.TrendPoint, n)
	for i := 0; i < n; i++ {
		start := step(current, i-(n-1))
		points[i] = domain.TrendPoint{Label: start.Format(layout), Start: start}
	}
	return points, bucket, nil
}
