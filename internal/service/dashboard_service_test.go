package service

import (
	"fitu/dashboard/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAreRecomputed(t *testing.T) {
	f := newFixture(t)
	f.seedStudent(t, "s1", "Ana", "ana@school.edu", func(p *domain.StudentProfile) { p.Status = domain.StatusActive })
	f.seedStudent(t, "s2", "Ben", "ben@school.edu")
	f.seedStudent(t, "s3", "Cy", "cy@school.edu", func(p *domain.StudentProfile) { p.Status = domain.StatusActive })

	stats, err := f.dashboard.Stats(f.ctx, instructorSess)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{TotalStudents: 3, ActiveStudents: 2}, *stats)

	_, err = f.rosters.SaveRoster(f.ctx, instructorSess, []string{"s1", "s2", "ghost"})
	require.NoError(t, err)
	pushUp(t, f)
	require.NoError(t, f.students.UpdateStatus(f.ctx, instructorSess, "s2", domain.StatusActive))

	stats, err = f.dashboard.Stats(f.ctx, instructorSess)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{TotalStudents: 3, ActiveStudents: 3, RosterStudents: 3, AssignedExercises: 1}, *stats)
}

func TestTrendBucketsDaily(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	points, bucket, err := trendBuckets(domain.TrendDaily, now)
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, "Mar 04", points[0].Label)
	assert.Equal(t, "Mar 10", points[6].Label)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), bucket(now))
}

func TestTrendBucketsMonthlyAndYearly(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	points, _, err := trendBuckets(domain.TrendMonthly, now)
	require.NoError(t, err)
	require.Len(t, points, 12)
	assert.Equal(t, "Apr 2024", points[0].Label)
	assert.Equal(t, "Mar 2025", points[11].Label)

	points, _, err = trendBuckets(domain.TrendYearly, now)
	require.NoError(t, err)
	require.Len(t, points, 5)
	assert.Equal(t, "2021", points[0].Label)
	assert.Equal(t, "2025", points[4].Label)

	_, _, err = trendBuckets("hourly", now)
	assert.ErrorIs(t, err, ErrInvalidTrendRange)
}

func TestPerformanceTrendCountsOwnRecordsInWindow(t *testing.T) {
	f := newFixture(t)
	f.dashboard.now = func() time.Time { return time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC) }
	a := pushUp(t, f)
	other, err := f.assignments.CreateAssignment(f.ctx, otherInstSess, domain.ExerciseSpec{ExerciseName: "Squat", Repetitions: intPtr(5), DueDate: "2025-04-01"})
	require.NoError(t, err)

	for _, r := range []struct {
		assignment string
		at         time.Time
	}{
		{a.ID, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
		{a.ID, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		{a.ID, time.Date(2025, 3, 4, 23, 59, 0, 0, time.UTC)},
		{a.ID, time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)}, // outside the window
		{other.ID, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
	} {
		_, err := f.store.PerformedExercises.Create(f.ctx, &domain.PerformedExercise{AssignmentID: r.assignment, StudentID: "s1", Duration: "1m", PerformedAt: r.at})
		require.NoError(t, err)
	}

	points, err := f.dashboard.PerformanceTrend(f.ctx, instructorSess, domain.TrendDaily)
	require.NoError(t, err)
	counts := make([]int, len(points))
	for i, p := range points {
		counts[i] = p.Count
	}
	assert.Equal(t, []int{1, 0, 0, 0, 0, 0, 2}, counts)
}
