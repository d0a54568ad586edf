package domain

import "time"

// DashboardStats are the headline numbers on the instructor dashboard.
type DashboardStats struct {
	TotalStudents     int `json:"totalStudents"`
	ActiveStudents    int `json:"activeStudents"`
	RosterStudents    int `json:"rosterStudents"`
	AssignedExercises int `json:"assignedExercises"`
}

// TrendRange selects the bucket size of the performance chart.
type TrendRange string

const (
	TrendDaily   TrendRange = "daily"
	TrendMonthly TrendRange = "monthly"
	TrendYearly  TrendRange = "yearly"
)

// TrendPoint is one bucket of the performance chart.
type TrendPoint struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}
