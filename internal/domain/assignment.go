package domain

import (
	"time"
)

// ExerciseAssignment is an exercise an instructor assigns to their whole roster.
// Completion is never stored on it; it is derived from its PerformedExercise records.
type ExerciseAssignment struct {
	ID            string    `bson:"_id" json:"id"`
	InstructorID  string    `bson:"instructorId" json:"instructorId"`
	ClassRosterID string    `bson:"classRosterId" json:"classRosterId"` // Currently always the instructor id
	ExerciseName  string    `bson:"exerciseName" json:"exerciseName"`
	Repetitions   *int      `bson:"repetitions" json:"repetitions"` // nil when IsUnlimited
	IsUnlimited   bool      `bson:"isUnlimited" json:"isUnlimited"`
	DueDate       time.Time `bson:"dueDate" json:"dueDate"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// AssignmentView joins an assignment with its live completion count.
type AssignmentView struct {
	ExerciseAssignment
	CompletionCount int `json:"completionCount"`
}

// ExerciseSpec is the instructor's input for a new assignment.
type ExerciseSpec struct {
	ExerciseName string `json:"exerciseName" validate:"required,notblank,max=100"`
	Repetitions  *int   `json:"repetitions"`
	IsUnlimited  bool   `json:"isUnlimited"`
	DueDate      string `json:"dueDate" validate:"required"`
}

// AssignmentUpdate holds the only fields that may change after creation.
type AssignmentUpdate struct {
	Repetitions *int   `json:"repetitions"`
	IsUnlimited bool   `json:"isUnlimited"`
	DueDate     string `json:"dueDate" validate:"required"`
}

// PerformedExercise is one attempt a student recorded against an assignment.
// Stored in "performedExercises" keyed by AssignmentID.
type PerformedExercise struct {
	ID           string    `bson:"_id" json:"id"`
	AssignmentID string    `bson:"assignmentId" json:"assignmentId"`
	StudentID    string    `bson:"uid" json:"uid"`
	Duration     string    `bson:"duration" json:"duration"`
	Repetition   int       `bson:"repetition" json:"repetition"`
	PerformedAt  time.Time `bson:"time_and_date" json:"timeAndDate"`
	Accomplished bool      `bson:"accomplished" json:"accomplished"`
}

// PerformedExerciseView adds the resolved student name to a performed record.
type PerformedExerciseView struct {
	PerformedExercise
	StudentName string `json:"studentName"`
}

// UnknownStudentName is shown when a performed record's student has no profile.
const UnknownStudentName = "Unknown Student"

// PerformanceInput is what a student submits after doing an exercise.
type PerformanceInput struct {
	Duration     string `json:"duration" validate:"required,max=50"`
	Repetition   int    `json:"repetition" validate:"gte=0"`
	Accomplished bool   `json:"accomplished"`
}
