package domain

// ExerciseCatalog lists the exercises the dashboard offers when assigning.
// Assignments are not restricted to it.
var ExerciseCatalog = []string{
	"Push-up",
	"Squat",
	"Sit-up",
	"Deadlift",
	"Chest Press",
	"Shoulder Press",
	"Lunges",
	"Warrior Yoga",
	"Tree Yoga",
}
