package domain

import (
	"time"
)

// StudentStatus is the lifecycle status an instructor sets on a student.
type StudentStatus string

const (
	StatusPending  StudentStatus = "pending"
	StatusActive   StudentStatus = "active"
	StatusInactive StudentStatus = "inactive"
)

// NotSet is the placeholder stored for profile fields the student has not filled in.
const NotSet = "Not Set"

// StudentStatuses lists every valid status.
var StudentStatuses = []StudentStatus{StatusPending, StatusActive, StatusInactive}

// IsValid reports whether s is one of the known statuses.
func (s StudentStatus) IsValid() bool {
	for _, known := range StudentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// StudentProfile is the document kept in the "users" collection.
// The ID is the student's account id at the identity provider.
type StudentProfile struct {
	ID           string        `bson:"_id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	Course       string        `bson:"course" json:"course"`
	YearLevel    string        `bson:"yearLevel" json:"yearLevel"`
	FitnessLevel string        `bson:"fitnessLevel" json:"fitnessLevel"`
	Status       StudentStatus `bson:"status" json:"status"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	LastActive   time.Time     `bson:"lastActive" json:"lastActive"`
	SearchTerms  []string      `bson:"searchTerms,omitempty" json:"-"` // Lowercased name and email
}
