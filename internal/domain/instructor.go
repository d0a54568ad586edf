package domain

import "time"

// InstructorProfile is the document kept in the "instructors" collection.
type InstructorProfile struct {
	ID         string    `bson:"_id" json:"id"`
	FullName   string    `bson:"fullName" json:"fullName"`
	Email      string    `bson:"email" json:"email"`
	Department string    `bson:"department" json:"department"`
	Expertise  string    `bson:"expertise" json:"expertise"`
	Role       string    `bson:"role" json:"role"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	LastActive time.Time `bson:"lastActive" json:"lastActive"`
	UpdatedAt  time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// InstructorRole is the value of the role field on instructor documents.
const InstructorRole = "instructor"

// ProfileUpdate carries the instructor-editable profile fields.
type ProfileUpdate struct {
	FullName   string `json:"fullName" validate:"max=120"`
	Department string `json:"department" validate:"max=120"`
	Expertise  string `json:"expertise" validate:"max=500"`
}
