package domain

import "time"

// Announcement is a message to the students that were on the roster when it
// was created. Students is a copy taken at creation time and is never
// re-synced with the roster.
type Announcement struct {
	ID            string    `bson:"_id" json:"id"`
	InstructorID  string    `bson:"instructorId" json:"instructorId"`
	ClassRosterID string    `bson:"classRosterId" json:"classRosterId"`
	Students      []string  `bson:"students" json:"students"`
	Title         string    `bson:"title" json:"title"`
	Message       string    `bson:"message" json:"message"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
}

// AnnouncementInput is the instructor's form input.
type AnnouncementInput struct {
	Title   string `json:"title" validate:"required,notblank,max=200"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}
