package domain

import "time"

// ClassRoster is the single roster an instructor owns. Its document id is the
// instructor id. Students is a set persisted as an array and is always
// rewritten as a whole.
type ClassRoster struct {
	InstructorID string    `bson:"instructorId" json:"instructorId"`
	Students     []string  `bson:"students" json:"students"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StudentIDSet is an insertion-ordered set of student ids.
type StudentIDSet struct {
	ids   []string
	index map[string]struct{}
}

// NewStudentIDSet builds a set from ids, dropping blanks and duplicates while
// keeping the order of first occurrence.
func NewStudentIDSet(ids ...string) StudentIDSet {
	s := StudentIDSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id unless it is blank or already present.
func (s *StudentIDSet) Add(id string) {
	if id == "" {
		return
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Has reports whether id is in the set.
func (s StudentIDSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of ids in the set.
func (s StudentIDSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the ids in insertion order. Never nil.
func (s StudentIDSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// RosterCandidate is a student row of the roster picker.
type RosterCandidate struct {
	StudentProfile
	Selected bool `json:"selected"`
}
