package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AccountKind says which profile collection an account belongs to.
type AccountKind string

const (
	AccountStudent    AccountKind = "student"
	AccountInstructor AccountKind = "instructor"
)

// DefaultInstructorDomain is the email suffix that marks instructor accounts.
const DefaultInstructorDomain = "@dict.gov.ph"

// ClassifyAccount decides whether email belongs to an instructor or a student
// using DefaultInstructorDomain.
func ClassifyAccount(email string) AccountKind {
	return ClassifyAccountFor(email, DefaultInstructorDomain)
}

// ClassifyAccountFor is ClassifyAccount with a configurable instructor email
// suffix. An empty instructorDomain falls back to DefaultInstructorDomain.
func ClassifyAccountFor(email, instructorDomain string) AccountKind {
	if instructorDomain == "" {
		instructorDomain = DefaultInstructorDomain
	}
	if strings.HasSuffix(Fold(strings.TrimSpace(email)), Fold(instructorDomain)) {
		return AccountInstructor
	}
	return AccountStudent
}

// NewAccount is the payload of the account-created hook.
type NewAccount struct {
	UID         string `json:"uid" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName"`
}

// NewStudentProfile returns the initial student document for a fresh account.
func NewStudentProfile(acct NewAccount) *StudentProfile {
	return &StudentProfile{
		ID:           acct.UID,
		Name:         acct.DisplayName,
		Email:        acct.Email,
		Course:       NotSet,
		YearLevel:    NotSet,
		FitnessLevel: "Beginner",
		Status:       StatusPending,
		SearchTerms:  BuildSearchTerms(acct.DisplayName, acct.Email),
	}
}

// NewInstructorProfile returns the initial instructor document for a fresh account.
func NewInstructorProfile(acct NewAccount) *InstructorProfile {
	return &InstructorProfile{
		ID:       acct.UID,
		FullName: acct.DisplayName,
		Email:    acct.Email,
		Role:     InstructorRole,
	}
}

// BuildSearchTerms lowercases each value and drops empty ones.
func BuildSearchTerms(values ...string) []string {
	lower := cases.Lower(language.Und)
	terms := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		terms = append(terms, lower.String(v))
	}
	return terms
}

// Fold returns s case-folded for case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}
