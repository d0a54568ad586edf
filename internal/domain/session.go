package domain

// Session identifies the caller of a request. It is built from the bearer
// token by the API layer and passed explicitly into every service call.
type Session struct {
	UID         string
	Email       string
	DisplayName string
	Kind        AccountKind
}

// Authenticated reports whether the session carries an account id.
func (s Session) Authenticated() bool {
	return s.UID != ""
}

// IsInstructor reports whether the session belongs to an instructor account.
func (s Session) IsInstructor() bool {
	return s.Kind == AccountInstructor
}
