package models

// ValidationError represents a local validation failure. The message is the
// exact text shown to the user; these errors never reach the database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PreconditionError represents a state error: the caller attempted an
// operation whose preconditions are not met (e.g. checkout with no room
// selected). The RedirectTo hint tells the client where to recover.
type PreconditionError struct {
	Message    string
	RedirectTo string
}

func (e *PreconditionError) Error() string {
	return e.Message
}
