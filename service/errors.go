package service

// AuthError is a non-2xx response from the login or register endpoint. The
// server message is surfaced to the user verbatim.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ProcessError is a failed processing attempt: a non-2xx response from the
// process endpoint, or a 2xx response with no extracted clauses.
type ProcessError struct {
	Status  int
	Message string
}

func (e *ProcessError) Error() string {
	return e.Message
}
