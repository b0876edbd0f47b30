package parse

import (
	"errors"
	"fmt"
)

// Parse errors.
var (
	// ErrEmptyInput indicates the token stream was empty.
	ErrEmptyInput = errors.New("parse: empty input")

	// ErrEmptyStage indicates a pipeline stage with no command,
	// such as a leading, trailing, or doubled pipe.
	ErrEmptyStage = errors.New("parse: empty pipeline stage")

	// ErrMissingRedirectTarget indicates a redirect operator with no
	// following token.
	ErrMissingRedirectTarget = errors.New("parse: redirect missing target")
)

// ParseError describes a pipeline syntax failure. It wraps one of the
// sentinel errors above and carries the offending token when known.
type ParseError struct {
	Token string // offending token, "" when not applicable
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v near %q", e.Err, e.Token)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(token string, err error) *ParseError {
	return &ParseError{Token: token, Err: err}
}
