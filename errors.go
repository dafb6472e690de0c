package session

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrEmptyUserName is returned when a display name mutation carries no name.
var ErrEmptyUserName = goerrors.New("display name must not be empty", goerrors.CategoryValidation).
	WithTextCode("EMPTY_USER_NAME").
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidForm is returned when a form submission fails field validation.
var ErrInvalidForm = goerrors.New("form validation failed", goerrors.CategoryValidation).
	WithTextCode("INVALID_FORM").
	WithCode(goerrors.CodeBadRequest)

// ErrSubmissionInFlight is returned when a form is submitted while a previous
// submission is still pending.
var ErrSubmissionInFlight = goerrors.New("submission already in flight", goerrors.CategoryConflict).
	WithTextCode("SUBMISSION_IN_FLIGHT").
	WithCode(goerrors.CodeConflict)

// ErrAuthenticationFailed is the generic failure surfaced by auth flows.
var ErrAuthenticationFailed = goerrors.New("authentication failed", goerrors.CategoryAuth).
	WithTextCode("AUTHENTICATION_FAILED").
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionSuperseded is returned when an in-flight login resolves after the
// session was cleared; the result is discarded instead of resurrecting the
// previous identity.
var ErrSessionSuperseded = goerrors.New("session cleared while request in flight", goerrors.CategoryConflict).
	WithTextCode("SESSION_SUPERSEDED").
	WithCode(goerrors.CodeConflict)

// ErrGuardTimeout is returned when the authenticated signal produced no value
// within the guard's decision window. The guard resolves it to Denied.
var ErrGuardTimeout = goerrors.New("guard decision timed out", goerrors.CategoryOperation).
	WithTextCode("GUARD_TIMEOUT")

// ErrKeyNotFound is returned by Storage backends when no record exists under
// the requested key. The credential store maps it to the empty identity.
var ErrKeyNotFound = goerrors.New("credential record not found", goerrors.CategoryNotFound).
	WithTextCode("KEY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrMismatchedHashAndPassword mirrors the bcrypt mismatch without leaking
// which of user or password was wrong.
var ErrMismatchedHashAndPassword = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("CREDENTIALS_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountConflict is returned when a registration collides with an
// existing account.
var ErrAccountConflict = goerrors.New("account already exists", goerrors.CategoryConflict).
	WithTextCode("ACCOUNT_CONFLICT").
	WithCode(goerrors.CodeConflict)

// ErrTokenMalformed is returned for tokens that cannot be parsed.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// IsNotFound reports whether err represents a missing storage record.
func IsNotFound(err error) bool {
	return goerrors.IsNotFound(err)
}
