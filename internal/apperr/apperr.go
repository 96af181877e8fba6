// Package apperr defines the tagged error kinds surfaced to API clients.
// The kind names are the wire contract: they are serialized verbatim as
// {"error": "<Kind>"} bodies.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	// Login pipeline (400).
	MissingLoginDetails Kind = "MissingLoginDetailsError"
	MissingUsername     Kind = "MissingUsernameError"
	MissingPassword     Kind = "MissingPasswordError"
	InvalidUsername     Kind = "InvalidUsernameError"
	NonExistentUser     Kind = "NonExistentUserError"
	IncorrectPassword   Kind = "IncorrectPasswordError"

	// Sign-up and document input (400).
	MissingFirstName   Kind = "MissingFirstNameError"
	MissingLastName    Kind = "MissingLastNameError"
	UserAlreadyExists  Kind = "UserAlreadyExistsError"
	MissingTitle       Kind = "MissingTitleError"
	MissingContent     Kind = "MissingContentError"
	InvalidAccessLevel Kind = "InvalidAccessLevelError"
	InvalidRequest     Kind = "InvalidRequestError"

	// Authentication (401).
	MissingToken Kind = "MissingTokenError"
	InvalidToken Kind = "InvalidTokenError"
	ExpiredToken Kind = "ExpiredTokenError"

	// Authorization (403).
	Forbidden Kind = "ForbiddenError"

	// Lookup misses (404).
	UserNotFound     Kind = "UserNotFoundError"
	DocumentNotFound Kind = "DocumentNotFoundError"

	// Everything unclassified: persistence faults, signing failures (500).
	Server Kind = "ServerError"
)

// Error carries a Kind plus an optional wrapped cause. The cause never
// reaches the client; only the kind does.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind) *Error { return &Error{Kind: kind} }

func Wrap(kind Kind, err error) *Error { return &Error{Kind: kind, Err: err} }

// KindOf extracts the kind from err, falling back to Server for anything
// that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Server
}

// Is lets errors.Is match two *Errors by kind alone.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case MissingLoginDetails, MissingUsername, MissingPassword, InvalidUsername,
		NonExistentUser, IncorrectPassword,
		MissingFirstName, MissingLastName, UserAlreadyExists,
		MissingTitle, MissingContent, InvalidAccessLevel, InvalidRequest:
		return http.StatusBadRequest
	case MissingToken, InvalidToken, ExpiredToken:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case UserNotFound, DocumentNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
