package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidCredentials is returned when an email/password pair does not match
// a stored user. The message mirrors what hosted auth providers return so that
// clients can recognise it.
var ErrInvalidCredentials = errors.New("Invalid login credentials")

// ErrEmailNotConfirmed is returned on sign-in when email confirmation is
// required and the user has not confirmed yet.
var ErrEmailNotConfirmed = errors.New("Email not confirmed")

// ErrUserExists is returned on sign-up when the email is already registered.
var ErrUserExists = errors.New("User already registered")

// ErrUnauthorized is returned when a request carries no valid access token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller is authenticated but not privileged.
var ErrForbidden = errors.New("forbidden")
