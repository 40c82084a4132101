package core

import "errors"

// Authentication errors.
//
// ErrInvalidCredentials covers both unknown-email and wrong-password so a
// caller cannot enumerate accounts by comparing failure responses.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")    // 401 Unauthorized
	ErrInvalidToken       = errors.New("invalid session token")        // 401
	ErrTokenExpired       = errors.New("session token expired")        // 401
	ErrAccountPending     = errors.New("account not yet approved")     // 403
	ErrAccountInactive    = errors.New("account has been deactivated") // 403
	ErrTooManyAttempts    = errors.New("too many login attempts")      // 429
)

// Principal store errors
var (
	ErrPrincipalNotFound = errors.New("principal not found")      // 404 (never surfaced on login paths)
	ErrDuplicateEmail    = errors.New("email already registered") // 409 Conflict
)

// Content errors
var (
	ErrContentNotFound = errors.New("content item not found")                // 404
	ErrNotOwner        = errors.New("content item belongs to another user") // 403
)

// Validation errors (client input)
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")                            // 401
	ErrInvalidAuthHeader = errors.New("invalid authorization format, expected 'Bearer <token>'") // 401
	ErrEmailRequired     = errors.New("email is required")                                       // 400
	ErrInvalidEmail      = errors.New("invalid email format")                                    // 400
	ErrPasswordRequired  = errors.New("password is required")                                    // 400
	ErrPasswordTooShort  = errors.New("password is too short")                                   // 400
	ErrPasswordTooLong   = errors.New("password is too long")                                    // 400
	ErrNameRequired      = errors.New("name is required")                                        // 400
	ErrTitleRequired     = errors.New("title is required")                                       // 400
	ErrSubjectRequired   = errors.New("subject is required")                                     // 400
	ErrInvalidKind       = errors.New("invalid content kind")                                    // 400
	ErrInvalidStatus     = errors.New("invalid account status")                                  // 400
	ErrForbidden         = errors.New("insufficient permissions")                                // 403
)
