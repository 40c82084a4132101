package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Database operations)
// ============================================

// PrincipalStore defines principal-related database operations.
//
// FindByEmail expects an already-normalized email and returns
// ErrPrincipalNotFound on a miss. Create returns ErrDuplicateEmail when the
// email uniqueness constraint is violated. The mutation methods are
// idempotent single-row updates.
type PrincipalStore interface {
	Create(ctx context.Context, p *Principal) error
	FindByID(ctx context.Context, id string) (*Principal, error)
	FindByEmail(ctx context.Context, email string) (*Principal, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// ContentStore defines content-item database operations.
type ContentStore interface {
	CreateItem(ctx context.Context, item *ContentItem) error
	GetItem(ctx context.Context, id string) (*ContentItem, error)
	ListItems(ctx context.Context, filter ContentFilter) ([]*ContentItem, error)
	UpdateItem(ctx context.Context, item *ContentItem) error
	DeleteItem(ctx context.Context, id string) error
}

// ContentFilter narrows ListItems results. Zero-value fields are ignored.
type ContentFilter struct {
	OwnerID string
	Kind    ContentKind
	Subject string
	Limit   int
}

// ============================================
// TOKEN PORT
// ============================================

// TokenIssuer mints and verifies session tokens.
//
// Verify must fail closed: any malformed, tampered, or expired token
// yields a nil Claims and an error, never a panic.
type TokenIssuer interface {
	Issue(p *Principal) (string, error)
	Verify(token string) (*Claims, error)
}

// ============================================
// THROTTLE PORT
// ============================================

// LoginThrottle bounds failed login attempts per identifier, and
// optionally per client IP.
//
// Check returns ErrTooManyAttempts once either dimension has exhausted
// its attempt budget for the current window. clientIP may be empty;
// implementations without an IP dimension ignore it. Reset clears only
// the identifier counter: a successful login must not discharge an IP
// that is also probing other accounts.
type LoginThrottle interface {
	Check(ctx context.Context, identifier, clientIP string) error
	RecordFailure(ctx context.Context, identifier, clientIP string) error
	Reset(ctx context.Context, identifier string) error
}

// ============================================
// BLOB PORT
// ============================================

// UploadStore hands out short-lived URLs for direct file transfer against
// object storage. The service never proxies file bytes itself.
type UploadStore interface {
	PresignPut(ctx context.Context, ownerID string) (key, url string, err error)
	PresignGet(ctx context.Context, key string) (url string, err error)
}
