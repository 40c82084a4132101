package core

import "time"

// Role classifies a principal's tier within the platform.
type Role string

const (
	RoleUser       Role = "user"
	RoleMentor     Role = "mentor"
	RoleSuperadmin Role = "superadmin"
)

// Status is the lifecycle state of a principal account.
//
// Mentors self-register as StatusPending and must be approved by a
// superadmin before they can authenticate.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Principal is any authenticable account: end user, mentor, or superadmin.
//
// This is the "identity" - who someone is
type Principal struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// ContentKind classifies an uploaded content item.
type ContentKind string

const (
	KindNote      ContentKind = "note"
	KindFormula   ContentKind = "formula"
	KindFlashcard ContentKind = "flashcard"
	KindPYQ       ContentKind = "pyq"
)

// ContentItem is a piece of study material owned by exactly one principal.
// Items carry classification metadata and an optional object-storage key
// pointing at the uploaded file. Items are never versioned.
type ContentItem struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"ownerId"`
	Kind      ContentKind `json:"kind"`
	Title     string      `json:"title"`
	Subject   string      `json:"subject"`
	Category  string      `json:"category,omitempty"`
	FileKey   *string     `json:"fileKey,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Claims is the identity asserted by a verified session token.
type Claims struct {
	PrincipalID string `json:"sub"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
}

// Identity is the resolved authentication state attached to a request by
// the middleware. Handlers requiring auth must check Authenticated.
type Identity struct {
	Claims        *Claims
	Authenticated bool
}
