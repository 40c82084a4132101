package core

import "strings"

const (
	minPasswordLen = 8
	// bcrypt truncates input beyond 72 bytes; reject instead of silently truncating.
	maxPasswordLen = 72
)

// NormalizeEmail canonicalizes an email for lookup and storage:
// surrounding whitespace is trimmed and the address is case-folded.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that an already-normalized email is present and
// structurally plausible. Full RFC parsing is the mail layer's problem;
// we only gate obvious garbage before it reaches the store.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return ErrInvalidEmail
	}
	if !strings.Contains(email[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces length bounds on a candidate secret.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case len(password) < minPasswordLen:
		return ErrPasswordTooShort
	case len(password) > maxPasswordLen:
		return ErrPasswordTooLong
	}
	return nil
}

// ValidStatus reports whether s is one of the known account statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}

// ValidKind reports whether k is one of the known content kinds.
func ValidKind(k ContentKind) bool {
	switch k {
	case KindNote, KindFormula, KindFlashcard, KindPYQ:
		return true
	}
	return false
}
