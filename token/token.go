// Package token mints and verifies the signed session tokens that bind a
// principal's identity to subsequent requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/knowtasks/knowtasks/core"
)

const DefaultTTL = 24 * time.Hour

type claims struct {
	jwt.RegisteredClaims
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  core.Role `json:"role"`
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // overridable in tests
}

var _ core.TokenIssuer = (*Issuer)(nil)

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue mints a token asserting the principal's identity, valid from now
// until now+ttl.
func (i *Issuer) Issue(p *core.Principal) (string, error) {
	now := i.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
	})

	return t.SignedString(i.secret)
}

// Verify checks the signature and validity window and returns the asserted
// claims. It fails closed: malformed input of any shape (wrong segment
// count, bad base64, non-JSON payload, tampered signature) yields an error,
// never a panic.
func (i *Issuer) Verify(tokenString string) (*core.Claims, error) {
	if tokenString == "" {
		return nil, core.ErrInvalidToken
	}

	c := &claims{}
	t, err := jwt.ParseWithClaims(tokenString, c,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, core.ErrInvalidToken
	}
	if !t.Valid || c.Subject == "" {
		return nil, core.ErrInvalidToken
	}

	return &core.Claims{
		PrincipalID: c.Subject,
		Email:       c.Email,
		Name:        c.Name,
		Role:        c.Role,
	}, nil
}
