// Package token issues and verifies the signed identity tokens used by the
// authentication middleware.
//
// Tokens are stateless HS256 JWTs with a fixed lifetime. Nothing is persisted
// server-side: a token is valid iff its signature checks out against the
// configured secret and its expiry has not passed. Rotating the secret
// invalidates every outstanding token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of portal roles. Roles are checked against a
// route's allowed set by the authorization middleware.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// ErrInvalidToken is returned for every verification failure: bad signature,
// expired, malformed, or unknown role claim. Collapsing the causes into one
// error keeps responses from revealing which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the fields encoded inside an identity token.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller attached to a request after
// authentication succeeds.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// Service signs and verifies identity tokens.
type Service struct {
	secret []byte
	ttl    time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewService creates a token Service with the given signing secret and token
// lifetime.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token for the given subject. The only side effect
// is the cryptographic signing itself.
func (s *Service) Issue(userID int64, email string, role Role) (string, error) {
	now := s.now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates signature and expiry and returns the encoded identity.
// Any failure is reported as ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
