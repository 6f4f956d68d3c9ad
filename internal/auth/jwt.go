package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer issues and validates HS256 identity tokens. Logout is client-side
// cookie removal only; there is no revocation list, so a leaked token stays
// valid until its expiry. Keep TTL short.
type Signer struct {
	Secret []byte
	Iss    string        // issuer, e.g. "danceacademy"
	TTL    time.Duration // e.g. 30 * time.Minute
}

func NewSigner(secret []byte, iss string, ttl time.Duration) *Signer {
	return &Signer{Secret: secret, Iss: iss, TTL: ttl}
}

// Issue signs a token for the account. The returned expiry is also the
// natural lifetime of the identity cookie.
func (s *Signer) Issue(accountID, username string, role Role) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.TTL)

	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Iss,
			Subject:   accountID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := tok.SignedString(s.Secret)
	return ss, exp, err
}

// Validate checks signature, issuer and expiry. Any failure comes back
// wrapped in ErrTokenInvalid; the wrapped cause is for logging only, callers
// must not branch on it.
func (s *Signer) Validate(tokenStr string) (*Claims, error) {
	keyFunc := func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	}

	tok, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		keyFunc,
		jwt.WithIssuer(s.Iss),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
