package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a registered identity. PassHash is the argon2id encoded string;
// the plaintext password is never stored anywhere.
type Account struct {
	ID        string
	Username  string
	Email     string
	PassHash  string
	Role      Role
	CreatedAt time.Time
}

// Claims is the verified payload of an identity token. The account ID rides
// in the registered Subject field.
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// AccountID is the subject of the token.
func (c *Claims) AccountID() string { return c.Subject }

func (c *Claims) IsAdmin() bool { return c.Role == RoleAdmin }

// LoginResult is what a successful login produces: the account plus a signed
// token for the identity cookie.
type LoginResult struct {
	Account   *Account
	Token     string
	ExpiresAt time.Time
}
