package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/flash"
)

// TokenCookie is the identity carrier: an HTTP-only cookie holding the
// signed token, never exposed to client-side script.
const TokenCookie = "token"

// Gate messages, shown via the flash channel on rejection.
const (
	MsgAuthRequired = "Authentication required!"
	MsgTokenInvalid = "Invalid or expired token!"
	MsgAdminsOnly   = "Access denied! Admins only."
)

type ctxKey int

const claimsKey ctxKey = 1

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// SetTokenCookie installs the identity carrier on the response.
func SetTokenCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie discards the identity carrier. This is the whole of
// logout: there is no server-side revocation.
func ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PeekClaims decodes the identity cookie without gating anything. Public
// pages use it to show who is signed in; an absent or bad token just reads
// as anonymous.
func PeekClaims(r *http.Request, signer *Signer) *Claims {
	c, err := r.Cookie(TokenCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	claims, err := signer.Validate(c.Value)
	if err != nil {
		return nil
	}
	return claims
}

// RequireAuth admits only requests carrying a valid identity cookie. A
// missing cookie redirects to the public entry point; a tampered, malformed
// or expired token clears the carrier and redirects to login. The three
// invalid cases are handled identically but logged distinctly.
func RequireAuth(signer *Signer, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(TokenCookie)
			if err != nil || c.Value == "" {
				flash.Set(w, MsgAuthRequired)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			claims, err := signer.Validate(c.Value)
			if err != nil {
				if logger != nil {
					logger.Printf("token rejected: %v", err)
				}
				ClearTokenCookie(w)
				flash.Set(w, MsgTokenInvalid)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin runs strictly after RequireAuth, so an invalid token can never
// reach the role check. Authenticated non-admins are turned away with a
// distinct message.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok {
			// Gate ordering bug if we ever get here; fail closed.
			flash.Set(w, MsgAuthRequired)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if !claims.IsAdmin() {
			flash.Set(w, MsgAdminsOnly)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MustClaims extracts claims inside a gated handler.
func MustClaims(r *http.Request) (*Claims, error) {
	if c, ok := FromContext(r.Context()); ok {
		return c, nil
	}
	return nil, errors.New("no claims in context")
}
