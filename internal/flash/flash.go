// Package flash carries a one-shot, human-readable message across a single
// redirect boundary. The message rides in an HTTP-only cookie set on response
// N and is read-and-cleared on request N+1, so a page reload never shows it
// twice.
package flash

import (
	"encoding/base64"
	"net/http"
)

// CookieName is the message carrier cookie.
const CookieName = "message"

// Set attaches the message to the outgoing response. The value is
// base64url-encoded so arbitrary text survives cookie value rules.
func Set(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take reads the pending message off the incoming request and clears the
// carrier in the same step. Returns false when there is nothing pending.
// A cookie that fails to decode is still cleared.
func Take(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return "", false
	}
	return string(raw), true
}
