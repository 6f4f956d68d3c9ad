package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/flash"
)

func flashFromResponse(t *testing.T, res *http.Response) string {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == flash.CookieName && c.MaxAge >= 0 && c.Value != "" {
			raw, err := base64.RawURLEncoding.DecodeString(c.Value)
			require.NoError(t, err)
			return string(raw)
		}
	}
	return ""
}

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}), called
}

func TestRequireAuthNoCookie(t *testing.T) {
	signer := testSigner(30 * time.Minute)
	next, called := okHandler()
	h := RequireAuth(signer, nil)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/userdata", nil))

	res := rec.Result()
	assert.False(t, *called)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
	assert.Equal(t, MsgAuthRequired, flashFromResponse(t, res))
}

func TestRequireAuthInvalidToken(t *testing.T) {
	signer := testSigner(30 * time.Minute)

	expired, _, err := testSigner(-time.Minute).Issue("acc-1", "alice", RoleUser)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage": "definitely-not-a-jwt",
		"expired": expired,
	} {
		t.Run(name, func(t *testing.T) {
			next, called := okHandler()
			h := RequireAuth(signer, nil)(next)

			req := httptest.NewRequest(http.MethodGet, "/userdata", nil)
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			res := rec.Result()
			assert.False(t, *called)
			assert.Equal(t, http.StatusFound, res.StatusCode)
			assert.Equal(t, "/login", res.Header.Get("Location"))
			assert.Equal(t, MsgTokenInvalid, flashFromResponse(t, res))

			// Carrier gets discarded so the bad token is not replayed.
			cleared := false
			for _, c := range res.Cookies() {
				if c.Name == TokenCookie && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.True(t, cleared, "token cookie should be cleared")
		})
	}
}

func TestRequireAdminInsufficientRole(t *testing.T) {
	signer := testSigner(30 * time.Minute)
	token, _, err := signer.Issue("acc-1", "alice", RoleUser)
	require.NoError(t, err)

	next, called := okHandler()
	h := RequireAuth(signer, nil)(RequireAdmin(next))

	req := httptest.NewRequest(http.MethodGet, "/userdata", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	assert.False(t, *called)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
	assert.Equal(t, MsgAdminsOnly, flashFromResponse(t, res))
}

func TestRequireAdminAdmits(t *testing.T) {
	signer := testSigner(30 * time.Minute)
	token, _, err := signer.Issue("acc-1", "alice", RoleAdmin)
	require.NoError(t, err)

	var got *Claims
	h := RequireAuth(signer, nil)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/userdata", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got, "claims must be forwarded to the handler")
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, RoleAdmin, got.Role)
}

// A tampered token must fail at the identity check, never reaching the role
// check, even if its payload claims the admin role.
func TestGateOrderingFailsClosed(t *testing.T) {
	signer := testSigner(30 * time.Minute)
	forged, _, err := NewSigner([]byte("attacker"), "danceacademy", time.Hour).Issue("acc-1", "mallory", RoleAdmin)
	require.NoError(t, err)

	next, called := okHandler()
	h := RequireAuth(signer, nil)(RequireAdmin(next))

	req := httptest.NewRequest(http.MethodGet, "/userdata", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: forged})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	assert.False(t, *called)
	assert.Equal(t, MsgTokenInvalid, flashFromResponse(t, res), "identity failure message, not the role one")
}

func TestPeekClaims(t *testing.T) {
	signer := testSigner(30 * time.Minute)
	token, _, err := signer.Issue("acc-1", "alice", RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, PeekClaims(req, signer))

	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	claims := PeekClaims(req, signer)
	require.NotNil(t, claims)
	assert.Equal(t, "alice", claims.Username)
}
