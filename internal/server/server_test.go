package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/auth"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/contact"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/server"
)

func newTestServer(t *testing.T) (*httptest.Server, *auth.MemoryAccountStore, *contact.MemoryStore) {
	t.Helper()
	accounts := auth.NewMemoryAccountStore()
	contacts := contact.NewMemoryStore()
	srv, err := server.NewWithStores(server.Config{JWTSecret: "test-secret"}, accounts, contacts)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, accounts, contacts
}

// newBrowser returns a client with a cookie jar, like a real browser
// carrying the token and message cookies across redirects.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	res, err := c.PostForm(rawURL, form)
	require.NoError(t, err)
	return res
}

func get(t *testing.T, c *http.Client, rawURL string) *http.Response {
	t.Helper()
	res, err := c.Get(rawURL)
	require.NoError(t, err)
	return res
}

func TestHealth(t *testing.T) {
	ts, _, _ := newTestServer(t)
	res := get(t, newBrowser(t), ts.URL+"/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", readBody(t, res))
}

func TestUnknownPath(t *testing.T) {
	ts, _, _ := newTestServer(t)
	res := get(t, newBrowser(t), ts.URL+"/no-such-page")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	readBody(t, res)
}

func TestRegisterLoginAndAdminGate(t *testing.T) {
	ts, accounts, contacts := newTestServer(t)
	browser := newBrowser(t)
	ctx := context.Background()

	// A visitor leaves a contact record.
	res := postForm(t, browser, ts.URL+"/contact", url.Values{
		"name": {"Walk-in Visitor"}, "phone": {"555-0100"}, "email": {"v@x.com"},
		"desc": {"Interested in salsa classes"},
	})
	body := readBody(t, res)
	assert.Contains(t, body, "Your form has been successfully submitted")

	// Registration succeeds exactly once.
	res = postForm(t, browser, ts.URL+"/register", url.Values{
		"username": {"alice"}, "email": {"a@x.com"}, "password": {"pw123"},
	})
	body = readBody(t, res)
	assert.Contains(t, body, "Registration successful! You can now log in.")
	assert.True(t, strings.HasSuffix(res.Request.URL.Path, "/login"))

	// Same username, different email: collision names the username field.
	res = postForm(t, browser, ts.URL+"/register", url.Values{
		"username": {"alice"}, "email": {"other@x.com"}, "password": {"pw123"},
	})
	body = readBody(t, res)
	assert.Contains(t, body, "Username is already taken. Please choose another.")

	// Same email, different username: collision names the email field.
	res = postForm(t, browser, ts.URL+"/register", url.Values{
		"username": {"bob"}, "email": {"a@x.com"}, "password": {"pw123"},
	})
	body = readBody(t, res)
	assert.Contains(t, body, "Email is already registered. Please use another email.")

	// Login failures use the per-step messages.
	res = postForm(t, browser, ts.URL+"/login", url.Values{
		"usernameOrEmail": {"nobody"}, "password": {"pw123"},
	})
	assert.Contains(t, readBody(t, res), "Invalid username or email.")

	res = postForm(t, browser, ts.URL+"/login", url.Values{
		"usernameOrEmail": {"alice"}, "password": {"wrong"},
	})
	assert.Contains(t, readBody(t, res), "Invalid password.")

	// Successful login lands on home with the welcome message and sets the
	// identity cookie.
	res = postForm(t, browser, ts.URL+"/login", url.Values{
		"usernameOrEmail": {"alice"}, "password": {"pw123"},
	})
	body = readBody(t, res)
	assert.Contains(t, body, "Welcome back, alice!")
	assert.Contains(t, body, "Signed in as alice")
	tsURL, _ := url.Parse(ts.URL)
	hasToken := false
	for _, c := range browser.Jar.Cookies(tsURL) {
		if c.Name == auth.TokenCookie && c.Value != "" {
			hasToken = true
		}
	}
	assert.True(t, hasToken, "identity cookie should be set after login")

	// Ordinary users are turned away from the listing.
	res = get(t, browser, ts.URL+"/userdata")
	body = readBody(t, res)
	assert.Contains(t, body, "Access denied! Admins only.")
	assert.True(t, strings.HasSuffix(res.Request.URL.Path, "/login"))

	// Out-of-band promotion, then a fresh login picks up the new role.
	require.NoError(t, accounts.UpdateRole(ctx, "alice", auth.RoleAdmin))
	res = postForm(t, browser, ts.URL+"/login", url.Values{
		"usernameOrEmail": {"alice"}, "password": {"pw123"},
	})
	readBody(t, res)

	res = get(t, browser, ts.URL+"/userdata")
	require.Equal(t, http.StatusOK, res.StatusCode)
	body = readBody(t, res)
	assert.Contains(t, body, "Walk-in Visitor")
	assert.Contains(t, body, "Viewing as alice (admin)")

	records, err := contacts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAnonymousUserdataRedirectsHome(t *testing.T) {
	ts, _, _ := newTestServer(t)
	browser := newBrowser(t)

	res := get(t, browser, ts.URL+"/userdata")
	body := readBody(t, res)
	assert.Contains(t, body, "Authentication required!")
	assert.Equal(t, "/", res.Request.URL.Path)
}

func TestLogoutClearsIdentity(t *testing.T) {
	ts, _, _ := newTestServer(t)
	browser := newBrowser(t)

	res := postForm(t, browser, ts.URL+"/register", url.Values{
		"username": {"carol"}, "email": {"c@x.com"}, "password": {"pw123"},
	})
	readBody(t, res)
	res = postForm(t, browser, ts.URL+"/login", url.Values{
		"usernameOrEmail": {"carol"}, "password": {"pw123"},
	})
	readBody(t, res)

	res = get(t, browser, ts.URL+"/logout")
	body := readBody(t, res)
	assert.Contains(t, body, "Logged out successfully.")

	tsURL, _ := url.Parse(ts.URL)
	for _, c := range browser.Jar.Cookies(tsURL) {
		assert.NotEqual(t, auth.TokenCookie, c.Name, "token cookie should be gone")
	}

	res = get(t, browser, ts.URL+"/userdata")
	body = readBody(t, res)
	assert.Contains(t, body, "Authentication required!")
}

func TestFlashShownExactlyOnce(t *testing.T) {
	ts, _, _ := newTestServer(t)
	browser := newBrowser(t)

	res := postForm(t, browser, ts.URL+"/register", url.Values{
		"username": {"dave"}, "email": {"d@x.com"}, "password": {"pw123"},
	})
	assert.Contains(t, readBody(t, res), "Registration successful!")

	// Reload: the one-shot message is gone.
	res = get(t, browser, ts.URL+"/login")
	assert.NotContains(t, readBody(t, res), "Registration successful!")
}

func TestRegisterValidation(t *testing.T) {
	ts, _, _ := newTestServer(t)
	browser := newBrowser(t)

	res := postForm(t, browser, ts.URL+"/register", url.Values{
		"username": {"eve"}, "email": {"not-an-email"}, "password": {"pw123"},
	})
	body := readBody(t, res)
	assert.Contains(t, body, "Registration failed. Please try again.")
	assert.True(t, strings.HasSuffix(res.Request.URL.Path, "/register"))
}

func TestLoginRateLimitPerIdentifier(t *testing.T) {
	ts, _, _ := newTestServer(t)

	// Per-identifier burst is 5; hammering one account from fresh browsers
	// trips it even though each request succeeds the IP check.
	var body string
	for i := 0; i < 6; i++ {
		browser := newBrowser(t)
		res := postForm(t, browser, ts.URL+"/login", url.Values{
			"usernameOrEmail": {"target"}, "password": {"wrong"},
		})
		body = readBody(t, res)
	}
	assert.Contains(t, body, "Too many attempts. Please try again later.")
}
