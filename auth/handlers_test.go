package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	tokens := newTestTokenService(time.Hour)
	handlers := NewHandlers(NewAuthService(NewMemoryUserRepository(), tokens))

	r := chi.NewRouter()
	r.Post("/register", handlers.HandleRegister())
	r.Post("/login", handlers.HandleLogin())
	r.Post("/logout", handlers.HandleLogout())
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(tokens))
		r.Get("/profile", handlers.HandleProfile())
	})
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == TokenCookieName {
			return c
		}
	}
	t.Fatal("token cookie not set")
	return nil
}

func TestRegisterSetsHTTPOnlyCookie(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", RegisterRequest{Username: "alice", Password: "pw1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)

	cookie := tokenCookie(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", RegisterRequest{Username: "alice", Password: "pw1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/register", RegisterRequest{Username: "alice", Password: "pw2"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username already exists")
}

func TestLoginWrongCredentials(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/register", RegisterRequest{Username: "alice", Password: "pw1"}, nil)

	w := doJSON(t, r, http.MethodPost, "/login", LoginRequest{Username: "alice", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestProfileReturnsIssuedClaims(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", RegisterRequest{Username: "alice", Password: "pw1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var registered AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	cookie := tokenCookie(t, w)

	w = doJSON(t, r, http.MethodGet, "/profile", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var claims Claims
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claims))
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestProfileWithoutTokenIsRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileWithTamperedTokenIsRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", RegisterRequest{Username: "alice", Password: "pw1"}, nil)
	cookie := tokenCookie(t, w)
	cookie.Value = cookie.Value + "tampered"

	w = doJSON(t, r, http.MethodGet, "/profile", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/logout", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	cookie := tokenCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Re-login must issue a fresh token; both stay valid until expiry.
func TestLoginIssuesFreshToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", RegisterRequest{Username: "alice", Password: "pw1"}, nil)
	first := tokenCookie(t, w)

	w = doJSON(t, r, http.MethodPost, "/login", LoginRequest{Username: "alice", Password: "pw1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := tokenCookie(t, w)

	for i, c := range []*http.Cookie{first, second} {
		w = doJSON(t, r, http.MethodGet, "/profile", nil, c)
		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("token %d", i))
	}
}
