package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockmate_server/api/middleware"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockAuthProvider struct {
	verifyErr   error
	issueErr    error
	validateErr error
	revokeErr   error

	revokedJti uuid.UUID
}

func adminClaims() *structs.SessionClaims {
	return &structs.SessionClaims{
		Sub:  lib.AdminSubject,
		Role: lib.AdminRole,
		Iat:  time.Now(),
		Exp:  time.Now().Add(time.Hour),
		Jti:  uuid.New(),
	}
}

func (m *mockAuthProvider) VerifyAdminPassword(password string) error {
	return m.verifyErr
}

func (m *mockAuthProvider) IssueSession() (string, *structs.SessionClaims, error) {
	if m.issueErr != nil {
		return "", nil, m.issueErr
	}
	return "signed-token", adminClaims(), nil
}

func (m *mockAuthProvider) RevokeSession(jti uuid.UUID, exp time.Time) error {
	m.revokedJti = jti
	return m.revokeErr
}

func (m *mockAuthProvider) ValidateSession(tokenStr string) (*structs.SessionClaims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return adminClaims(), nil
}

type stubLimiter struct {
	count int
	err   error
}

func (s *stubLimiter) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.count++
	return s.count, nil
}

// --- Helpers ---

func newTestRouter(provider AuthProvider, limiter middleware.RateLimiter) chi.Router {
	cfg := &structs.Config{
		RateLimit: &structs.RateLimitConfig{
			AuthLimit:  5,
			AuthWindow: time.Minute,
		},
	}
	logger := gecho.NewDefaultLogger()
	mw := middleware.NewMiddleware(cfg, logger, provider, limiter)

	r := chi.NewRouter()
	NewAuthRoutesManager(logger, provider, cfg, mw).RegisterRoutes(r)
	return r
}

func withCSRF(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: lib.CSRFCookieName, Value: "csrf-token"})
	req.Header.Set("X-CSRF-Token", "csrf-token")
	return req
}

// --- Tests ---

func TestHandleLogin(t *testing.T) {
	t.Run("success sets the session cookie", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{}, &stubLimiter{})

		body := strings.NewReader(`{"password":"hunter2"}`)
		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/login", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		var sessionCookie *http.Cookie
		for _, c := range cookies {
			if c.Name == lib.SessionCookieName {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		assert.Equal(t, "signed-token", sessionCookie.Value)
		assert.True(t, sessionCookie.HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{verifyErr: lib.ErrInvalidCredentials}, &stubLimiter{})

		body := strings.NewReader(`{"password":"wrong"}`)
		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/login", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{}, &stubLimiter{})

		body := strings.NewReader(`{}`)
		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/login", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("password not configured", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{verifyErr: lib.ErrAuthNotConfigured}, &stubLimiter{})

		body := strings.NewReader(`{"password":"anything"}`)
		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/login", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("rejects missing csrf token", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{}, &stubLimiter{})

		body := strings.NewReader(`{"password":"hunter2"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rate limited after too many attempts", func(t *testing.T) {
		limiter := &stubLimiter{count: 10}
		r := newTestRouter(&mockAuthProvider{}, limiter)

		body := strings.NewReader(`{"password":"hunter2"}`)
		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/login", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("blocks when the limiter is down", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{}, &stubLimiter{err: fmt.Errorf("connection refused")})

		body := strings.NewReader(`{"password":"hunter2"}`)
		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/login", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandleLogout(t *testing.T) {
	t.Run("revokes and clears the session", func(t *testing.T) {
		provider := &mockAuthProvider{}
		r := newTestRouter(provider, &stubLimiter{})

		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
		req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: "signed-token"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEqual(t, uuid.Nil, provider.revokedJti)
	})

	t.Run("no session cookie is still a success", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{}, &stubLimiter{})

		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid token still clears the cookie", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{validateErr: lib.ErrInvalidToken}, &stubLimiter{})

		req := withCSRF(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
		req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandleSession(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{}, &stubLimiter{})

		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: "signed-token"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), lib.AdminRole)
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{}, &stubLimiter{})

		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked session", func(t *testing.T) {
		r := newTestRouter(&mockAuthProvider{validateErr: lib.ErrInvalidToken}, &stubLimiter{})

		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: "revoked"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleCSRF(t *testing.T) {
	r := newTestRouter(&mockAuthProvider{}, &stubLimiter{})

	req := httptest.NewRequest(http.MethodGet, "/auth/csrf", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "csrf_token")

	var csrfCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == lib.CSRFCookieName {
			csrfCookie = c
		}
	}
	require.NotNil(t, csrfCookie)
	assert.False(t, csrfCookie.HttpOnly)
}
