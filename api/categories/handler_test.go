package categories

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockmate_server/api/middleware"
	"stockmate_server/lib"
	"stockmate_server/structs"
	"stockmate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- Mocks ---

type stubSessions struct {
	err error
}

func (s *stubSessions) ValidateSession(token string) (*structs.SessionClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &structs.SessionClaims{
		Sub:  lib.AdminSubject,
		Role: lib.AdminRole,
		Iat:  time.Now(),
		Exp:  time.Now().Add(time.Hour),
		Jti:  uuid.New(),
	}, nil
}

type stubLimiter struct{}

func (s *stubLimiter) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	return 1, nil
}

type mockCategoryProvider struct {
	categories []tables.CategoryWithCount
	created    *tables.Category
	createErr  error
	listErr    error
	deleteErr  error
	deletedID  uuid.UUID
}

func (m *mockCategoryProvider) CreateCategory(ctx context.Context, name, color string) (*tables.Category, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.created, nil
}

func (m *mockCategoryProvider) ListCategories(ctx context.Context) ([]tables.CategoryWithCount, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.categories, nil
}

func (m *mockCategoryProvider) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	m.deletedID = id
	return m.deleteErr
}

// --- Helpers ---

func newTestRouter(provider CategoryProvider) chi.Router {
	cfg := &structs.Config{RateLimit: &structs.RateLimitConfig{}}
	logger := gecho.NewDefaultLogger()
	mw := middleware.NewMiddleware(cfg, logger, &stubSessions{}, &stubLimiter{})

	r := chi.NewRouter()
	NewCategoryRoutesManager(logger, provider, mw).RegisterRoutes(r)
	return r
}

func authed(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: "session-token"})
	return req
}

func withCSRF(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: lib.CSRFCookieName, Value: "csrf-token"})
	req.Header.Set("X-CSRF-Token", "csrf-token")
	return req
}

// --- Tests ---

func TestListCategories(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		provider := &mockCategoryProvider{
			categories: []tables.CategoryWithCount{
				{Category: tables.Category{ID: uuid.New(), Name: "Drinks", Color: "#112233"}, ProductCount: 3},
				{Category: tables.Category{ID: uuid.New(), Name: "Snacks", Color: "#445566"}, ProductCount: 0},
			},
		}
		r := newTestRouter(provider)

		req := authed(httptest.NewRequest(http.MethodGet, "/categories/", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Drinks")
		assert.Contains(t, rec.Body.String(), "Snacks")
	})

	t.Run("rejects missing session", func(t *testing.T) {
		r := newTestRouter(&mockCategoryProvider{})

		req := httptest.NewRequest(http.MethodGet, "/categories/", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		r := newTestRouter(&mockCategoryProvider{listErr: fmt.Errorf("connection refused")})

		req := authed(httptest.NewRequest(http.MethodGet, "/categories/", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		provider := &mockCategoryProvider{
			created: &tables.Category{ID: uuid.New(), Name: "Drinks", Color: "#6366f1"},
		}
		r := newTestRouter(provider)

		body := strings.NewReader(`{"name":"Drinks"}`)
		req := withCSRF(authed(httptest.NewRequest(http.MethodPost, "/categories/", body)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Drinks")
	})

	t.Run("duplicate name", func(t *testing.T) {
		provider := &mockCategoryProvider{
			createErr: fmt.Errorf("%w: category exists", lib.ErrConflict),
		}
		r := newTestRouter(provider)

		body := strings.NewReader(`{"name":"Drinks"}`)
		req := withCSRF(authed(httptest.NewRequest(http.MethodPost, "/categories/", body)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("empty name", func(t *testing.T) {
		provider := &mockCategoryProvider{
			createErr: fmt.Errorf("%w: category name must not be empty", lib.ErrValidation),
		}
		r := newTestRouter(provider)

		body := strings.NewReader(`{"name":""}`)
		req := withCSRF(authed(httptest.NewRequest(http.MethodPost, "/categories/", body)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing csrf token", func(t *testing.T) {
		r := newTestRouter(&mockCategoryProvider{})

		body := strings.NewReader(`{"name":"Drinks"}`)
		req := authed(httptest.NewRequest(http.MethodPost, "/categories/", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		provider := &mockCategoryProvider{}
		r := newTestRouter(provider)

		id := uuid.New()
		req := withCSRF(authed(httptest.NewRequest(http.MethodDelete, "/categories/"+id.String(), nil)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, provider.deletedID)
	})

	t.Run("blocked by products", func(t *testing.T) {
		provider := &mockCategoryProvider{
			deleteErr: fmt.Errorf("%w: 2 products still reference it", lib.ErrBlocked),
		}
		r := newTestRouter(provider)

		req := withCSRF(authed(httptest.NewRequest(http.MethodDelete, "/categories/"+uuid.NewString(), nil)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		provider := &mockCategoryProvider{
			deleteErr: fmt.Errorf("%w: category missing", lib.ErrNotFound),
		}
		r := newTestRouter(provider)

		req := withCSRF(authed(httptest.NewRequest(http.MethodDelete, "/categories/"+uuid.NewString(), nil)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		r := newTestRouter(&mockCategoryProvider{})

		req := withCSRF(authed(httptest.NewRequest(http.MethodDelete, "/categories/not-a-uuid", nil)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
