package sales

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockmate_server/api/middleware"
	"stockmate_server/lib"
	"stockmate_server/services"
	"stockmate_server/structs"
	"stockmate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stubSessions struct{}

func (s *stubSessions) ValidateSession(token string) (*structs.SessionClaims, error) {
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

type mockSalesProvider struct {
	summary *services.SalesSummary
	recent  []tables.SaleTransaction
	err     error

	lastLimit     int
	lastProductID uuid.UUID
}

func (m *mockSalesProvider) GetSummary(ctx context.Context) (*services.SalesSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockSalesProvider) ListRecent(ctx context.Context, limit int) ([]tables.SaleTransaction, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.recent, nil
}

func (m *mockSalesProvider) ListByProduct(ctx context.Context, productID uuid.UUID) ([]tables.SaleTransaction, error) {
	m.lastProductID = productID
	if m.err != nil {
		return nil, m.err
	}
	return m.recent, nil
}

func newTestRouter(provider SalesProvider) chi.Router {
	cfg := &structs.Config{RateLimit: &structs.RateLimitConfig{}}
	logger := gecho.NewDefaultLogger()
	mw := middleware.NewMiddleware(cfg, logger, &stubSessions{}, &stubLimiter{})

	r := chi.NewRouter()
	NewSalesRoutesManager(logger, provider, mw).RegisterRoutes(r)
	return r
}

func authed(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: "session-token"})
	return req
}

func TestGetSummary(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		provider := &mockSalesProvider{
			summary: &services.SalesSummary{
				TotalRevenue:     decimal.RequireFromString("120.50"),
				TotalItemsSold:   40,
				TransactionCount: 12,
				TopProducts: []services.ProductSalesRank{
					{ProductID: uuid.New(), ProductName: "Candles", QuantitySold: 15, Revenue: decimal.RequireFromString("45.00")},
				},
			},
		}
		r := newTestRouter(provider)

		req := authed(httptest.NewRequest(http.MethodGet, "/sales/summary", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Candles")
	})

	t.Run("store failure", func(t *testing.T) {
		r := newTestRouter(&mockSalesProvider{err: fmt.Errorf("connection refused")})

		req := authed(httptest.NewRequest(http.MethodGet, "/sales/summary", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("requires session", func(t *testing.T) {
		r := newTestRouter(&mockSalesProvider{})

		req := httptest.NewRequest(http.MethodGet, "/sales/summary", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestListRecent(t *testing.T) {
	t.Run("passes the limit through", func(t *testing.T) {
		provider := &mockSalesProvider{recent: []tables.SaleTransaction{}}
		r := newTestRouter(provider)

		req := authed(httptest.NewRequest(http.MethodGet, "/sales/recent?limit=5", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, provider.lastLimit)
	})

	t.Run("missing limit defaults to zero", func(t *testing.T) {
		provider := &mockSalesProvider{recent: []tables.SaleTransaction{}}
		r := newTestRouter(provider)

		req := authed(httptest.NewRequest(http.MethodGet, "/sales/recent", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, provider.lastLimit)
	})
}

func TestListByProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		productID := uuid.New()
		provider := &mockSalesProvider{
			recent: []tables.SaleTransaction{
				{ID: uuid.New(), ProductID: productID, ProductName: "Gone product", QuantitySold: 2},
			},
		}
		r := newTestRouter(provider)

		req := authed(httptest.NewRequest(http.MethodGet, "/sales/product/"+productID.String(), nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, productID, provider.lastProductID)
		assert.Contains(t, rec.Body.String(), "Gone product")
	})

	t.Run("invalid id", func(t *testing.T) {
		r := newTestRouter(&mockSalesProvider{})

		req := authed(httptest.NewRequest(http.MethodGet, "/sales/product/nope", nil))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
