package stock

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

type mockStockProvider struct {
	product *tables.Product
	sale    *tables.SaleTransaction
	err     error

	lastProductID uuid.UUID
	lastNewStock  int64
}

func (m *mockStockProvider) AdjustStock(ctx context.Context, productID uuid.UUID, newStock int64) (*tables.Product, *tables.SaleTransaction, error) {
	m.lastProductID = productID
	m.lastNewStock = newStock
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.product, m.sale, nil
}

func newTestRouter(provider StockProvider) chi.Router {
	cfg := &structs.Config{RateLimit: &structs.RateLimitConfig{}}
	logger := gecho.NewDefaultLogger()
	mw := middleware.NewMiddleware(cfg, logger, &stubSessions{}, &stubLimiter{})

	r := chi.NewRouter()
	NewStockRoutesManager(logger, provider, mw).RegisterRoutes(r)
	return r
}

func authedCSRF(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: "session-token"})
	req.AddCookie(&http.Cookie{Name: lib.CSRFCookieName, Value: "csrf-token"})
	req.Header.Set("X-CSRF-Token", "csrf-token")
	return req
}

func TestAdjustStock(t *testing.T) {
	t.Run("decrease returns the derived sale", func(t *testing.T) {
		productID := uuid.New()
		provider := &mockStockProvider{
			product: &tables.Product{ID: productID, Name: "Notebook", Stock: 3, Price: decimal.RequireFromString("2.50")},
			sale: &tables.SaleTransaction{
				ID:           uuid.New(),
				ProductID:    productID,
				ProductName:  "Notebook",
				QuantitySold: 2,
				UnitPrice:    decimal.RequireFromString("2.50"),
				TotalAmount:  decimal.RequireFromString("5.00"),
			},
		}
		r := newTestRouter(provider)

		body := strings.NewReader(`{"new_stock":3}`)
		req := authedCSRF(httptest.NewRequest(http.MethodPut, "/products/"+productID.String()+"/stock", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, productID, provider.lastProductID)
		assert.Equal(t, int64(3), provider.lastNewStock)
		assert.Contains(t, rec.Body.String(), "Notebook")
	})

	t.Run("increase returns no sale", func(t *testing.T) {
		productID := uuid.New()
		provider := &mockStockProvider{
			product: &tables.Product{ID: productID, Name: "Notebook", Stock: 20},
		}
		r := newTestRouter(provider)

		body := strings.NewReader(`{"new_stock":20}`)
		req := authedCSRF(httptest.NewRequest(http.MethodPut, "/products/"+productID.String()+"/stock", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("negative stock", func(t *testing.T) {
		r := newTestRouter(&mockStockProvider{err: fmt.Errorf("%w: stock must not be negative", lib.ErrValidation)})

		body := strings.NewReader(`{"new_stock":-1}`)
		req := authedCSRF(httptest.NewRequest(http.MethodPut, "/products/"+uuid.NewString()+"/stock", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		r := newTestRouter(&mockStockProvider{err: fmt.Errorf("%w: product", lib.ErrNotFound)})

		body := strings.NewReader(`{"new_stock":5}`)
		req := authedCSRF(httptest.NewRequest(http.MethodPut, "/products/"+uuid.NewString()+"/stock", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid product id", func(t *testing.T) {
		r := newTestRouter(&mockStockProvider{})

		body := strings.NewReader(`{"new_stock":5}`)
		req := authedCSRF(httptest.NewRequest(http.MethodPut, "/products/nope/stock", body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires session", func(t *testing.T) {
		r := newTestRouter(&mockStockProvider{})

		body := strings.NewReader(`{"new_stock":5}`)
		req := httptest.NewRequest(http.MethodPut, "/products/"+uuid.NewString()+"/stock", body)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
