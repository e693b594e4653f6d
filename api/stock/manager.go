package stock

import (
	"context"
	"stockmate_server/api/middleware"
	"stockmate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// StockProvider is the slice of services.StockService these handlers need.
type StockProvider interface {
	AdjustStock(ctx context.Context, productID uuid.UUID, newStock int64) (*tables.Product, *tables.SaleTransaction, error)
}

type StockRoutesManager struct {
	logger *gecho.Logger
	stock  StockProvider
	mw     *middleware.Middleware
}

func NewStockRoutesManager(
	logger *gecho.Logger,
	stock StockProvider,
	mw *middleware.Middleware,
) *StockRoutesManager {
	return &StockRoutesManager{
		logger: logger,
		stock:  stock,
		mw:     mw,
	}
}

func (srm *StockRoutesManager) RegisterRoutes(r chi.Router) {
	r.With(srm.mw.AdminAuthMiddleware, srm.mw.CSRFMiddleware()).
		Put("/products/{id}/stock", srm.AdjustStock)
}
