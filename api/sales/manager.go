package sales

import (
	"context"
	"stockmate_server/api/middleware"
	"stockmate_server/services"
	"stockmate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SalesProvider is the slice of services.SalesService these handlers need.
type SalesProvider interface {
	GetSummary(ctx context.Context) (*services.SalesSummary, error)
	ListRecent(ctx context.Context, limit int) ([]tables.SaleTransaction, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]tables.SaleTransaction, error)
}

type SalesRoutesManager struct {
	logger *gecho.Logger
	sales  SalesProvider
	mw     *middleware.Middleware
}

func NewSalesRoutesManager(
	logger *gecho.Logger,
	sales SalesProvider,
	mw *middleware.Middleware,
) *SalesRoutesManager {
	return &SalesRoutesManager{
		logger: logger,
		sales:  sales,
		mw:     mw,
	}
}

func (srm *SalesRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/sales", func(r chi.Router) {
		r.Use(srm.mw.AdminAuthMiddleware)
		r.Get("/summary", srm.GetSummary)
		r.Get("/recent", srm.ListRecent)
		r.Get("/product/{id}", srm.ListByProduct)
	})
}
