package api

import (
	"stockmate_server/api/auth"
	"stockmate_server/api/categories"
	"stockmate_server/api/health"
	"stockmate_server/api/products"
	"stockmate_server/api/sales"
	"stockmate_server/api/stock"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	categoryRoutes *categories.CategoryRoutesManager
	productRoutes  *products.ProductRoutesManager
	stockRoutes    *stock.StockRoutesManager
	salesRoutes    *sales.SalesRoutesManager
	authRoutes     *auth.AuthRoutesManager
	healthRoutes   *health.HealthRoutesManager
}

func NewRouterManager(
	categoryRoutes *categories.CategoryRoutesManager,
	productRoutes *products.ProductRoutesManager,
	stockRoutes *stock.StockRoutesManager,
	salesRoutes *sales.SalesRoutesManager,
	authRoutes *auth.AuthRoutesManager,
	healthRoutes *health.HealthRoutesManager,
) *routerManager {
	return &routerManager{
		categoryRoutes: categoryRoutes,
		productRoutes:  productRoutes,
		stockRoutes:    stockRoutes,
		salesRoutes:    salesRoutes,
		authRoutes:     authRoutes,
		healthRoutes:   healthRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.categoryRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.stockRoutes.RegisterRoutes(r)
	rm.salesRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
