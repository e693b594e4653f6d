package services

import (
	"stockmate_server/database"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	CacheService    *CacheService
	HealthService   *HealthService
	CategoryService *CategoryService
	ProductService  *ProductService
	StockService    *StockService
	SalesService    *SalesService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(logger, cfg, cacheService)
	healthService := NewHealthService(logger, db)
	categoryService := NewCategoryService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	stockService := NewStockService(logger, db, cacheService)
	salesService := NewSalesService(logger, db, cacheService)

	return &ServiceManager{
		AuthService:     authService,
		CacheService:    cacheService,
		HealthService:   healthService,
		CategoryService: categoryService,
		ProductService:  productService,
		StockService:    stockService,
		SalesService:    salesService,
	}
}
