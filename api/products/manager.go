package products

import (
	"context"
	"stockmate_server/api/middleware"
	"stockmate_server/services"
	"stockmate_server/structs"
	"stockmate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ProductProvider is the slice of services.ProductService these handlers need.
type ProductProvider interface {
	ListProducts(ctx context.Context, opts *services.ProductListOptions) (*services.ProductListResult, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error)
	CreateProduct(ctx context.Context, req *structs.CreateProductRequest) (*tables.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *structs.UpdateProductRequest) (*tables.Product, error)
	DeleteProductByID(ctx context.Context, id uuid.UUID) error
	BulkImportFromImages(ctx context.Context, categoryID uuid.UUID, images []string) ([]tables.Product, error)
}

type ProductRoutesManager struct {
	logger   *gecho.Logger
	products ProductProvider
	mw       *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	products ProductProvider,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:   logger,
		products: products,
		mw:       mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(prm.mw.AdminAuthMiddleware)
		r.Get("/products", prm.FetchAllProducts)
		r.Get("/products/{id}", prm.FetchProductByID)

		r.Group(func(r chi.Router) {
			r.Use(prm.mw.CSRFMiddleware())
			r.Post("/products", prm.CreateProduct)
			r.Post("/products/bulk-import", prm.BulkImport)
			r.Patch("/products/{id}", prm.UpdateProduct)
			r.Delete("/products/{id}", prm.DeleteProduct)
		})
	})
}
