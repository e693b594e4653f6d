package categories

import (
	"context"
	"stockmate_server/api/middleware"
	"stockmate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CategoryProvider is the slice of services.CategoryService these handlers need.
type CategoryProvider interface {
	CreateCategory(ctx context.Context, name, color string) (*tables.Category, error)
	ListCategories(ctx context.Context) ([]tables.CategoryWithCount, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type CategoryRoutesManager struct {
	logger     *gecho.Logger
	categories CategoryProvider
	mw         *middleware.Middleware
}

func NewCategoryRoutesManager(
	logger *gecho.Logger,
	categories CategoryProvider,
	mw *middleware.Middleware,
) *CategoryRoutesManager {
	return &CategoryRoutesManager{
		logger:     logger,
		categories: categories,
		mw:         mw,
	}
}

func (crm *CategoryRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Use(crm.mw.AdminAuthMiddleware)
		r.Get("/", crm.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(crm.mw.CSRFMiddleware())
			r.Post("/", crm.CreateCategory)
			r.Delete("/{id}", crm.DeleteCategory)
		})
	})
}
