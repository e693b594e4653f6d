package services

import (
	"context"
	"fmt"
	"stockmate_server/database"
	"stockmate_server/lib"
	"stockmate_server/structs"
	"stockmate_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxBulkImportImages caps a single bulk import request.
const MaxBulkImportImages = 50

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ProductListOptions contains filtering and pagination options for product queries
type ProductListOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	SearchTerm string     `json:"search_term,omitempty"` // matches name and description
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
}

func validateProductInput(name string, stock int64, price decimal.Decimal, images []string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: product name must not be empty", lib.ErrValidation)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", lib.ErrValidation)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", lib.ErrValidation)
	}
	if len(images) > tables.MaxProductImages {
		return fmt.Errorf("%w: a product may carry at most %d images", lib.ErrValidation, tables.MaxProductImages)
	}
	return nil
}

func (ps *ProductService) categoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return database.Query[tables.Category](ps.db).
		Where("id", id).
		Timeout(5 * time.Second).
		Exists(ctx)
}

// ListProducts returns products ordered by creation time, newest first.
func (ps *ProductService) ListProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	if opts == nil {
		opts = &ProductListOptions{}
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 20
	}
	if opts.PageSize > 100 {
		opts.PageSize = 100
	}

	cacheKey := fmt.Sprintf("products:page:%d:size:%d:cat:%v:q:%s", opts.Page, opts.PageSize, opts.CategoryID, opts.SearchTerm)
	cached, err := getJSON[ProductListResult](ps.cacheService, cacheKey)
	if err != nil {
		ps.logger.Warn("Failed to get products from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	query := database.Query[tables.Product](ps.db).
		OrderBy("created_at", database.DESC).
		Timeout(10 * time.Second)

	if opts.CategoryID != nil {
		query = query.Where("category_id", *opts.CategoryID)
	}
	if opts.SearchTerm != "" {
		pattern := "%" + opts.SearchTerm + "%"
		query = query.WhereRaw("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	result, err := database.Paginate(query, ctx, opts.Page, opts.PageSize)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("pageSize", opts.PageSize),
		)
		return nil, lib.MapPgError(err)
	}

	listResult := &ProductListResult{
		Products:   result.Data,
		Pagination: result.Pagination,
	}

	go func() {
		if err := setJSON(ps.cacheService, cacheKey, listResult, ps.cacheService.ProductListTTL()); err != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
		}
	}()

	return listResult, nil
}

// GetProductByID retrieves a single product by ID
func (ps *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	cacheKey := fmt.Sprintf("product:id:%s", id.String())
	cached, err := getJSON[tables.Product](ps.cacheService, cacheKey)
	if err != nil {
		ps.logger.Warn("Failed to get product from cache", gecho.Field("error", err), gecho.Field("id", id))
	} else if cached != nil {
		return cached, nil
	}

	product, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product by ID", gecho.Field("id", id), gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", lib.ErrNotFound, id)
	}

	go func() {
		if err := setJSON(ps.cacheService, cacheKey, product, ps.cacheService.ProductListTTL()); err != nil {
			ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("id", id))
		}
	}()

	return product, nil
}

// CreateProduct validates the request and inserts a single product row.
func (ps *ProductService) CreateProduct(ctx context.Context, req *structs.CreateProductRequest) (*tables.Product, error) {
	if err := validateProductInput(req.Name, req.Stock, req.Price, req.Images); err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category id", lib.ErrValidation)
	}

	exists, err := ps.categoryExists(ctx, categoryID)
	if err != nil {
		ps.logger.Error("Failed to verify category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return nil, lib.MapPgError(err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: category %s", lib.ErrNotFound, categoryID)
	}

	now := time.Now()
	product := &tables.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		CategoryID:  categoryID,
		Stock:       req.Stock,
		Price:       req.Price,
		Description: req.Description,
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Create(ps.db, ctx, product); err != nil {
		ps.logger.Error("Failed to insert product", gecho.Field("error", err), gecho.Field("name", product.Name))
		return nil, lib.MapPgError(err)
	}

	if err := ps.cacheService.InvalidateProductCaches(product.ID); err != nil {
		ps.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}

	ps.logger.Debug("Product created", gecho.Field("id", product.ID), gecho.Field("name", product.Name))
	return product, nil
}

// UpdateProduct applies a partial update. Nil request fields stay untouched.
// Stock is deliberately absent here; it only moves through AdjustStock.
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *structs.UpdateProductRequest) (*tables.Product, error) {
	updates := map[string]any{
		"updated_at": time.Now(),
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: product name must not be empty", lib.ErrValidation)
		}
		updates["name"] = name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", lib.ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Images != nil {
		if len(req.Images) > tables.MaxProductImages {
			return nil, fmt.Errorf("%w: a product may carry at most %d images", lib.ErrValidation, tables.MaxProductImages)
		}
		updates["images"] = req.Images
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category id", lib.ErrValidation)
		}
		exists, err := ps.categoryExists(ctx, categoryID)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: category %s", lib.ErrNotFound, categoryID)
		}
		updates["category_id"] = categoryID
	}

	affected, err := database.UpdateByID[tables.Product](ps.db, ctx, id, updates)
	if err != nil {
		ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("id", id))
		return nil, lib.MapPgError(err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: product %s", lib.ErrNotFound, id)
	}

	if err := ps.cacheService.InvalidateProductCaches(id); err != nil {
		ps.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}

	return ps.GetProductByID(ctx, id)
}

// DeleteProductByID removes a product row. Sale records referencing the
// product are left in place on purpose; sales history outlives the product.
func (ps *ProductService) DeleteProductByID(ctx context.Context, id uuid.UUID) error {
	affected, err := database.DeleteByID[tables.Product](ps.db, ctx, id)
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("id", id))
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %s", lib.ErrNotFound, id)
	}

	if err := ps.cacheService.InvalidateProductCaches(id); err != nil {
		ps.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}

	ps.logger.Debug("Product deleted", gecho.Field("id", id))
	return nil
}

// buildPlaceholderProducts creates one unnamed product per image, sharing a
// creation timestamp and numbered from 1.
func buildPlaceholderProducts(images []string, categoryID uuid.UUID, now time.Time) []tables.Product {
	products := make([]tables.Product, 0, len(images))
	for i, image := range images {
		products = append(products, tables.Product{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("Unnamed product %d-%d", now.UnixMilli(), i+1),
			CategoryID: categoryID,
			Stock:      0,
			Price:      decimal.Zero,
			Images:     []string{image},
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return products
}

// BulkImportFromImages creates one placeholder product per image reference.
// All rows go to the store in a single bulk insert, so partial success is up
// to the store's own atomicity.
func (ps *ProductService) BulkImportFromImages(ctx context.Context, categoryID uuid.UUID, images []string) ([]tables.Product, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", lib.ErrValidation)
	}
	if len(images) > MaxBulkImportImages {
		return nil, fmt.Errorf("%w: at most %d images per import", lib.ErrValidation, MaxBulkImportImages)
	}

	exists, err := ps.categoryExists(ctx, categoryID)
	if err != nil {
		ps.logger.Error("Failed to verify category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return nil, lib.MapPgError(err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: category %s", lib.ErrNotFound, categoryID)
	}

	products := buildPlaceholderProducts(images, categoryID, time.Now())

	if _, err := database.CreateMany(ps.db, ctx, products); err != nil {
		ps.logger.Error("Failed to bulk insert products",
			gecho.Field("error", err),
			gecho.Field("count", len(products)),
			gecho.Field("category_id", categoryID),
		)
		return nil, lib.MapPgError(err)
	}

	if err := ps.cacheService.DeletePattern("products:*"); err != nil {
		ps.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}
	if err := ps.cacheService.DeletePattern("categories:*"); err != nil {
		ps.logger.Warn("Failed to invalidate category caches", gecho.Field("error", err))
	}

	ps.logger.Info("Bulk import completed",
		gecho.Field("count", len(products)),
		gecho.Field("category_id", categoryID),
	)
	return products, nil
}
