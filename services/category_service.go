package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"stockmate_server/database"
	"stockmate_server/lib"
	"stockmate_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultCategoryColor is used when a create request omits the color.
const DefaultCategoryColor = "#6366f1"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type CategoryService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCategoryService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CategoryService {
	return &CategoryService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// normalizeCategoryInput trims the name and applies the color default.
// Returns a validation error for an empty name or a malformed color.
func normalizeCategoryInput(name, color string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: category name must not be empty", lib.ErrValidation)
	}

	if color == "" {
		color = DefaultCategoryColor
	}
	if !hexColorPattern.MatchString(color) {
		return "", "", fmt.Errorf("%w: color must be a hex string like #6366f1", lib.ErrValidation)
	}

	return name, color, nil
}

// CreateCategory inserts a new category after checking for a case-insensitive
// duplicate name.
func (cs *CategoryService) CreateCategory(ctx context.Context, name, color string) (*tables.Category, error) {
	name, color, err := normalizeCategoryInput(name, color)
	if err != nil {
		return nil, err
	}

	exists, err := database.Query[tables.Category](cs.db).
		WhereRaw("LOWER(name) = LOWER(?)", name).
		Timeout(5 * time.Second).
		Exists(ctx)
	if err != nil {
		cs.logger.Error("Failed to check for duplicate category", gecho.Field("error", err), gecho.Field("name", name))
		return nil, lib.MapPgError(err)
	}
	if exists {
		return nil, fmt.Errorf("%w: category %q already exists", lib.ErrConflict, name)
	}

	now := time.Now()
	category := &tables.Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Create(cs.db, ctx, category); err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsConflict(mappedErr) {
			// Lost the race against a concurrent create with the same name
			cs.logger.Warn("Duplicate category insert", gecho.Field("name", name))
		} else {
			cs.logger.Error("Failed to insert category", gecho.Field("error", err), gecho.Field("name", name))
		}
		return nil, mappedErr
	}

	if err := cs.cacheService.InvalidateCategoryCaches(); err != nil {
		cs.logger.Warn("Failed to invalidate category caches", gecho.Field("error", err))
	}

	cs.logger.Debug("Category created", gecho.Field("id", category.ID), gecho.Field("name", name))
	return category, nil
}

// ListCategories returns all categories ordered by name, each annotated with
// the count of products currently referencing it. Counts are recomputed on
// every read, never stored.
func (cs *CategoryService) ListCategories(ctx context.Context) ([]tables.CategoryWithCount, error) {
	const cacheKey = "categories:list"

	cached, err := GetCachedList[tables.CategoryWithCount](cs.cacheService, cacheKey)
	if err != nil {
		cs.logger.Warn("Failed to get categories from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	categories, err := database.Query[tables.Category](cs.db).
		OrderBy("name", database.ASC).
		Timeout(5 * time.Second).
		All(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	annotated := make([]tables.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := database.Query[tables.Product](cs.db).
			Where("category_id", category.ID).
			Timeout(5 * time.Second).
			Count(ctx)
		if err != nil {
			cs.logger.Error("Failed to count products for category",
				gecho.Field("error", err),
				gecho.Field("category_id", category.ID),
			)
			return nil, lib.MapPgError(err)
		}

		annotated = append(annotated, tables.CategoryWithCount{
			Category:     category,
			ProductCount: count,
		})
	}

	go func() {
		if err := SetCachedList(cs.cacheService, cacheKey, annotated, cs.cacheService.CategoryListTTL()); err != nil {
			cs.logger.Warn("Failed to cache category list", gecho.Field("error", err))
		}
	}()

	return annotated, nil
}

// DeleteCategory removes a category, but only while no product references it.
// The reference check and the delete run in one transaction so a concurrent
// product create cannot slip between them.
func (cs *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := database.Transaction(ctx, cs.db, func(ctx context.Context, tx bun.Tx) error {
		var category tables.Category
		err := tx.NewSelect().
			Model(&category).
			Where("id = ?", id).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: category %s", lib.ErrNotFound, id)
			}
			return lib.MapPgError(err)
		}

		count, err := tx.NewSelect().
			Model((*tables.Product)(nil)).
			Where("category_id = ?", id).
			Count(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %d products still reference category %q", lib.ErrBlocked, count, category.Name)
		}

		_, err = tx.NewDelete().
			Model((*tables.Category)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return lib.MapPgError(err)
	})
	if err != nil {
		if lib.IsBlocked(err) || lib.IsNotFound(err) {
			cs.logger.Warn("Category delete rejected", gecho.Field("error", err), gecho.Field("id", id))
		} else {
			cs.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("id", id))
		}
		return err
	}

	if err := cs.cacheService.InvalidateCategoryCaches(); err != nil {
		cs.logger.Warn("Failed to invalidate category caches", gecho.Field("error", err))
	}

	cs.logger.Debug("Category deleted", gecho.Field("id", id))
	return nil
}
