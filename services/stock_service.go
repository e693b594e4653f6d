package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"stockmate_server/database"
	"stockmate_server/lib"
	"stockmate_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type StockService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewStockService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *StockService {
	return &StockService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// planSale derives the sale record implied by a stock change. A decrease of N
// units means N units sold at the product's current price. Increases and
// no-ops produce no sale.
func planSale(product *tables.Product, newStock int64, now time.Time) *tables.SaleTransaction {
	delta := newStock - product.Stock
	if delta >= 0 {
		return nil
	}

	quantity := -delta
	return &tables.SaleTransaction{
		ID:           uuid.New(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		QuantitySold: quantity,
		UnitPrice:    product.Price,
		TotalAmount:  product.Price.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:    now,
	}
}

// AdjustStock sets a product's stock to an absolute value. When the new value
// is below the current one, the difference is recorded as a sale at the
// product's current price. The stock write and the sale record commit
// together or not at all.
func (ss *StockService) AdjustStock(ctx context.Context, productID uuid.UUID, newStock int64) (*tables.Product, *tables.SaleTransaction, error) {
	if newStock < 0 {
		return nil, nil, fmt.Errorf("%w: stock must not be negative", lib.ErrValidation)
	}

	var updated tables.Product
	var sale *tables.SaleTransaction

	err := database.Transaction(ctx, ss.db, func(ctx context.Context, tx bun.Tx) error {
		var product tables.Product
		err := tx.NewSelect().
			Model(&product).
			Where("id = ?", productID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: product %s", lib.ErrNotFound, productID)
			}
			return lib.MapPgError(err)
		}

		now := time.Now()
		sale = planSale(&product, newStock, now)

		product.Stock = newStock
		product.UpdatedAt = now

		if _, err := tx.NewUpdate().
			Model(&product).
			Column("stock", "updated_at").
			Where("id = ?", productID).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		if sale != nil {
			if _, err := tx.NewInsert().Model(sale).Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}
		}

		updated = product
		return nil
	})
	if err != nil {
		if lib.IsNotFound(err) || lib.IsValidation(err) {
			ss.logger.Warn("Stock adjustment rejected", gecho.Field("error", err), gecho.Field("product_id", productID))
		} else {
			ss.logger.Error("Stock adjustment failed", gecho.Field("error", err), gecho.Field("product_id", productID))
		}
		return nil, nil, err
	}

	if err := ss.cacheService.InvalidateProductCaches(productID); err != nil {
		ss.logger.Warn("Failed to invalidate product caches", gecho.Field("error", err))
	}
	if sale != nil {
		if err := ss.cacheService.InvalidateSalesCaches(); err != nil {
			ss.logger.Warn("Failed to invalidate sales caches", gecho.Field("error", err))
		}
		ss.logger.Info("Sale recorded from stock adjustment",
			gecho.Field("product_id", productID),
			gecho.Field("quantity", sale.QuantitySold),
			gecho.Field("total", sale.TotalAmount.String()),
		)
	}

	return &updated, sale, nil
}
