package services

import (
	"context"
	"fmt"
	"stockmate_server/database"
	"stockmate_server/lib"
	"stockmate_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// summaryScanLimit bounds the number of rows folded into the totals.
	summaryScanLimit = 100000
	// rankingScanLimit bounds the recent window used for the top seller ranking.
	rankingScanLimit = 1000
	// topProductCount is the size of the top seller list.
	topProductCount = 5
	// recentListLimit is the default and maximum size of the recent sales list.
	recentListLimit = 10
)

type SalesService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewSalesService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *SalesService {
	return &SalesService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ProductSalesRank is one entry in the top seller list.
type ProductSalesRank struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesSummary is the dashboard payload.
type SalesSummary struct {
	TotalRevenue     decimal.Decimal          `json:"total_revenue"`
	TotalItemsSold   int64                    `json:"total_items_sold"`
	TransactionCount int                      `json:"transaction_count"`
	TopProducts      []ProductSalesRank       `json:"top_products"`
	RecentSales      []tables.SaleTransaction `json:"recent_sales"`
}

// foldTotals sums revenue and quantity over a transaction slice.
func foldTotals(transactions []tables.SaleTransaction) (decimal.Decimal, int64) {
	revenue := decimal.Zero
	var items int64
	for _, t := range transactions {
		revenue = revenue.Add(t.TotalAmount)
		items += t.QuantitySold
	}
	return revenue, items
}

// rankTopProducts folds a recent transaction window into a per-product
// ranking by summed revenue. Revenue ties keep the order in which products
// first appear in the window, so the ranking is stable across runs.
func rankTopProducts(transactions []tables.SaleTransaction, limit int) []ProductSalesRank {
	index := make(map[uuid.UUID]int, len(transactions))
	ranks := make([]ProductSalesRank, 0, len(transactions))

	for _, t := range transactions {
		if i, ok := index[t.ProductID]; ok {
			ranks[i].QuantitySold += t.QuantitySold
			ranks[i].Revenue = ranks[i].Revenue.Add(t.TotalAmount)
			continue
		}
		index[t.ProductID] = len(ranks)
		ranks = append(ranks, ProductSalesRank{
			ProductID:    t.ProductID,
			ProductName:  t.ProductName,
			QuantitySold: t.QuantitySold,
			Revenue:      t.TotalAmount,
		})
	}

	// Stable insertion sort; first appearance wins ties.
	for i := 1; i < len(ranks); i++ {
		for j := i; j > 0 && ranks[j].Revenue.GreaterThan(ranks[j-1].Revenue); j-- {
			ranks[j], ranks[j-1] = ranks[j-1], ranks[j]
		}
	}

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

func (ss *SalesService) fetchRecent(ctx context.Context, limit int) ([]tables.SaleTransaction, error) {
	transactions, err := database.Query[tables.SaleTransaction](ss.db).
		OrderBy("created_at", database.DESC).
		Limit(limit).
		Timeout(10 * time.Second).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return transactions, nil
}

// GetSummary builds the sales dashboard: overall totals, top sellers over the
// recent window, and the latest transactions.
func (ss *SalesService) GetSummary(ctx context.Context) (*SalesSummary, error) {
	const cacheKey = "sales:summary"

	cached, err := getJSON[SalesSummary](ss.cacheService, cacheKey)
	if err != nil {
		ss.logger.Warn("Failed to get sales summary from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	all, err := ss.fetchRecent(ctx, summaryScanLimit)
	if err != nil {
		ss.logger.Error("Failed to fetch sales for summary", gecho.Field("error", err))
		return nil, err
	}

	revenue, items := foldTotals(all)

	window := all
	if len(window) > rankingScanLimit {
		window = window[:rankingScanLimit]
	}

	recent := all
	if len(recent) > recentListLimit {
		recent = recent[:recentListLimit]
	}

	summary := &SalesSummary{
		TotalRevenue:     revenue,
		TotalItemsSold:   items,
		TransactionCount: len(all),
		TopProducts:      rankTopProducts(window, topProductCount),
		RecentSales:      recent,
	}

	go func() {
		if err := setJSON(ss.cacheService, cacheKey, summary, ss.cacheService.SalesSummaryTTL()); err != nil {
			ss.logger.Warn("Failed to cache sales summary", gecho.Field("error", err))
		}
	}()

	return summary, nil
}

// ListRecent returns the latest sale transactions, newest first.
func (ss *SalesService) ListRecent(ctx context.Context, limit int) ([]tables.SaleTransaction, error) {
	if limit < 1 || limit > recentListLimit {
		limit = recentListLimit
	}

	cacheKey := fmt.Sprintf("sales:recent:%d", limit)
	cached, err := GetCachedList[tables.SaleTransaction](ss.cacheService, cacheKey)
	if err != nil {
		ss.logger.Warn("Failed to get recent sales from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	transactions, err := ss.fetchRecent(ctx, limit)
	if err != nil {
		ss.logger.Error("Failed to fetch recent sales", gecho.Field("error", err))
		return nil, err
	}

	go func() {
		if err := SetCachedList(ss.cacheService, cacheKey, transactions, ss.cacheService.SalesSummaryTTL()); err != nil {
			ss.logger.Warn("Failed to cache recent sales", gecho.Field("error", err))
		}
	}()

	return transactions, nil
}

// ListByProduct returns all sale transactions for a product, newest first.
// Works for deleted products too since sales keep their own product name.
func (ss *SalesService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]tables.SaleTransaction, error) {
	transactions, err := database.Query[tables.SaleTransaction](ss.db).
		Where("product_id", productID).
		OrderBy("created_at", database.DESC).
		Timeout(10 * time.Second).
		All(ctx)
	if err != nil {
		ss.logger.Error("Failed to fetch sales by product", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, lib.MapPgError(err)
	}
	return transactions, nil
}
