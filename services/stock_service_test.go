package services

import (
	"testing"
	"time"

	"stockmate_server/structs/tables"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSale(t *testing.T) {
	now := time.Now()
	product := &tables.Product{
		ID:    uuid.New(),
		Name:  "Ceramic mug",
		Stock: 10,
		Price: decimal.RequireFromString("4.50"),
	}

	t.Run("decrease records a sale", func(t *testing.T) {
		sale := planSale(product, 7, now)
		require.NotNil(t, sale)

		assert.Equal(t, product.ID, sale.ProductID)
		assert.Equal(t, "Ceramic mug", sale.ProductName)
		assert.Equal(t, int64(3), sale.QuantitySold)
		assert.True(t, sale.UnitPrice.Equal(decimal.RequireFromString("4.50")))
		assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("13.50")))
		assert.Equal(t, now, sale.CreatedAt)
	})

	t.Run("decrease to zero sells the full stock", func(t *testing.T) {
		sale := planSale(product, 0, now)
		require.NotNil(t, sale)

		assert.Equal(t, int64(10), sale.QuantitySold)
		assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("45")))
	})

	t.Run("increase produces no sale", func(t *testing.T) {
		assert.Nil(t, planSale(product, 15, now))
	})

	t.Run("unchanged stock produces no sale", func(t *testing.T) {
		assert.Nil(t, planSale(product, 10, now))
	})

	t.Run("sale keeps its own name copy", func(t *testing.T) {
		p := &tables.Product{
			ID:    uuid.New(),
			Name:  "Original name",
			Stock: 5,
			Price: decimal.RequireFromString("2.00"),
		}
		sale := planSale(p, 4, now)
		require.NotNil(t, sale)

		p.Name = "Renamed later"
		assert.Equal(t, "Original name", sale.ProductName)
	})
}
