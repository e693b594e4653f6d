package services

import (
	"fmt"
	"testing"
	"time"

	"stockmate_server/lib"
	"stockmate_server/structs/tables"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProductInput(t *testing.T) {
	price := decimal.RequireFromString("9.99")

	t.Run("valid input", func(t *testing.T) {
		assert.NoError(t, validateProductInput("Tea", 5, price, []string{"a.jpg"}))
	})

	t.Run("zero stock and free price are allowed", func(t *testing.T) {
		assert.NoError(t, validateProductInput("Tea", 0, decimal.Zero, nil))
	})

	t.Run("empty name", func(t *testing.T) {
		assert.ErrorIs(t, validateProductInput("  ", 5, price, nil), lib.ErrValidation)
	})

	t.Run("negative stock", func(t *testing.T) {
		assert.ErrorIs(t, validateProductInput("Tea", -1, price, nil), lib.ErrValidation)
	})

	t.Run("negative price", func(t *testing.T) {
		assert.ErrorIs(t, validateProductInput("Tea", 5, decimal.RequireFromString("-0.01"), nil), lib.ErrValidation)
	})

	t.Run("too many images", func(t *testing.T) {
		images := make([]string, tables.MaxProductImages+1)
		for i := range images {
			images[i] = fmt.Sprintf("img-%d.jpg", i)
		}
		assert.ErrorIs(t, validateProductInput("Tea", 5, price, images), lib.ErrValidation)
	})

	t.Run("image limit boundary", func(t *testing.T) {
		images := make([]string, tables.MaxProductImages)
		for i := range images {
			images[i] = fmt.Sprintf("img-%d.jpg", i)
		}
		assert.NoError(t, validateProductInput("Tea", 5, price, images))
	})
}

func TestBuildPlaceholderProducts(t *testing.T) {
	categoryID := uuid.New()
	now := time.Now()
	images := []string{"one.jpg", "two.jpg", "three.jpg"}

	products := buildPlaceholderProducts(images, categoryID, now)
	require.Len(t, products, 3)

	for i, p := range products {
		assert.Equal(t, fmt.Sprintf("Unnamed product %d-%d", now.UnixMilli(), i+1), p.Name)
		assert.Equal(t, categoryID, p.CategoryID)
		assert.Zero(t, p.Stock)
		assert.True(t, p.Price.IsZero())
		assert.Equal(t, []string{images[i]}, p.Images)
		assert.Equal(t, now, p.CreatedAt)
		assert.NotEqual(t, uuid.Nil, p.ID)
	}

	// IDs must be distinct
	assert.NotEqual(t, products[0].ID, products[1].ID)
}
