package tables

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	tableName struct{}  `bun:"table:categories,alias:c"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Color     string    `bun:"color,notnull" json:"color"` // hex string, e.g. #6366f1
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

// CategoryWithCount annotates a category with the number of products that
// reference it. The count is recomputed on every read, never stored.
type CategoryWithCount struct {
	Category
	ProductCount int `json:"product_count"`
}
