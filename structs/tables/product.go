package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxProductImages caps the number of image references a product may carry.
const MaxProductImages = 5

type Product struct {
	tableName   struct{}        `bun:"table:products,alias:p"`
	ID          uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	Name        string          `bun:"name,notnull" json:"name"`
	CategoryID  uuid.UUID       `bun:"category_id,type:uuid,notnull" json:"category_id"`
	Stock       int64           `bun:"stock,notnull" json:"stock"`
	Price       decimal.Decimal `bun:"price,notnull,type:numeric" json:"price"`
	Description string          `bun:"description" json:"description,omitempty"`
	Images      []string        `bun:"images,array" json:"images,omitempty"` // URLs or inline-encoded image data, max 5
	CreatedAt   time.Time       `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time       `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}
