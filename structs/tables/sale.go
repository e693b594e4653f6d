package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleTransaction is an immutable historical fact derived from a stock
// decrease. ProductName and UnitPrice are captured at sale time and are not
// kept in sync with later product edits; rows survive product deletion.
type SaleTransaction struct {
	tableName    struct{}        `bun:"table:sales_transactions,alias:st"`
	ID           uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	ProductID    uuid.UUID       `bun:"product_id,type:uuid,notnull" json:"product_id"`
	ProductName  string          `bun:"product_name,notnull" json:"product_name"`
	QuantitySold int64           `bun:"quantity_sold,notnull" json:"quantity_sold"`
	UnitPrice    decimal.Decimal `bun:"unit_price,notnull,type:numeric" json:"unit_price"`
	TotalAmount  decimal.Decimal `bun:"total_amount,notnull,type:numeric" json:"total_amount"`
	CreatedAt    time.Time       `bun:"created_at,notnull,default:now()" json:"created_at"`
}
