package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem captures one cart line at the price it sold for.
type SaleItem struct {
	ID        int64           `gorm:"column:sales_item_id;primaryKey;autoIncrement"`
	SaleID    uuid.UUID       `gorm:"column:sale_id;type:uuid;not null"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical table name.
func (SaleItem) TableName() string {
	return "sales_items"
}
