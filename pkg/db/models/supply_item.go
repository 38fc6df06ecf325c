package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/enums"
)

// SupplyItem tracks back-of-house supplies, separate from menu products.
// Status is derived from Stock vs MinStock on every write and recomputed
// on read; the stored value is never trusted on its own.
type SupplyItem struct {
	ID        int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string             `gorm:"column:product_name;not null"`
	Category  string             `gorm:"column:category;not null"`
	Price     decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Stock     int                `gorm:"column:stock;not null;default:0"`
	MinStock  int                `gorm:"column:min_stock;not null;default:0"`
	Unit      string             `gorm:"column:unit"`
	Status    enums.SupplyStatus `gorm:"column:status;not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the historical table name.
func (SupplyItem) TableName() string {
	return "inventory_products"
}
