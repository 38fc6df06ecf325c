package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/enums"
)

// Product is a sellable menu item. Stock is decremented by settlement
// and otherwise only through inventory edits.
type Product struct {
	ID         int64               `gorm:"column:product_id;primaryKey;autoIncrement"`
	Name       string              `gorm:"column:product_name;not null"`
	CategoryID int64               `gorm:"column:category_id;not null"`
	Price      decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	ImageURL   *string             `gorm:"column:image_url"`
	Stock      int                 `gorm:"column:stock;not null;default:0"`
	Status     enums.ProductStatus `gorm:"column:status;not null;default:'available'"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// Sellable reports whether the product can be added to a cart.
func (p Product) Sellable() bool {
	return p.Stock > 0 && p.Status == enums.ProductStatusAvailable
}
