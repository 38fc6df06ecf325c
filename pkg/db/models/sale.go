package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is the header written once per successful settlement, immutable
// thereafter.
type Sale struct {
	ID           uuid.UUID       `gorm:"column:sale_id;type:uuid;primaryKey"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	CashReceived decimal.Decimal `gorm:"column:cash_received;type:numeric(12,2);not null"`
	ChangeAmount decimal.Decimal `gorm:"column:change_amount;type:numeric(12,2);not null"`
	UserID       uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	SaleDate     time.Time       `gorm:"column:sale_date;autoCreateTime"`
	Items        []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the sale ID client-side so callers can reference it
// before the insert returns, and so sqlite-backed tests do not depend on a
// server-side uuid default.
func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
