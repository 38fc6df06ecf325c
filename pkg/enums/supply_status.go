package enums

// SupplyStatus is the stock-level badge for supply inventory rows.
// It is always derived from stock vs min_stock, never set directly.
type SupplyStatus string

const (
	SupplyStatusInStock  SupplyStatus = "IN STOCK"
	SupplyStatusLowStock SupplyStatus = "LOW STOCK"
)

// String implements fmt.Stringer.
func (s SupplyStatus) String() string {
	return string(s)
}

// SupplyStatusFor derives the status from the current counts.
func SupplyStatusFor(stock, minStock int) SupplyStatus {
	if stock <= minStock {
		return SupplyStatusLowStock
	}
	return SupplyStatusInStock
}
