package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
)

// SeriesPoint is one labeled bucket of a sales series.
type SeriesPoint struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// TotalSalesAmount sums the header totals across all sales.
func TotalSalesAmount(sales []models.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalAmount)
	}
	return total
}

// TotalItemsSold sums quantities across all sale items.
func TotalItemsSold(items []SaleItemView) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// TopSellerThisMonth returns the product name with the highest quantity sold
// in the month of now. Ties resolve to the lexicographically smaller name so
// the result is stable across runs. Returns "N/A" when the month has no sales.
func TopSellerThisMonth(items []SaleItemView, now time.Time) string {
	year, month := now.Year(), now.Month()
	counts := map[string]int{}
	for _, it := range items {
		if it.SaleDate.Year() != year || it.SaleDate.Month() != month {
			continue
		}
		counts[it.ProductName] += it.Quantity
	}
	best := ""
	bestQty := 0
	for name, qty := range counts {
		if qty > bestQty || (qty == bestQty && bestQty > 0 && name < best) {
			best = name
			bestQty = qty
		}
	}
	if best == "" {
		return "N/A"
	}
	return best
}

// MonthlySeries buckets sale totals by calendar month, labeled "Jan 2006".
// Buckets appear in the order their month is first seen in the input.
func MonthlySeries(sales []models.Sale) []SeriesPoint {
	order := []string{}
	amounts := map[string]decimal.Decimal{}
	for _, s := range sales {
		label := s.SaleDate.Format("Jan 2006")
		if _, ok := amounts[label]; !ok {
			order = append(order, label)
			amounts[label] = decimal.Zero
		}
		amounts[label] = amounts[label].Add(s.TotalAmount)
	}
	points := make([]SeriesPoint, 0, len(order))
	for _, label := range order {
		points = append(points, SeriesPoint{Label: label, Amount: amounts[label]})
	}
	return points
}

// WeeklySeries buckets the current month's sales into "Week n" slots, where a
// sale on day d of the month falls into week ceil(d/7). Weeks 1 through 5 are
// always present so the series shape is constant.
func WeeklySeries(sales []models.Sale, now time.Time) []SeriesPoint {
	year, month := now.Year(), now.Month()
	const weeks = 5
	points := make([]SeriesPoint, weeks)
	for i := range points {
		points[i] = SeriesPoint{Label: fmt.Sprintf("Week %d", i+1), Amount: decimal.Zero}
	}
	for _, s := range sales {
		if s.SaleDate.Year() != year || s.SaleDate.Month() != month {
			continue
		}
		week := (s.SaleDate.Day() + 6) / 7
		if week < 1 || week > weeks {
			continue
		}
		points[week-1].Amount = points[week-1].Amount.Add(s.TotalAmount)
	}
	return points
}
