package controllers

import (
	"net/http"
	"time"

	"github.com/PAUpau912/maki-kape-pos-system/api/responses"
	"github.com/PAUpau912/maki-kape-pos-system/api/validators"
	"github.com/PAUpau912/maki-kape-pos-system/internal/sales"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

type seriesPointResponse struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type saleItemResponse struct {
	SaleID      string `json:"sale_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
	SaleDate    string `json:"sale_date"`
}

type dashboardResponse struct {
	TotalSalesAmount string                `json:"total_sales_amount"`
	TotalItemsSold   int                   `json:"total_items_sold"`
	TopSeller        string                `json:"top_seller"`
	MonthlySeries    []seriesPointResponse `json:"monthly_series"`
	WeeklySeries     []seriesPointResponse `json:"weekly_series"`
	RecentItems      []saleItemResponse    `json:"recent_items"`
}

func toSeriesResponses(points []sales.SeriesPoint) []seriesPointResponse {
	out := make([]seriesPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, seriesPointResponse{Label: p.Label, Amount: p.Amount.StringFixed(2)})
	}
	return out
}

func toSaleItemResponses(items []sales.SaleItemView) []saleItemResponse {
	out := make([]saleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, saleItemResponse{
			SaleID:      it.SaleID.String(),
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Subtotal:    it.Subtotal.StringFixed(2),
			SaleDate:    it.SaleDate.Format(time.RFC3339),
		})
	}
	return out
}

// DashboardMetrics serves the sales dashboard aggregates.
func DashboardMetrics(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		metrics, err := svc.DashboardMetrics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboardResponse{
			TotalSalesAmount: metrics.TotalSalesAmount.StringFixed(2),
			TotalItemsSold:   metrics.TotalItemsSold,
			TopSeller:        metrics.TopSeller,
			MonthlySeries:    toSeriesResponses(metrics.MonthlySeries),
			WeeklySeries:     toSeriesResponses(metrics.WeeklySeries),
			RecentItems:      toSaleItemResponses(metrics.RecentItems),
		})
	}
}

// RecentSaleItems serves the latest sold items feed.
func RecentSaleItems(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Recent(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSaleItemResponses(items))
	}
}
