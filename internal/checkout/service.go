package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PAUpau912/maki-kape-pos-system/internal/catalog"
	"github.com/PAUpau912/maki-kape-pos-system/internal/sales"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/metrics"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SettlementResult is what a confirmed checkout produces.
type SettlementResult struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CashReceived decimal.Decimal `json:"cash_received"`
	ChangeAmount decimal.Decimal `json:"change_amount"`
}

// Service drives checkout sessions and settles confirmed sales.
type Service interface {
	Session(userID uuid.UUID) *Session
	Confirm(ctx context.Context, userID uuid.UUID) (*SettlementResult, error)
}

type service struct {
	registry    *Registry
	tx          TxRunner
	catalogRepo catalog.Repository
	salesRepo   sales.Repository
	metrics     *metrics.SettlementMetrics
	logg        *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx TxRunner,
	catalogRepo catalog.Repository,
	salesRepo sales.Repository,
	settlementMetrics *metrics.SettlementMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, errors.New(errors.CodeInternal, "transaction runner is required")
	}
	if catalogRepo == nil {
		return nil, errors.New(errors.CodeInternal, "catalog repository is required")
	}
	if salesRepo == nil {
		return nil, errors.New(errors.CodeInternal, "sales repository is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "logger is required")
	}
	if settlementMetrics == nil {
		settlementMetrics = metrics.NewSettlementMetrics(nil)
	}
	return &service{
		registry:    NewRegistry(),
		tx:          tx,
		catalogRepo: catalogRepo,
		salesRepo:   salesRepo,
		metrics:     settlementMetrics,
		logg:        logg,
	}, nil
}

func (s *service) Session(userID uuid.UUID) *Session {
	return s.registry.Session(userID)
}

// Confirm settles the user's checkout session. The sale header, every sale
// item, and every stock decrement are written in a single transaction: either
// the whole sale lands or none of it does. Stock is re-read inside the
// transaction so a shelf that emptied since the cart was built fails the
// settlement instead of driving stock negative.
func (s *service) Confirm(ctx context.Context, userID uuid.UUID) (*SettlementResult, error) {
	session := s.registry.Session(userID)

	snap, err := session.beginSettlement()
	if err != nil {
		s.metrics.IncFailure(failureReason(err))
		return nil, err
	}

	start := time.Now()
	sale := &models.Sale{
		TotalAmount:  snap.totalAmount,
		CashReceived: decimal.NewFromInt(snap.amountGiven),
		ChangeAmount: snap.changeDue,
		UserID:       userID,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalogRepo.WithTx(tx)
		salesRepo := s.salesRepo.WithTx(tx)

		if _, err := salesRepo.CreateSale(ctx, sale); err != nil {
			return errors.Wrap(errors.CodeDependency, err, "failed to record sale")
		}

		for _, line := range snap.lines {
			fresh, err := catalogRepo.FindProductByID(ctx, line.Product.ID)
			if err != nil {
				return errors.Wrap(errors.CodeDependency, err,
					fmt.Sprintf("failed to load product %q", line.Product.Name))
			}
			if fresh.Stock < line.Quantity {
				return errors.New(errors.CodeValidation,
					fmt.Sprintf("not enough stock for %s", fresh.Name)).
					WithDetails(map[string]any{
						"product_id": fresh.ID,
						"available":  fresh.Stock,
						"requested":  line.Quantity,
					})
			}

			item := &models.SaleItem{
				SaleID:    sale.ID,
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.Product.Price,
				Subtotal:  line.Subtotal(),
			}
			if err := salesRepo.CreateSaleItem(ctx, item); err != nil {
				return errors.Wrap(errors.CodeDependency, err, "failed to record sale item")
			}
			if err := catalogRepo.UpdateProductStock(ctx, fresh.ID, fresh.Stock-line.Quantity); err != nil {
				return errors.Wrap(errors.CodeDependency, err,
					fmt.Sprintf("failed to update stock for %s", fresh.Name))
			}
		}
		return nil
	})

	if err != nil {
		session.endSettlement(false)
		s.metrics.IncFailure(failureReason(err))
		s.metrics.ObserveDuration("failure", time.Since(start))
		s.logg.Error(ctx, "checkout settlement failed", err)
		return nil, err
	}

	session.endSettlement(true)
	s.metrics.IncSuccess()
	s.metrics.ObserveDuration("success", time.Since(start))
	s.logg.Info(s.logg.WithSaleID(ctx, sale.ID.String()), "checkout settled")

	return &SettlementResult{
		SaleID:       sale.ID,
		TotalAmount:  snap.totalAmount,
		CashReceived: decimal.NewFromInt(snap.amountGiven),
		ChangeAmount: snap.changeDue,
	}, nil
}

func failureReason(err error) string {
	if coded := errors.As(err); coded != nil {
		return string(coded.Code())
	}
	return string(errors.CodeInternal)
}
