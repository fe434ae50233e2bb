package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/kirana/internal/calculator"
	"github.com/mmynk/kirana/internal/ledger"
	"github.com/mmynk/kirana/internal/metrics"
	"github.com/mmynk/kirana/internal/middleware"
	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/promotion"
)

// DefaultCurrencyPlaces is the rupee's minor unit (paise).
const DefaultCurrencyPlaces int32 = 2

// ItemError reports one cart line that was left off the bill.
type ItemError struct {
	Index     int // position in the submitted cart
	ProductID string
	Err       error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Index+1, e.ProductID, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// ItemErrors is returned, wrapped in a ValidationError, when no line of a
// cart could be accepted.
type ItemErrors []*ItemError

func (errs ItemErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (errs ItemErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// BillResult is everything needed to print a receipt for a new bill.
type BillResult struct {
	Bill      models.Bill
	Customer  models.Customer
	Lines     []calculator.LineAmount
	Subtotal  decimal.Decimal
	GST       decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Promotion string // empty when no discount applied
	Rejected  []*ItemError
}

// BillingOption configures a BillingService.
type BillingOption func(*BillingService)

// WithPromotion sets the discount rule. The default is Gudi Padwa.
func WithPromotion(rule promotion.Rule) BillingOption {
	return func(s *BillingService) {
		if rule != nil {
			s.rule = rule
		}
	}
}

// WithCurrencyPlaces sets the rounding of bill-level amounts.
func WithCurrencyPlaces(places int32) BillingOption {
	return func(s *BillingService) { s.places = places }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) BillingOption {
	return func(s *BillingService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics records bill amounts and operation outcomes in m.
func WithMetrics(m *metrics.Metrics) BillingOption {
	return func(s *BillingService) { s.metrics = m }
}

// BillingService turns a cart into a saved bill.
type BillingService struct {
	ledger  *ledger.Ledger
	rule    promotion.Rule
	places  int32
	now     func() time.Time
	metrics *metrics.Metrics
}

// NewBillingService creates a BillingService over l.
func NewBillingService(l *ledger.Ledger, opts ...BillingOption) *BillingService {
	s := &BillingService{
		ledger: l,
		rule:   promotion.GudiPadwa(),
		places: DefaultCurrencyPlaces,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckItem validates one cart line against the catalog without billing it.
func (s *BillingService) CheckItem(productID string, quantity decimal.Decimal) (models.Product, error) {
	var product models.Product
	var err error
	s.ledger.Read(func(tx ledger.Tx) {
		product, err = checkItem(tx.Catalog(), productID, quantity)
	})
	return product, err
}

func checkItem(catalog ledger.Catalog, productID string, quantity decimal.Decimal) (models.Product, error) {
	product, err := catalog.Lookup(productID)
	if err != nil {
		return models.Product{}, err
	}
	if !quantity.IsPositive() {
		return models.Product{}, &models.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	return product, nil
}

// CreateBill prices the cart for customerID and saves the bill.
//
// Lines with an unknown product or a non-positive quantity are skipped and
// reported in BillResult.Rejected; the rest of the cart is billed. An unknown
// customer fails the whole call with ErrNotFound, and a cart with no
// acceptable lines fails with a ValidationError. If the bill cannot be saved
// nothing is kept and the PersistenceError is returned.
func (s *BillingService) CreateBill(ctx context.Context, customerID string, items []models.LineItem) (*BillResult, error) {
	var result *BillResult
	err := middleware.Observe(ctx, s.metrics, "create_bill", func(ctx context.Context) error {
		return s.ledger.Write(ctx, func(tx ledger.Tx) error {
			var err error
			result, err = s.price(tx, customerID, items)
			if err != nil {
				return err
			}
			result.Bill = tx.Bills().Insert(result.Bill)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordBill(result.Total, result.GST, result.Discount, len(result.Rejected))
	}
	slog.Info("Bill created",
		"bill_id", result.Bill.ID,
		"customer_id", customerID,
		"items", len(result.Bill.Items),
		"rejected", len(result.Rejected),
		"subtotal", result.Subtotal.String(),
		"gst", result.GST.String(),
		"discount", result.Discount.String(),
		"total", result.Total.String(),
	)
	return result, nil
}

// price builds the bill without inserting it.
func (s *BillingService) price(tx ledger.Tx, customerID string, items []models.LineItem) (*BillResult, error) {
	customer, err := tx.Directory().Lookup(customerID)
	if err != nil {
		return nil, err
	}

	var rejected ItemErrors
	accepted := make([]models.LineItem, 0, len(items))
	lines := make([]calculator.Line, 0, len(items))
	for i, item := range items {
		product, err := checkItem(tx.Catalog(), item.ProductID, item.Quantity)
		if err != nil {
			slog.Debug("Item rejected", "index", i, "product_id", item.ProductID, "error", err)
			rejected = append(rejected, &ItemError{Index: i, ProductID: item.ProductID, Err: err})
			continue
		}
		accepted = append(accepted, models.LineItem{ProductID: product.ID, Quantity: item.Quantity})
		lines = append(lines, calculator.Line{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			GSTRate:   product.GSTRate,
		})
	}
	if len(lines) == 0 {
		if len(rejected) == 0 {
			return nil, &models.ValidationError{Field: "items", Reason: "must not be empty"}
		}
		return nil, &models.ValidationError{Field: "items", Reason: "has no valid lines", Err: rejected}
	}

	totals, err := calculator.CalculateTotals(lines, s.places)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate totals: %w", err)
	}

	date := s.now()
	applied := promotion.Apply(s.rule, date, totals.Subtotal)
	discount := applied.Amount.Round(s.places)
	total := calculator.Payable(totals.Subtotal, totals.Tax, discount)

	return &BillResult{
		Bill: models.Bill{
			CustomerID: customer.ID,
			Date:       date.Format(time.DateOnly),
			Items:      accepted,
			Total:      total,
			GST:        totals.Tax,
			Discount:   discount,
		},
		Customer:  customer,
		Lines:     totals.Lines,
		Subtotal:  totals.Subtotal,
		GST:       totals.Tax,
		Discount:  discount,
		Total:     total,
		Promotion: applied.Name,
		Rejected:  rejected,
	}, nil
}

// Bills returns every bill ordered by ID.
func (s *BillingService) Bills() []models.Bill {
	var bills []models.Bill
	s.ledger.Read(func(tx ledger.Tx) {
		bills = tx.Bills().List()
	})
	return bills
}

// SalesReport summarizes all bills on record.
func (s *BillingService) SalesReport() calculator.SalesReport {
	return calculator.SummarizeSales(s.Bills())
}

// IsItemError reports whether err is about a single cart line.
func IsItemError(err error) bool {
	var ierr *ItemError
	return errors.As(err, &ierr)
}
