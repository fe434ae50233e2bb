package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/kirana/internal/ledger"
	"github.com/mmynk/kirana/internal/models"
)

// ProductForm is a new product as typed by the operator, before parsing.
type ProductForm struct {
	Name       string
	Category   string
	Price      string
	Stock      string
	MfgDate    string
	ExpiryDate string
	GSTRate    string
}

// ParseProductForm converts raw form fields. Malformed numbers or dates give
// a *models.ParseError naming the field; range checks are left to the catalog.
func ParseProductForm(form ProductForm) (ledger.ProductInput, error) {
	price, err := ParseDecimal("price", form.Price)
	if err != nil {
		return ledger.ProductInput{}, err
	}
	stock, err := ParseStock(form.Stock)
	if err != nil {
		return ledger.ProductInput{}, err
	}
	mfg, err := ParseDate("mfg_date", form.MfgDate)
	if err != nil {
		return ledger.ProductInput{}, err
	}
	expiry, err := ParseDate("expiry_date", form.ExpiryDate)
	if err != nil {
		return ledger.ProductInput{}, err
	}
	rate, err := ParseDecimal("gst_rate", strings.TrimSuffix(strings.TrimSpace(form.GSTRate), "%"))
	if err != nil {
		return ledger.ProductInput{}, err
	}

	return ledger.ProductInput{
		Name:       form.Name,
		Category:   form.Category,
		Price:      price,
		Stock:      stock,
		MfgDate:    mfg,
		ExpiryDate: expiry,
		GSTRate:    rate,
	}, nil
}

// ParseDecimal parses a decimal number such as "44.50".
func ParseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &models.ParseError{Field: field, Input: raw, Err: err}
	}
	return d, nil
}

// ParseQuantity parses a bill quantity. Fractions are allowed for weighed
// goods; the value must be positive.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	q, err := ParseDecimal("quantity", raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !q.IsPositive() {
		return decimal.Decimal{}, &models.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	return q, nil
}

// ParseStock parses a whole-number stock count.
func ParseStock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.ParseError{Field: "stock", Input: raw, Err: err}
	}
	return n, nil
}

// ParseDate checks a YYYY-MM-DD date and returns it unchanged. Empty input
// is allowed and means unknown.
func ParseDate(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, raw); err != nil {
		return "", &models.ParseError{Field: field, Input: raw, Err: err}
	}
	return raw, nil
}
