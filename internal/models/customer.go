package models

import "github.com/shopspring/decimal"

// Customer is a shop customer. Phone is the natural lookup key but is not
// declared unique; duplicates are tolerated.
type Customer struct {
	// ID is the sequential customer identifier (CUSTnnnn).
	ID string `json:"customer_id"`

	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	// CreditBalance is credit extended by the shop. Defaults to zero.
	CreditBalance decimal.Decimal `json:"credit_balance"`

	// IsRegular marks repeat customers. Not used by billing.
	IsRegular bool `json:"is_regular"`
}
