package models

import "github.com/shopspring/decimal"

// Product is a catalog entry.
type Product struct {
	// ID is the sequential product identifier (PRODnnnn).
	ID string `json:"product_id"`

	Name string `json:"name"`

	// Category is free text (e.g. "Grocery", "Patal Bhaji", "Spices").
	Category string `json:"category"`

	// Price is the non-negative unit price.
	Price decimal.Decimal `json:"price"`

	// Stock is the non-negative count on hand. Billing does not decrement it.
	Stock int `json:"stock"`

	// MfgDate and ExpiryDate are ISO dates (YYYY-MM-DD). They are not
	// compared against each other.
	MfgDate    string `json:"mfg_date"`
	ExpiryDate string `json:"expiry_date"`

	// GSTRate is a percentage, stored as entered.
	GSTRate decimal.Decimal `json:"gst_rate"`
}
