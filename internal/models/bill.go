package models

import "github.com/shopspring/decimal"

// Bill is a generated sale. It is written once by the billing service and
// never modified afterwards.
type Bill struct {
	// ID is the sequential bill identifier (BILLnnnn).
	ID string `json:"bill_id"`

	// CustomerID references the customer the bill was raised for.
	// Weak reference: no cascading behavior.
	CustomerID string `json:"customer_id"`

	// Date is the ISO date (YYYY-MM-DD) the bill was created on.
	Date string `json:"date"`

	// Items are the accepted lines in entry order.
	Items []LineItem `json:"items"`

	// Total is the payable amount: subtotal + GST - discount.
	Total decimal.Decimal `json:"total"`

	// GST is the total tax charged across all lines.
	GST decimal.Decimal `json:"gst"`

	// Discount is the absolute promotional discount applied to the subtotal.
	Discount decimal.Decimal `json:"discount"`
}

// LineItem is one product line on a bill.
type LineItem struct {
	ProductID string `json:"product_id"`

	// Quantity is positive and may be fractional for weighed goods.
	Quantity decimal.Decimal `json:"quantity"`
}

// Subtotal recovers the pre-tax, pre-discount amount from the stored fields.
func (b Bill) Subtotal() decimal.Decimal {
	return b.Total.Sub(b.GST).Add(b.Discount)
}
