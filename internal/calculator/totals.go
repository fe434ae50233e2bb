package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one priced product line to be totalled.
type Line struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	GSTRate   decimal.Decimal // percentage
}

// LineAmount is a line with its computed amounts. Amounts are exact (not rounded).
type LineAmount struct {
	Line
	Amount decimal.Decimal // UnitPrice × Quantity
	Tax    decimal.Decimal // Amount × GSTRate / 100
}

// Totals is the result of CalculateTotals.
type Totals struct {
	Lines    []LineAmount
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
}

// CalculateTotals computes per-line amounts and tax, then the bill subtotal and
// tax rounded to the given number of decimal places.
// Tax is computed per line from each line's own rate, so mixed-rate carts work:
// tax = Σ(unit_price × quantity × gst_rate / 100)
func CalculateTotals(lines []Line, places int32) (Totals, error) {
	totals := Totals{
		Lines:    make([]LineAmount, 0, len(lines)),
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
	}

	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, line := range lines {
		if line.UnitPrice.IsNegative() {
			return Totals{}, fmt.Errorf("line %s: unit price cannot be negative", line.ProductID)
		}
		if !line.Quantity.IsPositive() {
			return Totals{}, fmt.Errorf("line %s: quantity must be positive", line.ProductID)
		}

		amount := line.UnitPrice.Mul(line.Quantity)
		lineTax := amount.Mul(line.GSTRate).Div(hundred)

		totals.Lines = append(totals.Lines, LineAmount{Line: line, Amount: amount, Tax: lineTax})
		subtotal = subtotal.Add(amount)
		tax = tax.Add(lineTax)
	}

	totals.Subtotal = subtotal.Round(places)
	totals.Tax = tax.Round(places)
	return totals, nil
}

// Payable returns subtotal + tax - discount.
func Payable(subtotal, tax, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Sub(discount)
}
