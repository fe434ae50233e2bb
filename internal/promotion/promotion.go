// Package promotion models discount rules as replaceable strategies.
//
// A Rule is evaluated against the bill date and subtotal and returns an
// absolute discount. The billing service holds one Rule; combining several
// promotions is done with FirstMatch, so billing never changes when a new
// kind of promotion is added.
package promotion

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rule computes the discount for a bill.
type Rule interface {
	// Name is a human-readable label, shown on receipts.
	Name() string

	// Evaluate returns the discount amount for a bill created on date with
	// the given subtotal. Zero means the rule does not apply.
	Evaluate(date time.Time, subtotal decimal.Decimal) decimal.Decimal
}

// Applied reports which rule produced a discount.
type Applied struct {
	Name   string
	Amount decimal.Decimal
}

// Apply evaluates rule and reports the rule that actually matched. For a
// FirstMatch that is the inner rule, not the list.
func Apply(rule Rule, date time.Time, subtotal decimal.Decimal) Applied {
	if rule == nil {
		return Applied{Amount: decimal.Zero}
	}
	if fm, ok := rule.(FirstMatch); ok {
		matched, amount := fm.Select(date, subtotal)
		if matched == nil {
			return Applied{Amount: decimal.Zero}
		}
		return Applied{Name: matched.Name(), Amount: amount}
	}

	amount := rule.Evaluate(date, subtotal)
	if !amount.IsPositive() {
		return Applied{Amount: decimal.Zero}
	}
	return Applied{Name: rule.Name(), Amount: amount}
}

// None never discounts.
type None struct{}

func (None) Name() string { return "none" }

func (None) Evaluate(time.Time, decimal.Decimal) decimal.Decimal { return decimal.Zero }

// FixedDatePercent discounts a percentage of the subtotal on one calendar
// day every year.
type FixedDatePercent struct {
	Label   string
	Month   time.Month
	Day     int
	Percent decimal.Decimal
}

// NewFixedDatePercent validates and builds a FixedDatePercent rule.
func NewFixedDatePercent(label string, month time.Month, day int, percent decimal.Decimal) (FixedDatePercent, error) {
	if month < time.January || month > time.December {
		return FixedDatePercent{}, fmt.Errorf("invalid month %d", month)
	}
	// 2024 is a leap year, so Feb 29 is accepted.
	probe := time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
	if day < 1 || probe.Month() != month {
		return FixedDatePercent{}, fmt.Errorf("invalid day %d for %s", day, month)
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return FixedDatePercent{}, fmt.Errorf("percent must be between 0 and 100, got %s", percent)
	}
	return FixedDatePercent{Label: label, Month: month, Day: day, Percent: percent}, nil
}

// GudiPadwa is the shop's default promotion: 10% off the subtotal on March 22.
func GudiPadwa() FixedDatePercent {
	return FixedDatePercent{
		Label:   "Gudi Padwa",
		Month:   time.March,
		Day:     22,
		Percent: decimal.NewFromInt(10),
	}
}

func (r FixedDatePercent) Name() string { return r.Label }

// Evaluate applies the percentage to the subtotal (not subtotal + tax) when
// the month and day match.
func (r FixedDatePercent) Evaluate(date time.Time, subtotal decimal.Decimal) decimal.Decimal {
	if date.Month() != r.Month || date.Day() != r.Day || !subtotal.IsPositive() {
		return decimal.Zero
	}
	return subtotal.Mul(r.Percent).Div(hundred)
}

// FirstMatch evaluates rules in order and uses the first non-zero discount.
type FirstMatch []Rule

func (f FirstMatch) Name() string { return "first-match" }

func (f FirstMatch) Evaluate(date time.Time, subtotal decimal.Decimal) decimal.Decimal {
	_, amount := f.Select(date, subtotal)
	return amount
}

// Select returns the first rule with a positive discount, or nil.
func (f FirstMatch) Select(date time.Time, subtotal decimal.Decimal) (Rule, decimal.Decimal) {
	for _, rule := range f {
		if amount := rule.Evaluate(date, subtotal); amount.IsPositive() {
			return rule, amount
		}
	}
	return nil, decimal.Zero
}
