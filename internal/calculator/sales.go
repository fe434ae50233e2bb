package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/kirana/internal/models"
)

// SalesSummary aggregates a set of bills.
type SalesSummary struct {
	Bills    int
	Subtotal decimal.Decimal
	GST      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// DaySales is the summary for one calendar date.
type DaySales struct {
	Date string
	SalesSummary
}

// CustomerSales is the summary for one customer.
type CustomerSales struct {
	CustomerID string
	SalesSummary
}

// SalesReport is the output of SummarizeSales.
type SalesReport struct {
	Overall    SalesSummary
	ByDate     []DaySales      // ascending by date
	ByCustomer []CustomerSales // descending by total, then by ID
}

func (s *SalesSummary) add(b models.Bill) {
	s.Bills++
	s.Subtotal = s.Subtotal.Add(b.Subtotal())
	s.GST = s.GST.Add(b.GST)
	s.Discount = s.Discount.Add(b.Discount)
	s.Total = s.Total.Add(b.Total)
}

// SummarizeSales computes overall, per-day and per-customer totals.
//
// Algorithm:
// - Each bill contributes its stored total, gst and discount
// - Subtotal is recovered as total - gst + discount, so it matches what was billed
func SummarizeSales(bills []models.Bill) SalesReport {
	var report SalesReport
	byDate := make(map[string]*SalesSummary)
	byCustomer := make(map[string]*SalesSummary)

	for _, bill := range bills {
		report.Overall.add(bill)

		if _, exists := byDate[bill.Date]; !exists {
			byDate[bill.Date] = &SalesSummary{}
		}
		byDate[bill.Date].add(bill)

		if _, exists := byCustomer[bill.CustomerID]; !exists {
			byCustomer[bill.CustomerID] = &SalesSummary{}
		}
		byCustomer[bill.CustomerID].add(bill)
	}

	for date, summary := range byDate {
		report.ByDate = append(report.ByDate, DaySales{Date: date, SalesSummary: *summary})
	}
	slices.SortFunc(report.ByDate, func(a, b DaySales) int {
		return cmp.Compare(a.Date, b.Date)
	})

	for id, summary := range byCustomer {
		report.ByCustomer = append(report.ByCustomer, CustomerSales{CustomerID: id, SalesSummary: *summary})
	}
	slices.SortFunc(report.ByCustomer, func(a, b CustomerSales) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.CustomerID, b.CustomerID)
	})

	return report
}
