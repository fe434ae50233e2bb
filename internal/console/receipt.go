package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"

	"github.com/mmynk/kirana/internal/service"
)

// RenderReceipt prints a bill using the labels of p's language. Amounts are
// shown with places decimal places.
func RenderReceipt(w io.Writer, p *message.Printer, r *service.BillResult, places int32) {
	money := func(d decimal.Decimal) string { return "₹" + d.StringFixed(places) }
	heavy := strings.Repeat("=", width)

	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w, center(p.Sprintf("BILL"), width))
	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w, p.Sprintf("Bill ID: %s", r.Bill.ID))
	fmt.Fprintln(w, p.Sprintf("Date: %s", r.Bill.Date))
	fmt.Fprintln(w, p.Sprintf("Customer: %s (%s)", r.Customer.Name, r.Customer.ID))

	for _, line := range r.Lines {
		fmt.Fprintf(w, "%s x%s @ %s = %s\n",
			line.Name, line.Quantity.String(), money(line.UnitPrice), money(line.Amount))
	}

	fmt.Fprintln(w, strings.Repeat("-", width))
	fmt.Fprintf(w, "%s: %s\n", p.Sprintf("Subtotal"), money(r.Subtotal))
	fmt.Fprintf(w, "GST: %s\n", money(r.GST))
	fmt.Fprintf(w, "%s: %s\n", p.Sprintf("Discount"), money(r.Discount))
	fmt.Fprintf(w, "%s: %s\n", p.Sprintf("Payable"), money(r.Total))
	fmt.Fprintln(w, heavy)
}
