package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mmynk/kirana/internal/calculator"
	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/service"
)

// Each action returns an error only when input ends or cannot be read.
// Operation failures are printed and the menu continues.

func (s *Session) addProduct(ctx context.Context) error {
	fmt.Fprintln(s.out)
	s.banner("Add New Product")

	var form service.ProductForm
	fields := []struct {
		label string
		args  []any
		dst   *string
	}{
		{"Product Name: ", nil, &form.Name},
		{"Category (Grocery/Patal Bhaji/Spices): ", nil, &form.Category},
		{"Price (₹): ", nil, &form.Price},
		{"Stock: ", nil, &form.Stock},
		{"Manufacturing date (YYYY-MM-DD): ", nil, &form.MfgDate},
		{"Expiry date (YYYY-MM-DD): ", nil, &form.ExpiryDate},
		{"GST rate (%s): ", []any{s.bandHint()}, &form.GSTRate},
	}
	for _, f := range fields {
		value, err := s.prompt(f.label, f.args...)
		if err != nil {
			return err
		}
		*f.dst = value
	}

	in, err := service.ParseProductForm(form)
	if err != nil {
		s.reportError(err)
		return nil
	}
	if !s.usualBand(in.GSTRate) {
		s.println("Note: GST rate %s is not a usual band (%s).", in.GSTRate.String(), s.bandHint())
	}

	product, err := s.svc.Catalog.Add(ctx, in)
	if err != nil {
		s.reportError(err)
		return nil
	}
	s.println("Product added! ID: %s", product.ID)
	return nil
}

func (s *Session) bandHint() string {
	parts := make([]string, len(s.bands))
	for i, b := range s.bands {
		parts[i] = b.String()
	}
	return strings.Join(parts, "/") + "%"
}

func (s *Session) usualBand(rate decimal.Decimal) bool {
	if len(s.bands) == 0 {
		return true
	}
	for _, b := range s.bands {
		if b.Equal(rate) {
			return true
		}
	}
	return false
}

func (s *Session) viewProducts() {
	fmt.Fprintln(s.out)
	s.banner("View Products")

	products := s.svc.Catalog.List()
	if len(products) == 0 {
		s.println("No products yet.")
		return
	}

	p := s.printer
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		p.Sprintf("ID"), p.Sprintf("Name"), p.Sprintf("Category"), p.Sprintf("Price"),
		p.Sprintf("Stock"), "GST", p.Sprintf("Expiry"))
	for _, product := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s%%\t%s\n",
			product.ID, product.Name, product.Category, s.money(product.Price),
			product.Stock, product.GSTRate.String(), product.ExpiryDate)
	}
	tw.Flush()
}

// readProduct prompts for a product ID and looks it up. ok is false when
// the product does not exist; that has already been reported.
func (s *Session) readProduct() (product models.Product, ok bool, err error) {
	id, err := s.prompt("Product ID: ")
	if err != nil {
		return models.Product{}, false, err
	}
	product, lookupErr := s.svc.Catalog.Lookup(strings.ToUpper(id))
	if lookupErr != nil {
		s.reportError(lookupErr)
		return models.Product{}, false, nil
	}
	return product, true, nil
}

func (s *Session) updateStock(ctx context.Context) error {
	fmt.Fprintln(s.out)
	s.banner("Update Stock")

	product, ok, err := s.readProduct()
	if err != nil || !ok {
		return err
	}
	raw, err := s.prompt("New stock: ")
	if err != nil {
		return err
	}
	stock, err := service.ParseStock(raw)
	if err != nil {
		s.reportError(err)
		return nil
	}

	updated, err := s.svc.Catalog.UpdateStock(ctx, product.ID, stock)
	if err != nil {
		s.reportError(err)
		return nil
	}
	s.println("Stock updated: %s now has %s", updated.Name, strconv.Itoa(updated.Stock))
	return nil
}

func (s *Session) deleteProduct(ctx context.Context) error {
	fmt.Fprintln(s.out)
	s.banner("Delete Product")

	product, ok, err := s.readProduct()
	if err != nil || !ok {
		return err
	}
	answer, err := s.prompt("Delete %s (%s)? (y/n): ", product.Name, product.ID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		s.println("Cancelled.")
		return nil
	}

	if err := s.svc.Catalog.Delete(ctx, product.ID); err != nil {
		s.reportError(err)
		return nil
	}
	s.println("Product deleted: %s", product.ID)
	return nil
}

func (s *Session) newCustomer(ctx context.Context) error {
	fmt.Fprintln(s.out)
	s.banner("New Customer")

	phone, err := s.prompt("Customer Phone: ")
	if err != nil {
		return err
	}
	if existing, found := s.svc.Customers.FindByPhone(phone); found {
		s.println("Customer already registered: %s (%s)", existing.Name, existing.ID)
		return nil
	}

	customer, ok, err := s.registerCustomer(ctx, phone)
	if err != nil || !ok {
		return err
	}
	s.println("Customer added! ID: %s", customer.ID)
	return nil
}

// registerCustomer asks for the remaining details of a new customer and
// saves them.
func (s *Session) registerCustomer(ctx context.Context, phone string) (models.Customer, bool, error) {
	name, err := s.prompt("Name: ")
	if err != nil {
		return models.Customer{}, false, err
	}
	address, err := s.prompt("Address: ")
	if err != nil {
		return models.Customer{}, false, err
	}

	customer, err := s.svc.Customers.CreateOrGet(ctx, phone, name, address)
	if err != nil {
		s.reportError(err)
		return models.Customer{}, false, nil
	}
	return customer, true, nil
}

func (s *Session) newBill(ctx context.Context) error {
	fmt.Fprintln(s.out)
	s.banner("Generate Bill")

	phone, err := s.prompt("Customer Phone: ")
	if err != nil {
		return err
	}
	customer, found := s.svc.Customers.FindByPhone(phone)
	if !found {
		s.println("New customer!")
		var ok bool
		customer, ok, err = s.registerCustomer(ctx, phone)
		if err != nil || !ok {
			return err
		}
	}

	items, err := s.readItems()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.println("No items entered, bill cancelled.")
		return nil
	}

	result, err := s.svc.Billing.CreateBill(ctx, customer.ID, items)
	if err != nil {
		s.reportError(err)
		return nil
	}
	for _, rejected := range result.Rejected {
		s.println("Skipped: %v", rejected)
	}
	if result.Promotion != "" {
		s.println("%s discount!", s.printer.Sprintf(result.Promotion))
	}
	fmt.Fprintln(s.out)
	RenderReceipt(s.out, s.printer, result, s.places)
	return nil
}

// readItems collects cart lines until the operator types done. Unknown IDs
// and bad quantities are reported and asked again.
func (s *Session) readItems() ([]models.LineItem, error) {
	var items []models.LineItem
	for {
		id, err := s.prompt("Add Product (ID or 'done'): ")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(id, "done") {
			return items, nil
		}
		product, err := s.svc.Catalog.Lookup(strings.ToUpper(id))
		if err != nil {
			s.println("Invalid ID!")
			continue
		}

		quantity, err := s.readQuantity(product.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.LineItem{ProductID: product.ID, Quantity: quantity})
		s.println("Added: %s x %s", product.Name, quantity.String())
	}
}

func (s *Session) readQuantity(productID string) (decimal.Decimal, error) {
	for {
		raw, err := s.prompt("Quantity: ")
		if err != nil {
			return decimal.Decimal{}, err
		}
		quantity, err := service.ParseQuantity(raw)
		if err == nil {
			_, err = s.svc.Billing.CheckItem(productID, quantity)
		}
		if err != nil {
			s.println("Invalid quantity!")
			continue
		}
		return quantity, nil
	}
}

func (s *Session) viewSales() {
	fmt.Fprintln(s.out)
	s.banner("Sales Summary")

	report := s.svc.Billing.SalesReport()
	if report.Overall.Bills == 0 {
		s.println("No sales yet.")
		return
	}

	p := s.printer
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t%s\t%s\t%s\t%s\t\n",
		p.Sprintf("Bills"), p.Sprintf("Subtotal"), "GST", p.Sprintf("Discount"), p.Sprintf("Payable"))
	s.summaryRow(tw, p.Sprintf("Total"), report.Overall)

	fmt.Fprintf(tw, "%s\t\t\t\t\t\t\n", p.Sprintf("By date"))
	for _, day := range report.ByDate {
		s.summaryRow(tw, day.Date, day.SalesSummary)
	}

	fmt.Fprintf(tw, "%s\t\t\t\t\t\t\n", p.Sprintf("By customer"))
	for _, c := range report.ByCustomer {
		label := c.CustomerID
		if customer, err := s.svc.Customers.Lookup(c.CustomerID); err == nil {
			label = fmt.Sprintf("%s (%s)", customer.Name, customer.ID)
		}
		s.summaryRow(tw, label, c.SalesSummary)
	}
	tw.Flush()
}

func (s *Session) summaryRow(tw *tabwriter.Writer, label string, sum calculator.SalesSummary) {
	fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t\n",
		label, sum.Bills, s.money(sum.Subtotal), s.money(sum.GST), s.money(sum.Discount), s.money(sum.Total))
}
