package ledger

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/kirana/internal/models"
)

// ProductInput carries the fields for a new product.
type ProductInput struct {
	Name       string
	Category   string
	Price      decimal.Decimal
	Stock      int
	MfgDate    string
	ExpiryDate string
	GSTRate    decimal.Decimal
}

// Catalog is the product view of the ledger state.
type Catalog struct {
	s *models.Snapshot
}

// Add validates in, assigns the next PRODnnnn and inserts the product.
func (c Catalog) Add(in ProductInput) (models.Product, error) {
	if err := validateProduct(in); err != nil {
		return models.Product{}, err
	}

	c.s.Sequences.Products++
	p := models.Product{
		ID:         models.FormatID(models.ProductPrefix, c.s.Sequences.Products),
		Name:       strings.TrimSpace(in.Name),
		Category:   strings.TrimSpace(in.Category),
		Price:      in.Price,
		Stock:      in.Stock,
		MfgDate:    in.MfgDate,
		ExpiryDate: in.ExpiryDate,
		GSTRate:    in.GSTRate,
	}
	c.s.Products[p.ID] = p
	return p, nil
}

// Lookup returns the product with the given ID.
func (c Catalog) Lookup(id string) (models.Product, error) {
	p, ok := c.s.Products[id]
	if !ok {
		return models.Product{}, models.NotFound("product", id)
	}
	return p, nil
}

// List returns all products ordered by ID.
func (c Catalog) List() []models.Product {
	products := make([]models.Product, 0, len(c.s.Products))
	for _, id := range slices.Sorted(maps.Keys(c.s.Products)) {
		products = append(products, c.s.Products[id])
	}
	return products
}

// UpdateStock sets the stock count of a product.
func (c Catalog) UpdateStock(id string, stock int) (models.Product, error) {
	p, err := c.Lookup(id)
	if err != nil {
		return models.Product{}, err
	}
	if stock < 0 {
		return models.Product{}, &models.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	p.Stock = stock
	c.s.Products[id] = p
	return p, nil
}

// Delete removes a product. Bills that mention it are left untouched and the
// ID is never reissued.
func (c Catalog) Delete(id string) error {
	if _, ok := c.s.Products[id]; !ok {
		return models.NotFound("product", id)
	}
	delete(c.s.Products, id)
	return nil
}

func validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Price.IsNegative() {
		return &models.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if in.Stock < 0 {
		return &models.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	if in.GSTRate.IsNegative() {
		return &models.ValidationError{Field: "gst_rate", Reason: "must not be negative"}
	}
	if err := validateDate("mfg_date", in.MfgDate); err != nil {
		return err
	}
	return validateDate("expiry_date", in.ExpiryDate)
}

// validateDate accepts an empty date or YYYY-MM-DD. Manufacture and expiry
// dates are not compared.
func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return &models.ValidationError{Field: field, Reason: "must be YYYY-MM-DD", Err: err}
	}
	return nil
}
