package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/kirana/internal/ledger"
	"github.com/mmynk/kirana/internal/metrics"
	"github.com/mmynk/kirana/internal/middleware"
	"github.com/mmynk/kirana/internal/models"
)

// CatalogService exposes product operations. Every mutation is saved before
// it returns.
type CatalogService struct {
	ledger  *ledger.Ledger
	metrics *metrics.Metrics
}

// NewCatalogService creates a CatalogService over l. m may be nil.
func NewCatalogService(l *ledger.Ledger, m *metrics.Metrics) *CatalogService {
	return &CatalogService{ledger: l, metrics: m}
}

// Add validates and stores a new product with the next PRODnnnn ID.
func (s *CatalogService) Add(ctx context.Context, in ledger.ProductInput) (models.Product, error) {
	var product models.Product
	err := middleware.Observe(ctx, s.metrics, "add_product", func(ctx context.Context) error {
		return s.ledger.Write(ctx, func(tx ledger.Tx) error {
			var err error
			product, err = tx.Catalog().Add(in)
			return err
		})
	})
	if err != nil {
		return models.Product{}, err
	}

	slog.Info("Product added",
		"product_id", product.ID,
		"name", product.Name,
		"price", product.Price.String(),
		"gst_rate", product.GSTRate.String(),
	)
	return product, nil
}

// AddFromForm parses raw operator input and adds the product.
func (s *CatalogService) AddFromForm(ctx context.Context, form ProductForm) (models.Product, error) {
	in, err := ParseProductForm(form)
	if err != nil {
		return models.Product{}, err
	}
	return s.Add(ctx, in)
}

// Lookup returns a product by ID.
func (s *CatalogService) Lookup(id string) (models.Product, error) {
	var product models.Product
	var err error
	s.ledger.Read(func(tx ledger.Tx) {
		product, err = tx.Catalog().Lookup(id)
	})
	return product, err
}

// List returns all products ordered by ID.
func (s *CatalogService) List() []models.Product {
	var products []models.Product
	s.ledger.Read(func(tx ledger.Tx) {
		products = tx.Catalog().List()
	})
	return products
}

// UpdateStock sets a product's stock count.
func (s *CatalogService) UpdateStock(ctx context.Context, id string, stock int) (models.Product, error) {
	var product models.Product
	err := middleware.Observe(ctx, s.metrics, "update_stock", func(ctx context.Context) error {
		return s.ledger.Write(ctx, func(tx ledger.Tx) error {
			var err error
			product, err = tx.Catalog().UpdateStock(id, stock)
			return err
		})
	})
	if err != nil {
		return models.Product{}, err
	}

	slog.Info("Stock updated", "product_id", id, "stock", stock)
	return product, nil
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	err := middleware.Observe(ctx, s.metrics, "delete_product", func(ctx context.Context) error {
		return s.ledger.Write(ctx, func(tx ledger.Tx) error {
			return tx.Catalog().Delete(id)
		})
	})
	if err != nil {
		return err
	}

	slog.Info("Product deleted", "product_id", id)
	return nil
}
