package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/kirana/internal/ledger"
	"github.com/mmynk/kirana/internal/metrics"
	"github.com/mmynk/kirana/internal/middleware"
	"github.com/mmynk/kirana/internal/models"
)

// CustomerService exposes the customer directory.
type CustomerService struct {
	ledger  *ledger.Ledger
	metrics *metrics.Metrics
}

// NewCustomerService creates a CustomerService over l. m may be nil.
func NewCustomerService(l *ledger.Ledger, m *metrics.Metrics) *CustomerService {
	return &CustomerService{ledger: l, metrics: m}
}

// FindByPhone returns the customer registered with phone, if any.
func (s *CustomerService) FindByPhone(phone string) (models.Customer, bool) {
	var customer models.Customer
	var found bool
	s.ledger.Read(func(tx ledger.Tx) {
		customer, found = tx.Directory().FindByPhone(phone)
	})
	return customer, found
}

// CreateOrGet returns the customer with this phone, creating one if needed.
// For a known phone, name and address are ignored and nothing is written.
func (s *CustomerService) CreateOrGet(ctx context.Context, phone, name, address string) (models.Customer, error) {
	if existing, ok := s.FindByPhone(phone); ok {
		slog.Debug("Customer matched by phone", "customer_id", existing.ID)
		return existing, nil
	}

	var customer models.Customer
	var created bool
	err := middleware.Observe(ctx, s.metrics, "create_customer", func(ctx context.Context) error {
		return s.ledger.Write(ctx, func(tx ledger.Tx) error {
			var err error
			customer, created, err = tx.Directory().CreateOrGet(phone, name, address)
			return err
		})
	})
	if err != nil {
		return models.Customer{}, err
	}

	if created {
		slog.Info("Customer created", "customer_id", customer.ID, "name", customer.Name)
	}
	return customer, nil
}

// Lookup returns a customer by ID.
func (s *CustomerService) Lookup(id string) (models.Customer, error) {
	var customer models.Customer
	var err error
	s.ledger.Read(func(tx ledger.Tx) {
		customer, err = tx.Directory().Lookup(id)
	})
	return customer, err
}

// List returns all customers ordered by ID.
func (s *CustomerService) List() []models.Customer {
	var customers []models.Customer
	s.ledger.Read(func(tx ledger.Tx) {
		customers = tx.Directory().List()
	})
	return customers
}
