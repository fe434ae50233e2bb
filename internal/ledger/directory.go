package ledger

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/kirana/internal/models"
)

// Directory is the customer view of the ledger state.
type Directory struct {
	s *models.Snapshot
}

// FindByPhone returns the customer with exactly this phone. Duplicate phones
// are not prevented; the lowest customer ID wins.
func (d Directory) FindByPhone(phone string) (models.Customer, bool) {
	for _, id := range slices.Sorted(maps.Keys(d.s.Customers)) {
		if c := d.s.Customers[id]; c.Phone == phone {
			return c, true
		}
	}
	return models.Customer{}, false
}

// CreateOrGet returns the customer with this phone, or creates one.
// For an existing phone the name and address arguments are ignored and the
// stored record is returned unchanged.
func (d Directory) CreateOrGet(phone, name, address string) (models.Customer, bool, error) {
	if c, ok := d.FindByPhone(phone); ok {
		return c, false, nil
	}
	if strings.TrimSpace(phone) == "" {
		return models.Customer{}, false, &models.ValidationError{Field: "phone", Reason: "must not be empty"}
	}

	d.s.Sequences.Customers++
	c := models.Customer{
		ID:            models.FormatID(models.CustomerPrefix, d.s.Sequences.Customers),
		Name:          strings.TrimSpace(name),
		Phone:         phone,
		Address:       strings.TrimSpace(address),
		CreditBalance: decimal.Zero,
		IsRegular:     false,
	}
	d.s.Customers[c.ID] = c
	return c, true, nil
}

// Lookup returns the customer with the given ID.
func (d Directory) Lookup(id string) (models.Customer, error) {
	c, ok := d.s.Customers[id]
	if !ok {
		return models.Customer{}, models.NotFound("customer", id)
	}
	return c, nil
}

// List returns all customers ordered by ID.
func (d Directory) List() []models.Customer {
	customers := make([]models.Customer, 0, len(d.s.Customers))
	for _, id := range slices.Sorted(maps.Keys(d.s.Customers)) {
		customers = append(customers, d.s.Customers[id])
	}
	return customers
}
