package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ID prefixes for the three identifier spaces.
const (
	ProductPrefix  = "PROD"
	CustomerPrefix = "CUST"
	BillPrefix     = "BILL"
)

// Snapshot is the full persisted ledger state.
type Snapshot struct {
	Products  map[string]Product  `json:"products"`
	Customers map[string]Customer `json:"customers"`
	Bills     map[string]Bill     `json:"bills"`

	// Sequences holds the last issued sequence number per entity type.
	// It only moves forward, so IDs are never reissued after a delete.
	Sequences Sequences `json:"sequences"`
}

// Sequences are the per-entity monotonic counters.
type Sequences struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Bills     int `json:"bills"`
}

// NewSnapshot returns an empty snapshot with all maps allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Products:  make(map[string]Product),
		Customers: make(map[string]Customer),
		Bills:     make(map[string]Bill),
	}
}

// Normalize allocates missing maps and raises each counter to at least the
// highest sequence number found among the stored IDs. Files written before
// counters existed load with counters seeded this way.
func (s *Snapshot) Normalize() {
	if s.Products == nil {
		s.Products = make(map[string]Product)
	}
	if s.Customers == nil {
		s.Customers = make(map[string]Customer)
	}
	if s.Bills == nil {
		s.Bills = make(map[string]Bill)
	}

	for id := range s.Products {
		if n, ok := ParseID(ProductPrefix, id); ok && n > s.Sequences.Products {
			s.Sequences.Products = n
		}
	}
	for id := range s.Customers {
		if n, ok := ParseID(CustomerPrefix, id); ok && n > s.Sequences.Customers {
			s.Sequences.Customers = n
		}
	}
	for id := range s.Bills {
		if n, ok := ParseID(BillPrefix, id); ok && n > s.Sequences.Bills {
			s.Sequences.Bills = n
		}
	}
}

// FormatID renders a sequence number as PREFIXnnnn. Numbers past 9999 keep
// all their digits.
func FormatID(prefix string, n int) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// ParseID extracts the sequence number from an ID with the given prefix.
func ParseID(prefix, id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, prefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Clone returns a deep copy. Decimal values are immutable and shared.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Products:  make(map[string]Product, len(s.Products)),
		Customers: make(map[string]Customer, len(s.Customers)),
		Bills:     make(map[string]Bill, len(s.Bills)),
		Sequences: s.Sequences,
	}
	for id, p := range s.Products {
		c.Products[id] = p
	}
	for id, cu := range s.Customers {
		c.Customers[id] = cu
	}
	for id, b := range s.Bills {
		b.Items = append([]LineItem(nil), b.Items...)
		c.Bills[id] = b
	}
	return c
}
