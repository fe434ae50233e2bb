package ledger

import (
	"maps"
	"slices"

	"github.com/mmynk/kirana/internal/models"
)

// Bills is the bill view of the ledger state. Bills are only ever inserted.
type Bills struct {
	s *models.Snapshot
}

// Insert assigns the next BILLnnnn to bill and stores it.
func (b Bills) Insert(bill models.Bill) models.Bill {
	b.s.Sequences.Bills++
	bill.ID = models.FormatID(models.BillPrefix, b.s.Sequences.Bills)
	bill.Items = append([]models.LineItem(nil), bill.Items...)
	b.s.Bills[bill.ID] = bill
	return bill
}

// Lookup returns the bill with the given ID.
func (b Bills) Lookup(id string) (models.Bill, error) {
	bill, ok := b.s.Bills[id]
	if !ok {
		return models.Bill{}, models.NotFound("bill", id)
	}
	return bill, nil
}

// List returns all bills ordered by ID.
func (b Bills) List() []models.Bill {
	bills := make([]models.Bill, 0, len(b.s.Bills))
	for _, id := range slices.Sorted(maps.Keys(b.s.Bills)) {
		bills = append(bills, b.s.Bills[id])
	}
	return bills
}
