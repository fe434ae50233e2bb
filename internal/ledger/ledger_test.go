package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/storage/jsonfile"
	"github.com/mmynk/kirana/internal/storage/memory"
)

func sugar() ProductInput {
	return ProductInput{
		Name:       "Sugar",
		Category:   "Grocery",
		Price:      decimal.RequireFromString("44.50"),
		Stock:      20,
		MfgDate:    "2024-01-01",
		ExpiryDate: "2025-01-01",
		GSTRate:    decimal.NewFromInt(5),
	}
}

func openMemory(t *testing.T) (*Ledger, *memory.MemoryStore) {
	t.Helper()
	store := memory.New()
	l, err := Open(context.Background(), store)
	require.NoError(t, err)
	return l, store
}

func addProduct(t *testing.T, l *Ledger, in ProductInput) models.Product {
	t.Helper()
	var p models.Product
	err := l.Write(context.Background(), func(tx Tx) error {
		var err error
		p, err = tx.Catalog().Add(in)
		return err
	})
	require.NoError(t, err)
	return p
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file starts empty without error", func(t *testing.T) {
		store, err := jsonfile.New(filepath.Join(t.TempDir(), "shop.json"))
		require.NoError(t, err)

		l, err := Open(ctx, store)
		require.NoError(t, err)
		assert.Empty(t, l.Snapshot().Products)
	})

	t.Run("malformed file starts empty and reports", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shop.json")
		content := `{"products": {"PROD0001": {"product_id": "PROD0001", "name": "Sugar", "price": 44.5}},
			"customers": {"CUST0001": {"customer_id": "CUST0001", "credit_balance": "lots"}}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		store, err := jsonfile.New(path)
		require.NoError(t, err)

		l, err := Open(ctx, store)
		require.Error(t, err)
		assert.True(t, IsLoadFailure(err))
		require.NotNil(t, l)

		snapshot := l.Snapshot()
		assert.Empty(t, snapshot.Products, "well-formed sections must not be partially loaded")
		assert.Empty(t, snapshot.Customers)

		// The empty ledger is still usable.
		p := addProduct(t, l, sugar())
		assert.Equal(t, "PROD0001", p.ID)
	})

	t.Run("reopen keeps counters", func(t *testing.T) {
		store, err := jsonfile.New(filepath.Join(t.TempDir(), "shop.json"))
		require.NoError(t, err)
		l, err := Open(ctx, store)
		require.NoError(t, err)

		addProduct(t, l, sugar())
		second := addProduct(t, l, sugar())
		require.NoError(t, l.Write(ctx, func(tx Tx) error { return tx.Catalog().Delete(second.ID) }))

		reopened, err := Open(ctx, store)
		require.NoError(t, err)
		third := addProduct(t, reopened, sugar())
		assert.Equal(t, "PROD0003", third.ID, "deleted IDs must not be reissued")
	})
}

func TestWriteRollsBack(t *testing.T) {
	ctx := context.Background()

	t.Run("callback error", func(t *testing.T) {
		l, store := openMemory(t)
		err := l.Write(ctx, func(tx Tx) error {
			if _, err := tx.Catalog().Add(sugar()); err != nil {
				return err
			}
			return errors.New("abort")
		})
		require.Error(t, err)
		assert.Empty(t, l.Snapshot().Products)
		assert.Equal(t, 0, l.Snapshot().Sequences.Products)
		assert.Equal(t, 0, store.Saves())
	})

	t.Run("save error", func(t *testing.T) {
		l, store := openMemory(t)
		store.SaveErr = errors.New("disk full")

		err := l.Write(ctx, func(tx Tx) error {
			_, err := tx.Catalog().Add(sugar())
			return err
		})
		var perr *models.PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "save", perr.Op)
		assert.Empty(t, l.Snapshot().Products)

		store.SaveErr = nil
		p := addProduct(t, l, sugar())
		assert.Equal(t, "PROD0001", p.ID)
	})
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("IDs are sequential", func(t *testing.T) {
		l, _ := openMemory(t)
		for i, want := range []string{"PROD0001", "PROD0002", "PROD0003"} {
			p := addProduct(t, l, sugar())
			assert.Equal(t, want, p.ID, "product %d", i+1)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			edit  func(*ProductInput)
			field string
		}{
			{"negative price", func(in *ProductInput) { in.Price = decimal.NewFromInt(-1) }, "price"},
			{"negative stock", func(in *ProductInput) { in.Stock = -3 }, "stock"},
			{"blank name", func(in *ProductInput) { in.Name = "  " }, "name"},
			{"negative gst", func(in *ProductInput) { in.GSTRate = decimal.NewFromInt(-5) }, "gst_rate"},
			{"bad expiry", func(in *ProductInput) { in.ExpiryDate = "31/12/2025" }, "expiry_date"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				l, _ := openMemory(t)
				in := sugar()
				tt.edit(&in)

				err := l.Write(ctx, func(tx Tx) error {
					_, err := tx.Catalog().Add(in)
					return err
				})
				var verr *models.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.field, verr.Field)
			})
		}
	})

	t.Run("zero price and stock are allowed", func(t *testing.T) {
		l, _ := openMemory(t)
		in := sugar()
		in.Price = decimal.Zero
		in.Stock = 0
		in.MfgDate, in.ExpiryDate = "", ""
		p := addProduct(t, l, in)
		assert.Equal(t, "PROD0001", p.ID)
	})

	t.Run("lookup, update stock, delete", func(t *testing.T) {
		l, _ := openMemory(t)
		p := addProduct(t, l, sugar())

		var updated models.Product
		require.NoError(t, l.Write(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.Catalog().UpdateStock(p.ID, 55)
			return err
		}))
		assert.Equal(t, 55, updated.Stock)

		err := l.Write(ctx, func(tx Tx) error {
			_, err := tx.Catalog().UpdateStock(p.ID, -1)
			return err
		})
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)

		require.NoError(t, l.Write(ctx, func(tx Tx) error { return tx.Catalog().Delete(p.ID) }))
		l.Read(func(tx Tx) {
			_, err := tx.Catalog().Lookup(p.ID)
			assert.ErrorIs(t, err, models.ErrNotFound)
			assert.Empty(t, tx.Catalog().List())
		})

		err = l.Write(ctx, func(tx Tx) error { return tx.Catalog().Delete(p.ID) })
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()

	createOrGet := func(t *testing.T, l *Ledger, phone, name, address string) models.Customer {
		t.Helper()
		var c models.Customer
		require.NoError(t, l.Write(ctx, func(tx Tx) error {
			var err error
			c, _, err = tx.Directory().CreateOrGet(phone, name, address)
			return err
		}))
		return c
	}

	t.Run("CreateOrGet is idempotent on phone", func(t *testing.T) {
		l, _ := openMemory(t)
		first := createOrGet(t, l, "9822012345", "Sunita", "Pune")
		second := createOrGet(t, l, "9822012345", "Someone Else", "Mumbai")

		assert.Equal(t, "CUST0001", first.ID)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Sunita", second.Name, "existing record is returned unchanged")
		assert.Equal(t, "Pune", second.Address)
		assert.True(t, second.CreditBalance.IsZero())
		assert.False(t, second.IsRegular)
		assert.Len(t, l.Snapshot().Customers, 1)
	})

	t.Run("new phone gets next ID", func(t *testing.T) {
		l, _ := openMemory(t)
		createOrGet(t, l, "1", "A", "")
		c := createOrGet(t, l, "2", "B", "")
		assert.Equal(t, "CUST0002", c.ID)
	})

	t.Run("empty phone is rejected", func(t *testing.T) {
		l, _ := openMemory(t)
		err := l.Write(ctx, func(tx Tx) error {
			_, _, err := tx.Directory().CreateOrGet("", "A", "")
			return err
		})
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("duplicate phones resolve to lowest ID", func(t *testing.T) {
		snapshot := models.NewSnapshot()
		snapshot.Customers["CUST0002"] = models.Customer{ID: "CUST0002", Name: "Later", Phone: "555"}
		snapshot.Customers["CUST0001"] = models.Customer{ID: "CUST0001", Name: "Earlier", Phone: "555"}
		l, err := Open(ctx, memory.NewWithSnapshot(snapshot))
		require.NoError(t, err)

		l.Read(func(tx Tx) {
			c, ok := tx.Directory().FindByPhone("555")
			require.True(t, ok)
			assert.Equal(t, "CUST0001", c.ID)

			_, ok = tx.Directory().FindByPhone("556")
			assert.False(t, ok)
		})
	})
}

func TestBillsInsert(t *testing.T) {
	l, _ := openMemory(t)
	var first, second models.Bill
	require.NoError(t, l.Write(context.Background(), func(tx Tx) error {
		first = tx.Bills().Insert(models.Bill{CustomerID: "CUST0001", Date: "2024-03-01"})
		second = tx.Bills().Insert(models.Bill{CustomerID: "CUST0001", Date: "2024-03-01"})
		return nil
	}))
	assert.Equal(t, "BILL0001", first.ID)
	assert.Equal(t, "BILL0002", second.ID)

	l.Read(func(tx Tx) {
		assert.Len(t, tx.Bills().List(), 2)
		_, err := tx.Bills().Lookup("BILL0003")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
