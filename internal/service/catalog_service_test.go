package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/storage/sqlite"
)

func TestCatalogService_SequentialIDs(t *testing.T) {
	s := setupTestServices(t, ordinaryDay)

	want := []string{"PROD0001", "PROD0002", "PROD0003"}
	for i, id := range want {
		p := mustAddProduct(t, s.catalog, "Item", "10", "5")
		if p.ID != id {
			t.Errorf("product %d: expected %s, got %s", i, id, p.ID)
		}
	}
	if got := len(s.catalog.List()); got != 3 {
		t.Errorf("expected 3 products, got %d", got)
	}
}

func TestCatalogService_AddFromForm(t *testing.T) {
	tests := []struct {
		name    string
		form    ProductForm
		wantErr func(error) bool
	}{
		{
			name: "valid",
			form: ProductForm{Name: "Sugar", Category: "Grocery", Price: "44.50", Stock: "20", MfgDate: "2024-01-01", ExpiryDate: "2025-01-01", GSTRate: "5%"},
		},
		{
			name:    "non-numeric price",
			form:    ProductForm{Name: "Sugar", Price: "abc", Stock: "1", GSTRate: "5"},
			wantErr: isParseError,
		},
		{
			name:    "bad date",
			form:    ProductForm{Name: "Sugar", Price: "1", Stock: "1", MfgDate: "01/02/2024", GSTRate: "5"},
			wantErr: isParseError,
		},
		{
			name:    "negative price",
			form:    ProductForm{Name: "Sugar", Price: "-1", Stock: "1", GSTRate: "5"},
			wantErr: isValidationError,
		},
		{
			name:    "negative stock",
			form:    ProductForm{Name: "Sugar", Price: "1", Stock: "-4", GSTRate: "5"},
			wantErr: isValidationError,
		},
		{
			name:    "missing name",
			form:    ProductForm{Price: "1", Stock: "1", GSTRate: "5"},
			wantErr: isValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServices(t, ordinaryDay)
			p, err := s.catalog.AddFromForm(context.Background(), tt.form)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !p.Price.Equal(dec("44.5")) || !p.GSTRate.Equal(dec("5")) {
					t.Errorf("unexpected product %+v", p)
				}
				return
			}
			if !tt.wantErr(err) {
				t.Fatalf("unexpected error type: %v", err)
			}
			if got := len(s.catalog.List()); got != 0 {
				t.Errorf("expected nothing stored, got %d products", got)
			}
		})
	}
}

func TestCatalogService_UpdateStockAndDelete(t *testing.T) {
	s := setupTestServices(t, ordinaryDay)
	ctx := context.Background()
	first := mustAddProduct(t, s.catalog, "Rice", "50", "5")
	mustAddProduct(t, s.catalog, "Dal", "110", "5")

	updated, err := s.catalog.UpdateStock(ctx, first.ID, 42)
	if err != nil {
		t.Fatalf("UpdateStock failed: %v", err)
	}
	if updated.Stock != 42 {
		t.Errorf("expected stock 42, got %d", updated.Stock)
	}
	if _, err := s.catalog.UpdateStock(ctx, first.ID, -1); !isValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	if err := s.catalog.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.catalog.Lookup(first.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected deleted product to be gone, got %v", err)
	}
	if err := s.catalog.Delete(ctx, first.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}

	third := mustAddProduct(t, s.catalog, "Tea", "120", "5")
	if third.ID != "PROD0003" {
		t.Errorf("expected deleted ID not to be reused, got %s", third.ID)
	}
}

func TestCatalogService_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kirana.db")

	store, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	s := setupWithStore(t, store, ordinaryDay)
	mustAddProduct(t, s.catalog, "Rice", "50.125", "5")
	mustAddProduct(t, s.catalog, "Dal", "110", "12")
	if err := s.catalog.Delete(context.Background(), "PROD0002"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	store.Close()

	reopened, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()
	s = setupWithStore(t, reopened, ordinaryDay)

	p, err := s.catalog.Lookup("PROD0001")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !p.Price.Equal(dec("50.125")) {
		t.Errorf("expected exact price 50.125, got %s", p.Price)
	}
	next := mustAddProduct(t, s.catalog, "Tea", "120", "5")
	if next.ID != "PROD0003" {
		t.Errorf("expected PROD0003 after reopen, got %s", next.ID)
	}
}

func isParseError(err error) bool {
	var perr *models.ParseError
	return errors.As(err, &perr)
}

func isValidationError(err error) bool {
	var verr *models.ValidationError
	return errors.As(err, &verr)
}
