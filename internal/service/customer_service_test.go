package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/storage/memory"
)

func TestCustomerService_CreateOrGet(t *testing.T) {
	store := memory.New()
	s := setupWithStore(t, store, ordinaryDay)
	ctx := context.Background()

	first, err := s.customers.CreateOrGet(ctx, "9876543210", "Asha", "Pune")
	if err != nil {
		t.Fatalf("CreateOrGet failed: %v", err)
	}
	if first.ID != "CUST0001" {
		t.Errorf("expected CUST0001, got %s", first.ID)
	}
	if !first.CreditBalance.IsZero() || first.IsRegular {
		t.Errorf("expected default credit and regular flag, got %+v", first)
	}
	saves := store.Saves()

	again, err := s.customers.CreateOrGet(ctx, "9876543210", "Someone Else", "Mumbai")
	if err != nil {
		t.Fatalf("CreateOrGet failed: %v", err)
	}
	if again.ID != first.ID || again.Name != "Asha" || again.Address != "Pune" {
		t.Errorf("expected existing record unchanged, got %+v", again)
	}
	if store.Saves() != saves {
		t.Errorf("expected no save for an existing phone")
	}
	if got := len(s.customers.List()); got != 1 {
		t.Errorf("expected 1 customer, got %d", got)
	}

	second, err := s.customers.CreateOrGet(ctx, "9123456780", "Ravi", "Nashik")
	if err != nil {
		t.Fatalf("CreateOrGet failed: %v", err)
	}
	if second.ID != "CUST0002" {
		t.Errorf("expected CUST0002, got %s", second.ID)
	}
}

func TestCustomerService_Errors(t *testing.T) {
	s := setupTestServices(t, ordinaryDay)

	if _, err := s.customers.CreateOrGet(context.Background(), "  ", "Asha", "Pune"); !isValidationError(err) {
		t.Errorf("expected validation error for empty phone, got %v", err)
	}
	if _, err := s.customers.Lookup("CUST0001"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, ok := s.customers.FindByPhone("000"); ok {
		t.Errorf("expected no match")
	}
}
