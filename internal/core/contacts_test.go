package core_test

import (
	"context"
	"errors"
	"testing"

	"biztrack/internal/core"
)

func TestContacts_TaggedUnion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.contacts.CreateSupplier(ctx, core.Supplier{
		Name: "Acme Traders", Contact: "acme@example.com", Category: "Wholesale",
	}); err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if _, err := f.contacts.CreateCustomer(ctx, core.Customer{
		Name: "Rahim", Phone: "01712345678", Address: "Dhaka",
	}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	all, err := f.contacts.Contacts(ctx)
	if err != nil {
		t.Fatalf("Contacts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("contacts = %d, want 2", len(all))
	}

	kinds := map[core.ContactKind]core.Contact{}
	for _, c := range all {
		kinds[c.Kind] = c
	}
	supplier, ok := kinds[core.ContactSupplier]
	if !ok || supplier.Name != "Acme Traders" || supplier.Contact != "acme@example.com" {
		t.Errorf("supplier entry = %+v", supplier)
	}
	customer, ok := kinds[core.ContactCustomer]
	if !ok || customer.Name != "Rahim" || customer.Phone != "01712345678" {
		t.Errorf("customer entry = %+v", customer)
	}
}

func TestContacts_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.contacts.CreateSupplier(ctx, core.Supplier{Name: "Old"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	updated, err := f.contacts.UpdateSupplier(ctx, s.ID, core.Supplier{Name: "New", Category: "Retail"})
	if err != nil {
		t.Fatalf("UpdateSupplier: %v", err)
	}
	if updated.Name != "New" || updated.ID != s.ID {
		t.Errorf("updated = %+v", updated)
	}
	if err := f.contacts.DeleteSupplier(ctx, s.ID); err != nil {
		t.Fatalf("DeleteSupplier: %v", err)
	}
	suppliers, _ := f.contacts.ListSuppliers(ctx)
	if len(suppliers) != 0 {
		t.Errorf("suppliers = %d, want 0", len(suppliers))
	}

	missing, err := f.contacts.UpdateSupplier(ctx, "missing", core.Supplier{Name: "X"})
	if err != nil || missing != nil {
		t.Errorf("update unknown supplier = (%+v, %v), want (nil, nil)", missing, err)
	}
}

func TestUsers_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := core.NewUsers(f.store)

	if err := users.EnsureAdmin(ctx, "admin", "secret123"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	// Second call must not add another account.
	if err := users.EnsureAdmin(ctx, "admin2", "other"); err != nil {
		t.Fatalf("EnsureAdmin (second): %v", err)
	}

	u, err := users.Authenticate(ctx, "admin", "secret123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.Role != "admin" {
		t.Errorf("role = %q, want admin", u.Role)
	}

	if _, err := users.Authenticate(ctx, "admin", "wrong"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := users.Authenticate(ctx, "admin2", "other"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}
