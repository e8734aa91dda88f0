package core

import (
	"context"

	"github.com/google/uuid"
)

// ContactService owns suppliers and customers. Customers may also be
// auto-created by the ledger when a sale carries a new phone number.
type ContactService interface {
	// Contacts returns suppliers and customers as one tagged list.
	Contacts(ctx context.Context) ([]Contact, error)

	ListSuppliers(ctx context.Context) ([]Supplier, error)
	CreateSupplier(ctx context.Context, in Supplier) (*Supplier, error)
	UpdateSupplier(ctx context.Context, id string, in Supplier) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	ListCustomers(ctx context.Context) ([]Customer, error)
	CreateCustomer(ctx context.Context, in Customer) (*Customer, error)
	UpdateCustomer(ctx context.Context, id string, in Customer) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type contacts struct {
	store *Store
}

func NewContacts(store *Store) ContactService {
	return &contacts{store: store}
}

func (c *contacts) Contacts(_ context.Context) ([]Contact, error) {
	var out []Contact
	c.store.View(func(st *State) {
		for _, s := range st.Suppliers {
			out = append(out, Contact{
				Kind: ContactSupplier, ID: s.ID, Name: s.Name,
				Contact: s.Contact, Category: s.Category, Notes: s.Notes,
			})
		}
		for _, cu := range st.Customers {
			out = append(out, Contact{
				Kind: ContactCustomer, ID: cu.ID, Name: cu.Name,
				Phone: cu.Phone, Address: cu.Address, Notes: cu.Notes,
			})
		}
	})
	return out, nil
}

func (c *contacts) ListSuppliers(_ context.Context) ([]Supplier, error) {
	var out []Supplier
	c.store.View(func(st *State) {
		out = append(out, st.Suppliers...)
	})
	return out, nil
}

func (c *contacts) CreateSupplier(ctx context.Context, in Supplier) (*Supplier, error) {
	in.ID = uuid.NewString()
	err := c.store.Update(ctx, func(st *State) error {
		st.Suppliers = append([]Supplier{in}, st.Suppliers...)
		st.MarkDirty(KeySuppliers)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (c *contacts) UpdateSupplier(ctx context.Context, id string, in Supplier) (*Supplier, error) {
	var updated *Supplier
	err := c.store.Update(ctx, func(st *State) error {
		for i := range st.Suppliers {
			if st.Suppliers[i].ID == id {
				in.ID = id
				st.Suppliers[i] = in
				st.MarkDirty(KeySuppliers)
				cp := in
				updated = &cp
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *contacts) DeleteSupplier(ctx context.Context, id string) error {
	return c.store.Update(ctx, func(st *State) error {
		for i := range st.Suppliers {
			if st.Suppliers[i].ID == id {
				st.Suppliers = append(st.Suppliers[:i], st.Suppliers[i+1:]...)
				st.MarkDirty(KeySuppliers)
				return nil
			}
		}
		return nil
	})
}

func (c *contacts) ListCustomers(_ context.Context) ([]Customer, error) {
	var out []Customer
	c.store.View(func(st *State) {
		out = append(out, st.Customers...)
	})
	return out, nil
}

func (c *contacts) CreateCustomer(ctx context.Context, in Customer) (*Customer, error) {
	in.ID = uuid.NewString()
	err := c.store.Update(ctx, func(st *State) error {
		st.Customers = append([]Customer{in}, st.Customers...)
		st.MarkDirty(KeyCustomers)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (c *contacts) UpdateCustomer(ctx context.Context, id string, in Customer) (*Customer, error) {
	var updated *Customer
	err := c.store.Update(ctx, func(st *State) error {
		for i := range st.Customers {
			if st.Customers[i].ID == id {
				in.ID = id
				st.Customers[i] = in
				st.MarkDirty(KeyCustomers)
				cp := in
				updated = &cp
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *contacts) DeleteCustomer(ctx context.Context, id string) error {
	return c.store.Update(ctx, func(st *State) error {
		for i := range st.Customers {
			if st.Customers[i].ID == id {
				st.Customers = append(st.Customers[:i], st.Customers[i+1:]...)
				st.MarkDirty(KeyCustomers)
				return nil
			}
		}
		return nil
	})
}
