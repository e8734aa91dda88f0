package core

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Collection keys. Kept identical to the original browser app's storage
// keys so an exported snapshot of that store loads here unchanged.
const (
	KeySettings        = "biztrack_settings"
	KeySkuPrefixes     = "biztrack_prefixes"
	KeyDeliveryCharges = "biztrack_delivery_charges"
	KeyProducts        = "biztrack_products"
	KeySales           = "biztrack_sales"
	KeyExpenses        = "biztrack_expenses"
	KeySuppliers       = "biztrack_suppliers"
	KeyCustomers       = "biztrack_customers"
	KeyUsers           = "biztrack_users"
)

// Persister is the durability port. The store hands it the full JSON
// encoding of each collection after every mutation; it owns nothing else.
type Persister interface {
	// Save durably stores the encoded collection under key.
	Save(ctx context.Context, key string, data []byte) error
	// Load returns the last-saved encoding for key, or (nil, nil) if the
	// key has never been saved.
	Load(ctx context.Context, key string) ([]byte, error)
}

// State holds every canonical collection. It must only be touched inside
// Store.Update or Store.View, which hold the store lock.
type State struct {
	Settings        AppSettings
	SkuPrefixes     []SkuPrefix
	DeliveryCharges []LocationCharge
	Products        []Product
	Sales           []Sale
	Expenses        []Expense
	Suppliers       []Supplier
	Customers       []Customer
	Users           []User

	dirty map[string]bool
}

// MarkDirty flags collections for persistence when the enclosing Update
// commits.
func (st *State) MarkDirty(keys ...string) {
	for _, k := range keys {
		st.dirty[k] = true
	}
}

// FindProduct returns a pointer into the Products slice, valid only while
// the store lock is held.
func (st *State) FindProduct(id string) (*Product, bool) {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return &st.Products[i], true
		}
	}
	return nil, false
}

// FindSale returns a pointer into the Sales slice, valid only while the
// store lock is held.
func (st *State) FindSale(id string) (*Sale, bool) {
	for i := range st.Sales {
		if st.Sales[i].ID == id {
			return &st.Sales[i], true
		}
	}
	return nil, false
}

// EnsureCustomer creates a customer for the given phone if none exists,
// with a default name derived from the phone and the given note. Blank
// phones are ignored. Marks the customer collection dirty when it creates.
func (st *State) EnsureCustomer(phone, note string) {
	if phone == "" {
		return
	}
	for _, c := range st.Customers {
		if c.Phone == phone {
			return
		}
	}
	st.Customers = append([]Customer{{
		ID:    uuid.NewString(),
		Name:  "Customer " + phone,
		Phone: phone,
		Notes: note,
	}}, st.Customers...)
	st.MarkDirty(KeyCustomers)
}

// Store is the single ledger instance: every collection behind one lock.
// All mutating operations and all snapshot reads serialize on it, so the
// multi-step stock reconciliations in the ledger are never observed
// half-applied.
type Store struct {
	mu        sync.Mutex
	persister Persister
	state     State
}

func NewStore(p Persister) *Store {
	return &Store{
		persister: p,
		state: State{
			Settings:    defaultSettings(),
			SkuPrefixes: defaultSkuPrefixes(),
		},
	}
}

// Load replays the last-saved collections from the persister. Missing keys
// keep their defaults. Legacy settings that stored platforms as a bare
// list of names are upgraded to structured platforms on the way in.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.persister.Load(ctx, KeySettings)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeySettings, err)
	}
	if raw != nil {
		settings, err := decodeSettings(raw)
		if err != nil {
			return fmt.Errorf("decode %s: %w", KeySettings, err)
		}
		s.state.Settings = settings
	}

	for _, c := range []struct {
		key  string
		dest any
	}{
		{KeySkuPrefixes, &s.state.SkuPrefixes},
		{KeyDeliveryCharges, &s.state.DeliveryCharges},
		{KeyProducts, &s.state.Products},
		{KeySales, &s.state.Sales},
		{KeyExpenses, &s.state.Expenses},
		{KeySuppliers, &s.state.Suppliers},
		{KeyCustomers, &s.state.Customers},
		{KeyUsers, &s.state.Users},
	} {
		raw, err := s.persister.Load(ctx, c.key)
		if err != nil {
			return fmt.Errorf("load %s: %w", c.key, err)
		}
		if raw == nil {
			continue
		}
		if err := json.Unmarshal(raw, c.dest); err != nil {
			return fmt.Errorf("decode %s: %w", c.key, err)
		}
	}
	return nil
}

// Update runs fn under the store lock, then persists every collection fn
// marked dirty. fn must perform all validation before its first mutation:
// an error return aborts persistence but cannot roll back in-memory
// changes already made.
func (s *Store) Update(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.dirty = make(map[string]bool)
	if err := fn(&s.state); err != nil {
		return err
	}
	return s.persistDirty(ctx)
}

// View runs fn under the store lock without persisting.
func (s *Store) View(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// StateSnapshot is a consistent copy of every collection, safe to read
// after the lock is released. Reporting, export, and the AI advisor
// consume these.
type StateSnapshot struct {
	Settings        AppSettings
	SkuPrefixes     []SkuPrefix
	DeliveryCharges []LocationCharge
	Products        []Product
	Sales           []Sale
	Expenses        []Expense
	Suppliers       []Supplier
	Customers       []Customer
}

// Snapshot copies all collections under one lock acquisition.
func (s *Store) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StateSnapshot{
		Settings:        s.state.Settings,
		SkuPrefixes:     slices.Clone(s.state.SkuPrefixes),
		DeliveryCharges: slices.Clone(s.state.DeliveryCharges),
		Products:        slices.Clone(s.state.Products),
		Sales:           slices.Clone(s.state.Sales),
		Expenses:        slices.Clone(s.state.Expenses),
		Suppliers:       slices.Clone(s.state.Suppliers),
		Customers:       slices.Clone(s.state.Customers),
	}
	snap.Settings.Platforms = slices.Clone(s.state.Settings.Platforms)
	return snap
}

func (s *Store) persistDirty(ctx context.Context) error {
	for _, key := range []string{
		KeySettings, KeySkuPrefixes, KeyDeliveryCharges, KeyProducts,
		KeySales, KeyExpenses, KeySuppliers, KeyCustomers, KeyUsers,
	} {
		if !s.state.dirty[key] {
			continue
		}
		data, err := json.Marshal(s.collection(key))
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if err := s.persister.Save(ctx, key, data); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) collection(key string) any {
	switch key {
	case KeySettings:
		return s.state.Settings
	case KeySkuPrefixes:
		return s.state.SkuPrefixes
	case KeyDeliveryCharges:
		return s.state.DeliveryCharges
	case KeyProducts:
		return s.state.Products
	case KeySales:
		return s.state.Sales
	case KeyExpenses:
		return s.state.Expenses
	case KeySuppliers:
		return s.state.Suppliers
	case KeyCustomers:
		return s.state.Customers
	case KeyUsers:
		return s.state.Users
	}
	return nil
}

// decodeSettings parses stored settings, upgrading the legacy platform
// representation (a JSON array of names) to structured platforms with
// fixed fee 0.
func decodeSettings(data []byte) (AppSettings, error) {
	var probe struct {
		Currency           string          `json:"currency"`
		CurrencySymbol     string          `json:"currencySymbol"`
		LowStockThreshold  int             `json:"lowStockThreshold"`
		AllowNegativeStock bool            `json:"allowNegativeStock"`
		Platforms          json.RawMessage `json:"platforms"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return AppSettings{}, err
	}

	settings := AppSettings{
		Currency:           probe.Currency,
		CurrencySymbol:     probe.CurrencySymbol,
		LowStockThreshold:  probe.LowStockThreshold,
		AllowNegativeStock: probe.AllowNegativeStock,
	}

	if len(probe.Platforms) == 0 {
		return settings, nil
	}
	var platforms []Platform
	if err := json.Unmarshal(probe.Platforms, &platforms); err == nil {
		settings.Platforms = platforms
		return settings, nil
	}

	var names []string
	if err := json.Unmarshal(probe.Platforms, &names); err != nil {
		return AppSettings{}, fmt.Errorf("unrecognized platforms encoding: %w", err)
	}
	for _, name := range names {
		settings.Platforms = append(settings.Platforms, Platform{
			ID:      uuid.NewString(),
			Name:    name,
			FeeType: FeeFixed,
		})
	}
	return settings, nil
}
