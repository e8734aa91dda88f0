package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettingsService manages app-wide configuration: currency, the low-stock
// threshold, the negative-stock policy, sales platforms with their fee
// rules, SKU prefixes, and per-location delivery charges.
type SettingsService interface {
	Get(ctx context.Context) (AppSettings, error)
	// Update applies the non-nil fields. Switching currency also switches
	// the display symbol.
	Update(ctx context.Context, in SettingsUpdate) (AppSettings, error)

	AddPlatform(ctx context.Context, name string, feeValue decimal.Decimal, feeType FeeType) (*Platform, error)
	RemovePlatform(ctx context.Context, id string) error

	AddSkuPrefix(ctx context.Context, prefix, label string) (*SkuPrefix, error)
	RemoveSkuPrefix(ctx context.Context, id string) error
	ListSkuPrefixes(ctx context.Context) ([]SkuPrefix, error)

	AddLocationCharge(ctx context.Context, location string, charge decimal.Decimal) (*LocationCharge, error)
	RemoveLocationCharge(ctx context.Context, id string) error
	ListLocationCharges(ctx context.Context) ([]LocationCharge, error)
}

type SettingsUpdate struct {
	Currency           *string
	LowStockThreshold  *int
	AllowNegativeStock *bool
}

type settings struct {
	store *Store
}

func NewSettings(store *Store) SettingsService {
	return &settings{store: store}
}

func (s *settings) Get(_ context.Context) (AppSettings, error) {
	var out AppSettings
	s.store.View(func(st *State) {
		out = st.Settings
		out.Platforms = append([]Platform(nil), st.Settings.Platforms...)
	})
	return out, nil
}

func (s *settings) Update(ctx context.Context, in SettingsUpdate) (AppSettings, error) {
	var out AppSettings
	err := s.store.Update(ctx, func(st *State) error {
		if in.Currency != nil {
			st.Settings.Currency = *in.Currency
			switch *in.Currency {
			case "BDT":
				st.Settings.CurrencySymbol = "৳"
			case "USD":
				st.Settings.CurrencySymbol = "$"
			}
		}
		if in.LowStockThreshold != nil {
			st.Settings.LowStockThreshold = *in.LowStockThreshold
		}
		if in.AllowNegativeStock != nil {
			st.Settings.AllowNegativeStock = *in.AllowNegativeStock
		}
		st.MarkDirty(KeySettings)
		out = st.Settings
		return nil
	})
	return out, err
}

func (s *settings) AddPlatform(ctx context.Context, name string, feeValue decimal.Decimal, feeType FeeType) (*Platform, error) {
	platform := Platform{ID: uuid.NewString(), Name: name, FeeValue: feeValue, FeeType: feeType}
	err := s.store.Update(ctx, func(st *State) error {
		st.Settings.Platforms = append(st.Settings.Platforms, platform)
		st.MarkDirty(KeySettings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &platform, nil
}

func (s *settings) RemovePlatform(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(st *State) error {
		platforms := st.Settings.Platforms[:0]
		for _, p := range st.Settings.Platforms {
			if p.ID != id {
				platforms = append(platforms, p)
			}
		}
		st.Settings.Platforms = platforms
		st.MarkDirty(KeySettings)
		return nil
	})
}

func (s *settings) AddSkuPrefix(ctx context.Context, prefix, label string) (*SkuPrefix, error) {
	sp := SkuPrefix{ID: uuid.NewString(), Prefix: strings.ToUpper(prefix), Label: label}
	err := s.store.Update(ctx, func(st *State) error {
		st.SkuPrefixes = append(st.SkuPrefixes, sp)
		st.MarkDirty(KeySkuPrefixes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *settings) RemoveSkuPrefix(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(st *State) error {
		prefixes := st.SkuPrefixes[:0]
		for _, p := range st.SkuPrefixes {
			if p.ID != id {
				prefixes = append(prefixes, p)
			}
		}
		st.SkuPrefixes = prefixes
		st.MarkDirty(KeySkuPrefixes)
		return nil
	})
}

func (s *settings) ListSkuPrefixes(_ context.Context) ([]SkuPrefix, error) {
	var out []SkuPrefix
	s.store.View(func(st *State) {
		out = append(out, st.SkuPrefixes...)
	})
	return out, nil
}

func (s *settings) AddLocationCharge(ctx context.Context, location string, charge decimal.Decimal) (*LocationCharge, error) {
	lc := LocationCharge{ID: uuid.NewString(), Location: location, Charge: charge}
	err := s.store.Update(ctx, func(st *State) error {
		st.DeliveryCharges = append(st.DeliveryCharges, lc)
		st.MarkDirty(KeyDeliveryCharges)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lc, nil
}

func (s *settings) RemoveLocationCharge(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(st *State) error {
		charges := st.DeliveryCharges[:0]
		for _, c := range st.DeliveryCharges {
			if c.ID != id {
				charges = append(charges, c)
			}
		}
		st.DeliveryCharges = charges
		st.MarkDirty(KeyDeliveryCharges)
		return nil
	})
}

func (s *settings) ListLocationCharges(_ context.Context) ([]LocationCharge, error) {
	var out []LocationCharge
	s.store.View(func(st *State) {
		out = append(out, st.DeliveryCharges...)
	})
	return out, nil
}
