package core_test

import (
	"context"
	"testing"

	"biztrack/internal/core"

	"github.com/shopspring/decimal"
)

func TestPlatformFee(t *testing.T) {
	settings := core.AppSettings{
		Platforms: []core.Platform{
			{ID: "1", Name: "Store", FeeValue: decimal.NewFromInt(10), FeeType: core.FeePercentage},
			{ID: "2", Name: "Courier", FeeValue: dec("25.50"), FeeType: core.FeeFixed},
		},
	}

	tests := []struct {
		name     string
		platform string
		revenue  string
		want     string
	}{
		{"percentage scales with revenue", "Store", "100", "10"},
		{"percentage on fractional revenue", "Store", "99.90", "9.99"},
		{"fixed is flat per sale", "Courier", "1000", "25.50"},
		{"fixed ignores revenue", "Courier", "1", "25.50"},
		{"unknown platform is free", "Nowhere", "100", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settings.PlatformFee(tt.platform, dec(tt.revenue))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("PlatformFee(%s, %s) = %s, want %s", tt.platform, tt.revenue, got, tt.want)
			}
		})
	}
}

func TestSettings_CurrencySymbolFollowsCurrency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	usd := "USD"
	s, err := f.settings.Update(ctx, core.SettingsUpdate{Currency: &usd})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if s.CurrencySymbol != "$" {
		t.Errorf("symbol = %q, want $", s.CurrencySymbol)
	}

	bdt := "BDT"
	s, _ = f.settings.Update(ctx, core.SettingsUpdate{Currency: &bdt})
	if s.CurrencySymbol != "৳" {
		t.Errorf("symbol = %q, want ৳", s.CurrencySymbol)
	}
}

func TestSettings_PlatformLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.settings.AddPlatform(ctx, "Daraz", decimal.NewFromInt(5), core.FeePercentage)
	if err != nil {
		t.Fatalf("AddPlatform: %v", err)
	}
	s, _ := f.settings.Get(ctx)
	if len(s.Platforms) != 4 { // three defaults + Daraz
		t.Fatalf("platforms = %d, want 4", len(s.Platforms))
	}

	if err := f.settings.RemovePlatform(ctx, p.ID); err != nil {
		t.Fatalf("RemovePlatform: %v", err)
	}
	s, _ = f.settings.Get(ctx)
	for _, pl := range s.Platforms {
		if pl.ID == p.ID {
			t.Errorf("platform %s still present after removal", p.ID)
		}
	}
}

func TestSettings_SkuPrefixUppercased(t *testing.T) {
	f := newFixture(t)
	sp, err := f.settings.AddSkuPrefix(context.Background(), "fru", "Fruits")
	if err != nil {
		t.Fatalf("AddSkuPrefix: %v", err)
	}
	if sp.Prefix != "FRU" {
		t.Errorf("prefix = %q, want FRU", sp.Prefix)
	}
}
