package core_test

import (
	"context"
	"testing"

	"biztrack/internal/core"

	"github.com/shopspring/decimal"
)

// Mutations must survive a reload through the persister: a second store
// sharing the same persister sees the first store's last write.
func TestStore_PersistAndReload(t *testing.T) {
	ctx := context.Background()
	persister := core.NewMemoryPersister()

	store := core.NewStore(persister)
	catalog := core.NewCatalog(store)
	ledger := core.NewLedger(store)

	p, err := catalog.CreateProduct(ctx, core.CreateProductInput{
		Name:         "Mug",
		SKU:          "GEN-MUG",
		BuyingPrice:  decimal.NewFromInt(30),
		SellingPrice: decimal.NewFromInt(50),
		Stock:        10,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := ledger.CreateSale(ctx, core.CreateSaleInput{
		ProductID: p.ID, Quantity: 2, Platform: "Offline", CustomerPhone: "017",
	}); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	reloaded := core.NewStore(persister)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := reloaded.Snapshot()
	if len(snap.Products) != 1 || snap.Products[0].Stock != 8 {
		t.Errorf("products = %+v, want one product with stock 8", snap.Products)
	}
	if len(snap.Sales) != 1 || snap.Sales[0].Status != core.SaleCompleted {
		t.Errorf("sales = %+v, want one completed sale", snap.Sales)
	}
	if len(snap.Customers) != 1 || snap.Customers[0].Phone != "017" {
		t.Errorf("customers = %+v, want auto-created customer", snap.Customers)
	}
	if !snap.Sales[0].Revenue.Equal(dec("100")) {
		t.Errorf("revenue = %s, want 100", snap.Sales[0].Revenue)
	}
}

// A failed CreateSale must not persist anything: the persister still holds
// the pre-call collections.
func TestStore_FailedOperationPersistsNothing(t *testing.T) {
	ctx := context.Background()
	persister := core.NewMemoryPersister()
	store := core.NewStore(persister)
	catalog := core.NewCatalog(store)
	ledger := core.NewLedger(store)

	p, err := catalog.CreateProduct(ctx, core.CreateProductInput{
		Name: "Pen", SKU: "GEN-PEN",
		BuyingPrice: decimal.NewFromInt(5), SellingPrice: decimal.NewFromInt(10),
		Stock: 1,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := ledger.CreateSale(ctx, core.CreateSaleInput{
		ProductID: p.ID, Quantity: 5, Platform: "Offline",
	}); err == nil {
		t.Fatal("expected insufficient stock error")
	}

	reloaded := core.NewStore(persister)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := reloaded.Snapshot()
	if len(snap.Sales) != 0 {
		t.Errorf("sales = %d, want 0", len(snap.Sales))
	}
	if snap.Products[0].Stock != 1 {
		t.Errorf("stock = %d, want 1", snap.Products[0].Stock)
	}
}

// Legacy stored settings held platforms as a bare list of names. Loading
// must upgrade them to structured platforms with fixed fee 0.
func TestStore_MigratesLegacyPlatformList(t *testing.T) {
	ctx := context.Background()
	persister := core.NewMemoryPersister()
	legacy := []byte(`{
		"currency": "BDT",
		"currencySymbol": "৳",
		"lowStockThreshold": 5,
		"allowNegativeStock": false,
		"platforms": ["Facebook", "Instagram"]
	}`)
	if err := persister.Save(ctx, core.KeySettings, legacy); err != nil {
		t.Fatalf("seed persister: %v", err)
	}

	store := core.NewStore(persister)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Settings.Platforms) != 2 {
		t.Fatalf("platforms = %d, want 2", len(snap.Settings.Platforms))
	}
	for _, p := range snap.Settings.Platforms {
		if p.FeeType != core.FeeFixed {
			t.Errorf("platform %s feeType = %s, want FIXED", p.Name, p.FeeType)
		}
		if !p.FeeValue.Equal(decimal.Zero) {
			t.Errorf("platform %s feeValue = %s, want 0", p.Name, p.FeeValue)
		}
		if p.ID == "" {
			t.Errorf("platform %s has no id", p.Name)
		}
	}
	if snap.Settings.Platforms[0].Name != "Facebook" || snap.Settings.Platforms[1].Name != "Instagram" {
		t.Errorf("platform names = %+v", snap.Settings.Platforms)
	}
}

// Modern settings round-trip untouched through the migration path.
func TestStore_ModernSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	persister := core.NewMemoryPersister()

	store := core.NewStore(persister)
	settings := core.NewSettings(store)
	if _, err := settings.AddPlatform(ctx, "Daraz", dec("7.5"), core.FeePercentage); err != nil {
		t.Fatalf("AddPlatform: %v", err)
	}

	reloaded := core.NewStore(persister)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := reloaded.Snapshot()
	var daraz *core.Platform
	for i := range snap.Settings.Platforms {
		if snap.Settings.Platforms[i].Name == "Daraz" {
			daraz = &snap.Settings.Platforms[i]
		}
	}
	if daraz == nil {
		t.Fatal("Daraz platform missing after reload")
	}
	if daraz.FeeType != core.FeePercentage || !daraz.FeeValue.Equal(dec("7.5")) {
		t.Errorf("Daraz = %+v, want PERCENTAGE 7.5", daraz)
	}
}
