package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseMarketing   ExpenseCategory = "Marketing"
	ExpenseDelivery    ExpenseCategory = "Delivery"
	ExpensePackaging   ExpenseCategory = "Packaging"
	ExpensePlatformFee ExpenseCategory = "Platform Fee"
	ExpenseSalesLoss   ExpenseCategory = "Sales Loss"
	ExpenseRefundLoss  ExpenseCategory = "Refund Loss"
	ExpenseOther       ExpenseCategory = "Other"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "Completed"
	SaleRefunded  SaleStatus = "Refunded"
)

type FeeType string

const (
	FeePercentage FeeType = "PERCENTAGE"
	FeeFixed      FeeType = "FIXED"
)

// Platform is a sales channel with its commission rule. Sales reference
// platforms by name, not id, so deleting a platform leaves historical
// sales displaying the old name while new sales resolve a zero fee.
type Platform struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	FeeValue decimal.Decimal `json:"feeValue"`
	FeeType  FeeType         `json:"feeType"`
}

type AppSettings struct {
	Currency           string     `json:"currency"`
	CurrencySymbol     string     `json:"currencySymbol"`
	LowStockThreshold  int        `json:"lowStockThreshold"`
	AllowNegativeStock bool       `json:"allowNegativeStock"`
	Platforms          []Platform `json:"platforms"`
}

// PlatformFee resolves the named platform's fee rule against a sale's
// revenue. Percentage rules scale with revenue; fixed rules are flat per
// sale regardless of quantity. An unknown platform name yields zero.
func (s AppSettings) PlatformFee(platformName string, revenue decimal.Decimal) decimal.Decimal {
	for _, p := range s.Platforms {
		if p.Name != platformName {
			continue
		}
		if p.FeeType == FeePercentage {
			return revenue.Mul(p.FeeValue).Div(decimal.NewFromInt(100))
		}
		return p.FeeValue
	}
	return decimal.Zero
}

type SkuPrefix struct {
	ID     string `json:"id"`
	Prefix string `json:"prefix"`
	Label  string `json:"label"`
}

type LocationCharge struct {
	ID       string          `json:"id"`
	Location string          `json:"location"`
	Charge   decimal.Decimal `json:"charge"`
}

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Stock        int             `json:"stock"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Sale is a ledger record. The *Snapshot fields and the derived fields
// (Revenue, TotalCost, PlatformFee, Profit) are fixed at create/update
// time so later product price edits never rewrite historical profit.
// ProductID may dangle after the product is deleted; ProductName and the
// snapshots keep the record self-describing.
type Sale struct {
	ID                   string          `json:"id"`
	ProductID            string          `json:"productId"`
	ProductName          string          `json:"productName"`
	Quantity             int             `json:"quantity"`
	SellingPriceSnapshot decimal.Decimal `json:"sellingPriceSnapshot"`
	BuyingCostSnapshot   decimal.Decimal `json:"buyingCostSnapshot"`
	Revenue              decimal.Decimal `json:"revenue"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	Profit               decimal.Decimal `json:"profit"`
	PlatformFee          decimal.Decimal `json:"platformFee"`
	DeliveryCharge       decimal.Decimal `json:"deliveryCharge"`
	Location             string          `json:"location"`
	Platform             string          `json:"platform"`
	Date                 time.Time       `json:"date"`
	Status               SaleStatus      `json:"status"`
	RefundDate           *time.Time      `json:"refundDate,omitempty"`
	DeliveryPaidOnRefund *bool           `json:"deliveryPaidOnRefund,omitempty"`
	PaidByCustomer       bool            `json:"paidByCustomer"`
	CustomerPhone        string          `json:"customerPhone,omitempty"`
}

type Expense struct {
	ID          string          `json:"id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

type Supplier struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type ContactKind string

const (
	ContactSupplier ContactKind = "Supplier"
	ContactCustomer ContactKind = "Customer"
)

// Contact is the tagged union returned by combined contact listings.
// The Kind discriminator replaces any structural guessing over which
// fields happen to be present.
type Contact struct {
	Kind     ContactKind `json:"kind"`
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Contact  string      `json:"contact,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Address  string      `json:"address,omitempty"`
	Category string      `json:"category,omitempty"`
	Notes    string      `json:"notes"`
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DashboardMetrics is the recomputed-on-read projection over the current
// collections. Refunded sales are excluded from TotalSales/TotalProfit and
// reported separately as TotalRefunds; they are not subtracted anywhere.
type DashboardMetrics struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalProfit       decimal.Decimal `json:"totalProfit"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	TotalPlatformFees decimal.Decimal `json:"totalPlatformFees"`
	NetProfit         decimal.Decimal `json:"netProfit"`
	StockValue        decimal.Decimal `json:"stockValue"`
	TotalRefunds      decimal.Decimal `json:"totalRefunds"`
}

func defaultPlatforms() []Platform {
	return []Platform{
		{ID: "1", Name: "Facebook", FeeValue: decimal.Zero, FeeType: FeeFixed},
		{ID: "2", Name: "Website", FeeValue: decimal.Zero, FeeType: FeeFixed},
		{ID: "3", Name: "Offline", FeeValue: decimal.Zero, FeeType: FeeFixed},
	}
}

func defaultSettings() AppSettings {
	return AppSettings{
		Currency:           "BDT",
		CurrencySymbol:     "৳",
		LowStockThreshold:  5,
		AllowNegativeStock: false,
		Platforms:          defaultPlatforms(),
	}
}

func defaultSkuPrefixes() []SkuPrefix {
	return []SkuPrefix{
		{ID: "1", Prefix: "GEN", Label: "General"},
		{ID: "2", Prefix: "ELEC", Label: "Electronics"},
	}
}
