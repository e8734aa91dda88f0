package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// MetricsService derives the dashboard projection from the current
// collections on every read. No caching: collections are hundreds to low
// thousands of records, so a full recompute per read is cheap enough to
// run on every render.
type MetricsService interface {
	// Compute returns the dashboard rollups. Profit already nets out
	// platform fees, so NetProfit subtracts only operational expenses.
	Compute(ctx context.Context) (DashboardMetrics, error)

	// LowStock returns products at or below the configured threshold.
	LowStock(ctx context.Context) ([]Product, error)

	// BuildAnalysisSnapshot assembles the AI advisor input under one lock
	// so the product and sale views are mutually consistent.
	BuildAnalysisSnapshot(recentLimit int) AnalysisSnapshot
}

type metrics struct {
	store *Store
}

func NewMetrics(store *Store) MetricsService {
	return &metrics{store: store}
}

func (m *metrics) Compute(_ context.Context) (DashboardMetrics, error) {
	var out DashboardMetrics
	m.store.View(func(st *State) {
		out = computeMetrics(st)
	})
	return out, nil
}

func (m *metrics) LowStock(_ context.Context) ([]Product, error) {
	var out []Product
	m.store.View(func(st *State) {
		for _, p := range st.Products {
			if p.Stock <= st.Settings.LowStockThreshold {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

// computeMetrics runs inside the store lock.
func computeMetrics(st *State) DashboardMetrics {
	out := DashboardMetrics{
		TotalSales:        decimal.Zero,
		TotalProfit:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		TotalPlatformFees: decimal.Zero,
		NetProfit:         decimal.Zero,
		StockValue:        decimal.Zero,
		TotalRefunds:      decimal.Zero,
	}

	for _, sale := range st.Sales {
		switch sale.Status {
		case SaleCompleted:
			out.TotalSales = out.TotalSales.Add(sale.Revenue)
			out.TotalProfit = out.TotalProfit.Add(sale.Profit)
			out.TotalPlatformFees = out.TotalPlatformFees.Add(sale.PlatformFee)
		case SaleRefunded:
			// Informational only; refunded sales are simply excluded from
			// the totals above, never subtracted.
			out.TotalRefunds = out.TotalRefunds.Add(sale.Revenue)
		}
	}

	for _, expense := range st.Expenses {
		out.TotalExpenses = out.TotalExpenses.Add(expense.Amount)
	}

	for _, product := range st.Products {
		out.StockValue = out.StockValue.Add(
			product.BuyingPrice.Mul(decimal.NewFromInt(int64(product.Stock))))
	}

	out.NetProfit = out.TotalProfit.Sub(out.TotalExpenses)
	return out
}

// AnalysisSnapshot is the compact business picture handed to the AI
// advisor: per-product performance joined with recent activity.
type AnalysisSnapshot struct {
	Currency       string               `json:"currency"`
	Products       []ProductPerformance `json:"products"`
	RecentSales    []SaleSummary        `json:"recentSales"`
	RecentExpenses []ExpenseSummary     `json:"recentExpenses"`
}

type ProductPerformance struct {
	Name         string          `json:"name"`
	Stock        int             `json:"stock"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	UnitsSold    int             `json:"unitsSold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

type SaleSummary struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
	Platform    string          `json:"platform"`
	Date        string          `json:"date"`
}

type ExpenseSummary struct {
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// recentLimit bounds the sale and expense tails included.
func (m *metrics) BuildAnalysisSnapshot(recentLimit int) AnalysisSnapshot {
	var snap AnalysisSnapshot
	m.store.View(func(st *State) {
		snap.Currency = st.Settings.Currency

		type perf struct {
			units   int
			revenue decimal.Decimal
			profit  decimal.Decimal
		}
		byProduct := make(map[string]perf, len(st.Products))
		for _, sale := range st.Sales {
			if sale.Status != SaleCompleted {
				continue
			}
			p := byProduct[sale.ProductID]
			p.units += sale.Quantity
			p.revenue = p.revenue.Add(sale.Revenue)
			p.profit = p.profit.Add(sale.Profit)
			byProduct[sale.ProductID] = p
		}

		for _, product := range st.Products {
			p := byProduct[product.ID]
			snap.Products = append(snap.Products, ProductPerformance{
				Name:         product.Name,
				Stock:        product.Stock,
				BuyingPrice:  product.BuyingPrice,
				SellingPrice: product.SellingPrice,
				UnitsSold:    p.units,
				Revenue:      p.revenue,
				Profit:       p.profit,
			})
		}

		for i, sale := range st.Sales {
			if i >= recentLimit {
				break
			}
			snap.RecentSales = append(snap.RecentSales, SaleSummary{
				ProductName: sale.ProductName,
				Quantity:    sale.Quantity,
				Revenue:     sale.Revenue,
				Platform:    sale.Platform,
				Date:        sale.Date.Format("2006-01-02"),
			})
		}
		for i, expense := range st.Expenses {
			if i >= recentLimit {
				break
			}
			snap.RecentExpenses = append(snap.RecentExpenses, ExpenseSummary{
				Category:    expense.Category,
				Description: expense.Description,
				Amount:      expense.Amount,
				Date:        expense.Date.Format("2006-01-02"),
			})
		}
	})
	return snap
}
