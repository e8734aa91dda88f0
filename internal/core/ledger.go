package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService owns the Sale collection and is the only component
// allowed to mutate product stock as a side effect of sale lifecycle
// transitions. Completed sales hold their quantity deducted from stock;
// refunding or deleting a completed sale returns it. The product's stock
// field is the single source of truth — there is no separate reservation
// ledger.
type LedgerService interface {
	// CreateSale records a completed sale and decrements the product's
	// stock by the sale quantity. The sale record and the stock decrement
	// land together or not at all. Returns ErrProductNotFound,
	// ErrInvalidQuantity, or ErrInsufficientStock without mutating.
	CreateSale(ctx context.Context, in CreateSaleInput) (*Sale, error)

	// UpdateSale re-snapshots a sale's financials from the new inputs and
	// reconciles stock: the original quantity returns to the original
	// product before the new quantity is deducted from the new product.
	// Editing a refunded sale touches no stock (it was already restored at
	// refund time, and the edit does not re-reserve). No stock-sufficiency
	// check applies here, unlike CreateSale; the quantity may exceed
	// available stock. Both behaviors are deliberate and preserved.
	// Unknown sale ids are a silent no-op returning (nil, nil).
	UpdateSale(ctx context.Context, saleID string, in UpdateSaleInput) (*Sale, error)

	// DeleteSale removes the record, returning its quantity to stock if
	// the sale was completed. Unknown ids are a no-op.
	DeleteSale(ctx context.Context, saleID string) error

	// RefundSale marks a completed sale refunded, stamps the refund time,
	// and returns its quantity to stock. When the delivery charge was not
	// recovered from the buyer, a Refund Loss expense for that charge is
	// recognized. A second call on the same sale is a no-op.
	RefundSale(ctx context.Context, saleID string, deliveryPaidOnRefund bool) error

	// ListSales returns a consistent copy of the sale collection.
	ListSales(ctx context.Context) ([]Sale, error)
}

type CreateSaleInput struct {
	ProductID      string
	Quantity       int
	UnitPrice      *decimal.Decimal // nil = use the product's current selling price
	Platform       string
	DeliveryCharge decimal.Decimal
	Location       string
	PaidByCustomer bool
	Date           time.Time // zero = now
	CustomerPhone  string
}

type UpdateSaleInput struct {
	ProductID      string
	Quantity       int
	UnitPrice      decimal.Decimal
	Platform       string
	Date           time.Time
	Location       string
	DeliveryCharge decimal.Decimal
	PaidByCustomer bool
	CustomerPhone  string
}

type ledger struct {
	store *Store
}

func NewLedger(store *Store) LedgerService {
	return &ledger{store: store}
}

func (l *ledger) CreateSale(ctx context.Context, in CreateSaleInput) (*Sale, error) {
	var created Sale
	err := l.store.Update(ctx, func(st *State) error {
		product, ok := st.FindProduct(in.ProductID)
		if !ok {
			return fmt.Errorf("create sale: %w: %s", ErrProductNotFound, in.ProductID)
		}
		if in.Quantity < 1 {
			return fmt.Errorf("create sale: %w: got %d", ErrInvalidQuantity, in.Quantity)
		}
		if !st.Settings.AllowNegativeStock && product.Stock < in.Quantity {
			return fmt.Errorf("create sale %s: %w: have %d, want %d",
				product.Name, ErrInsufficientStock, product.Stock, in.Quantity)
		}

		st.EnsureCustomer(in.CustomerPhone, "Auto-created from sale")

		unitPrice := product.SellingPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		qty := decimal.NewFromInt(int64(in.Quantity))
		revenue := unitPrice.Mul(qty)
		totalCost := product.BuyingPrice.Mul(qty)
		fee := st.Settings.PlatformFee(in.Platform, revenue)

		date := in.Date
		if date.IsZero() {
			date = time.Now()
		}

		created = Sale{
			ID:                   uuid.NewString(),
			ProductID:            product.ID,
			ProductName:          product.Name,
			Quantity:             in.Quantity,
			SellingPriceSnapshot: unitPrice,
			BuyingCostSnapshot:   product.BuyingPrice,
			Revenue:              revenue,
			TotalCost:            totalCost,
			Profit:               revenue.Sub(totalCost).Sub(fee),
			PlatformFee:          fee,
			DeliveryCharge:       in.DeliveryCharge,
			Location:             in.Location,
			Platform:             in.Platform,
			Date:                 date,
			Status:               SaleCompleted,
			PaidByCustomer:       in.PaidByCustomer,
			CustomerPhone:        in.CustomerPhone,
		}

		st.Sales = append([]Sale{created}, st.Sales...)
		product.Stock -= in.Quantity
		st.MarkDirty(KeySales, KeyProducts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (l *ledger) UpdateSale(ctx context.Context, saleID string, in UpdateSaleInput) (*Sale, error) {
	var updated *Sale
	err := l.store.Update(ctx, func(st *State) error {
		sale, ok := st.FindSale(saleID)
		if !ok {
			return nil
		}
		newProduct, ok := st.FindProduct(in.ProductID)
		if !ok {
			return fmt.Errorf("update sale %s: %w: %s", saleID, ErrProductNotFound, in.ProductID)
		}

		st.EnsureCustomer(in.CustomerPhone, "Auto-created from updated sale")

		// Reconcile against the pre-update product/quantity pair so an
		// unchanged product is not double-counted. Refunded sales keep
		// their stock untouched: it was returned at refund time.
		if sale.Status == SaleCompleted {
			if oldProduct, ok := st.FindProduct(sale.ProductID); ok {
				oldProduct.Stock += sale.Quantity
			}
			newProduct.Stock -= in.Quantity
			st.MarkDirty(KeyProducts)
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		revenue := in.UnitPrice.Mul(qty)
		totalCost := newProduct.BuyingPrice.Mul(qty)
		fee := st.Settings.PlatformFee(in.Platform, revenue)

		sale.ProductID = newProduct.ID
		sale.ProductName = newProduct.Name
		sale.Quantity = in.Quantity
		sale.SellingPriceSnapshot = in.UnitPrice
		sale.BuyingCostSnapshot = newProduct.BuyingPrice
		sale.Revenue = revenue
		sale.TotalCost = totalCost
		sale.Profit = revenue.Sub(totalCost).Sub(fee)
		sale.PlatformFee = fee
		sale.Platform = in.Platform
		sale.Date = in.Date
		sale.Location = in.Location
		sale.DeliveryCharge = in.DeliveryCharge
		sale.PaidByCustomer = in.PaidByCustomer
		sale.CustomerPhone = in.CustomerPhone

		st.MarkDirty(KeySales)
		cp := *sale
		updated = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (l *ledger) DeleteSale(ctx context.Context, saleID string) error {
	return l.store.Update(ctx, func(st *State) error {
		sale, ok := st.FindSale(saleID)
		if !ok {
			return nil
		}

		// Refunded sales already returned their stock at refund time.
		if sale.Status == SaleCompleted {
			if product, ok := st.FindProduct(sale.ProductID); ok {
				product.Stock += sale.Quantity
				st.MarkDirty(KeyProducts)
			}
		}

		for i := range st.Sales {
			if st.Sales[i].ID == saleID {
				st.Sales = append(st.Sales[:i], st.Sales[i+1:]...)
				break
			}
		}
		st.MarkDirty(KeySales)
		return nil
	})
}

func (l *ledger) RefundSale(ctx context.Context, saleID string, deliveryPaidOnRefund bool) error {
	return l.store.Update(ctx, func(st *State) error {
		sale, ok := st.FindSale(saleID)
		if !ok || sale.Status == SaleRefunded {
			return nil
		}

		now := time.Now()
		sale.Status = SaleRefunded
		sale.RefundDate = &now
		sale.DeliveryPaidOnRefund = &deliveryPaidOnRefund
		st.MarkDirty(KeySales)

		if product, ok := st.FindProduct(sale.ProductID); ok {
			product.Stock += sale.Quantity
			st.MarkDirty(KeyProducts)
		}

		if !deliveryPaidOnRefund && sale.DeliveryCharge.IsPositive() {
			st.Expenses = append([]Expense{{
				ID:          uuid.NewString(),
				Category:    ExpenseRefundLoss,
				Description: fmt.Sprintf("Unpaid Delivery for Refund: %s (%s)", sale.ProductName, sale.Location),
				Amount:      sale.DeliveryCharge,
				Date:        now,
			}}, st.Expenses...)
			st.MarkDirty(KeyExpenses)
		}
		return nil
	})
}

func (l *ledger) ListSales(_ context.Context) ([]Sale, error) {
	var sales []Sale
	l.store.View(func(st *State) {
		sales = append(sales, st.Sales...)
	})
	return sales, nil
}
