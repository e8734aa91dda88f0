package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService owns product identity, pricing, and manual stock
// corrections. Stock mutations arising from sale lifecycle transitions go
// through the LedgerService, which writes the same stock field.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*Product, error)
	// UpdateProduct applies the non-nil fields. Unknown ids are a no-op
	// returning (nil, nil).
	UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*Product, error)
	// DeleteProduct removes the product. Historical sales keep their
	// name/price snapshots and a dangling product id; no cascade.
	DeleteProduct(ctx context.Context, id string) error
}

type CreateProductInput struct {
	Name         string
	SKU          string
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	Stock        int
}

type ProductUpdate struct {
	Name         *string
	SKU          *string
	BuyingPrice  *decimal.Decimal
	SellingPrice *decimal.Decimal
	Stock        *int
}

type catalog struct {
	store *Store
}

func NewCatalog(store *Store) CatalogService {
	return &catalog{store: store}
}

func (c *catalog) ListProducts(_ context.Context) ([]Product, error) {
	var products []Product
	c.store.View(func(st *State) {
		products = append(products, st.Products...)
	})
	return products, nil
}

func (c *catalog) GetProduct(_ context.Context, id string) (*Product, error) {
	var found *Product
	c.store.View(func(st *State) {
		if p, ok := st.FindProduct(id); ok {
			cp := *p
			found = &cp
		}
	})
	if found == nil {
		return nil, fmt.Errorf("get product: %w: %s", ErrProductNotFound, id)
	}
	return found, nil
}

func (c *catalog) CreateProduct(ctx context.Context, in CreateProductInput) (*Product, error) {
	product := Product{
		ID:           uuid.NewString(),
		Name:         in.Name,
		SKU:          in.SKU,
		BuyingPrice:  in.BuyingPrice,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		CreatedAt:    time.Now(),
	}
	err := c.store.Update(ctx, func(st *State) error {
		st.Products = append([]Product{product}, st.Products...)
		st.MarkDirty(KeyProducts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *catalog) UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*Product, error) {
	var updated *Product
	err := c.store.Update(ctx, func(st *State) error {
		product, ok := st.FindProduct(id)
		if !ok {
			return nil
		}
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.SKU != nil {
			product.SKU = *in.SKU
		}
		if in.BuyingPrice != nil {
			product.BuyingPrice = *in.BuyingPrice
		}
		if in.SellingPrice != nil {
			product.SellingPrice = *in.SellingPrice
		}
		if in.Stock != nil {
			product.Stock = *in.Stock
		}
		st.MarkDirty(KeyProducts)
		cp := *product
		updated = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *catalog) DeleteProduct(ctx context.Context, id string) error {
	return c.store.Update(ctx, func(st *State) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products = append(st.Products[:i], st.Products[i+1:]...)
				st.MarkDirty(KeyProducts)
				return nil
			}
		}
		return nil
	})
}
