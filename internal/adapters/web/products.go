package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"biztrack/internal/core"
)

type productRequest struct {
	Name         string          `json:"name" binding:"required"`
	SKU          string          `json:"sku"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Stock        int             `json:"stock"`
}

type productUpdateRequest struct {
	Name         *string          `json:"name"`
	SKU          *string          `json:"sku"`
	BuyingPrice  *decimal.Decimal `json:"buyingPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Stock        *int             `json:"stock"`
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var input productRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), core.CreateProductInput{
		Name:         input.Name,
		SKU:          input.SKU,
		BuyingPrice:  input.BuyingPrice,
		SellingPrice: input.SellingPrice,
		Stock:        input.Stock,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var input productUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), core.ProductUpdate{
		Name:         input.Name,
		SKU:          input.SKU,
		BuyingPrice:  input.BuyingPrice,
		SellingPrice: input.SellingPrice,
		Stock:        input.Stock,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if product == nil {
		writeError(c, http.StatusNotFound, "product not found", "PRODUCT_NOT_FOUND")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
