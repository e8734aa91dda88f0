package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"biztrack/internal/core"
)

type createSaleRequest struct {
	ProductID      string           `json:"productId" binding:"required"`
	Quantity       int              `json:"quantity" binding:"required"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	Platform       string           `json:"platform"`
	DeliveryCharge decimal.Decimal  `json:"deliveryCharge"`
	Location       string           `json:"location"`
	PaidByCustomer bool             `json:"paidByCustomer"`
	Date           *time.Time       `json:"date"`
	CustomerPhone  string           `json:"customerPhone"`
}

type updateSaleRequest struct {
	ProductID      string          `json:"productId" binding:"required"`
	Quantity       int             `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Platform       string          `json:"platform"`
	Date           time.Time       `json:"date"`
	Location       string          `json:"location"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	PaidByCustomer bool            `json:"paidByCustomer"`
	CustomerPhone  string          `json:"customerPhone"`
}

type refundSaleRequest struct {
	DeliveryPaidOnRefund bool `json:"deliveryPaidOnRefund"`
}

func (h *Handler) listSales(c *gin.Context) {
	sales, err := h.ledger.ListSales(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if sales == nil {
		sales = []core.Sale{}
	}
	c.JSON(http.StatusOK, sales)
}

func (h *Handler) createSale(c *gin.Context) {
	var input createSaleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	in := core.CreateSaleInput{
		ProductID:      input.ProductID,
		Quantity:       input.Quantity,
		UnitPrice:      input.UnitPrice,
		Platform:       input.Platform,
		DeliveryCharge: input.DeliveryCharge,
		Location:       input.Location,
		PaidByCustomer: input.PaidByCustomer,
		CustomerPhone:  input.CustomerPhone,
	}
	if input.Date != nil {
		in.Date = *input.Date
	}

	sale, err := h.ledger.CreateSale(c.Request.Context(), in)
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) updateSale(c *gin.Context) {
	var input updateSaleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	sale, err := h.ledger.UpdateSale(c.Request.Context(), c.Param("id"), core.UpdateSaleInput{
		ProductID:      input.ProductID,
		Quantity:       input.Quantity,
		UnitPrice:      input.UnitPrice,
		Platform:       input.Platform,
		Date:           input.Date,
		Location:       input.Location,
		DeliveryCharge: input.DeliveryCharge,
		PaidByCustomer: input.PaidByCustomer,
		CustomerPhone:  input.CustomerPhone,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if sale == nil {
		writeError(c, http.StatusNotFound, "sale not found", "SALE_NOT_FOUND")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *Handler) deleteSale(c *gin.Context) {
	if err := h.ledger.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) refundSale(c *gin.Context) {
	var input refundSaleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	if err := h.ledger.RefundSale(c.Request.Context(), c.Param("id"), input.DeliveryPaidOnRefund); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
