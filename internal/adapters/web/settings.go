package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"biztrack/internal/core"
)

type settingsUpdateRequest struct {
	Currency           *string `json:"currency"`
	LowStockThreshold  *int    `json:"lowStockThreshold"`
	AllowNegativeStock *bool   `json:"allowNegativeStock"`
}

type platformRequest struct {
	Name     string          `json:"name" binding:"required"`
	FeeValue decimal.Decimal `json:"feeValue"`
	FeeType  core.FeeType    `json:"feeType" binding:"required"`
}

type skuPrefixRequest struct {
	Prefix string `json:"prefix" binding:"required"`
	Label  string `json:"label"`
}

type deliveryChargeRequest struct {
	Location string          `json:"location" binding:"required"`
	Charge   decimal.Decimal `json:"charge"`
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) updateSettings(c *gin.Context) {
	var input settingsUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), core.SettingsUpdate{
		Currency:           input.Currency,
		LowStockThreshold:  input.LowStockThreshold,
		AllowNegativeStock: input.AllowNegativeStock,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) addPlatform(c *gin.Context) {
	var input platformRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	platform, err := h.settings.AddPlatform(c.Request.Context(), input.Name, input.FeeValue, input.FeeType)
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, platform)
}

func (h *Handler) removePlatform(c *gin.Context) {
	if err := h.settings.RemovePlatform(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listSkuPrefixes(c *gin.Context) {
	prefixes, err := h.settings.ListSkuPrefixes(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if prefixes == nil {
		prefixes = []core.SkuPrefix{}
	}
	c.JSON(http.StatusOK, prefixes)
}

func (h *Handler) addSkuPrefix(c *gin.Context) {
	var input skuPrefixRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	prefix, err := h.settings.AddSkuPrefix(c.Request.Context(), input.Prefix, input.Label)
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prefix)
}

func (h *Handler) removeSkuPrefix(c *gin.Context) {
	if err := h.settings.RemoveSkuPrefix(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listDeliveryCharges(c *gin.Context) {
	charges, err := h.settings.ListLocationCharges(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if charges == nil {
		charges = []core.LocationCharge{}
	}
	c.JSON(http.StatusOK, charges)
}

func (h *Handler) addDeliveryCharge(c *gin.Context) {
	var input deliveryChargeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	charge, err := h.settings.AddLocationCharge(c.Request.Context(), input.Location, input.Charge)
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, charge)
}

func (h *Handler) removeDeliveryCharge(c *gin.Context) {
	if err := h.settings.RemoveLocationCharge(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
