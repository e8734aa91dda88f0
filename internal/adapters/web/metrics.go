package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biztrack/internal/core"
)

func (h *Handler) getMetrics(c *gin.Context) {
	metrics, err := h.metrics.Compute(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) getLowStock(c *gin.Context) {
	products, err := h.metrics.LowStock(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	c.JSON(http.StatusOK, products)
}
