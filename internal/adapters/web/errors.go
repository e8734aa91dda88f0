package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"biztrack/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a structured JSON error response.
func writeError(c *gin.Context, status int, message, code string) {
	c.JSON(status, errorResponse{Error: message, Code: code})
}

// writeCoreError maps ledger sentinel errors to HTTP statuses. Anything
// unrecognized becomes a 500.
func writeCoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrInsufficientStock):
		writeError(c, http.StatusConflict, err.Error(), "INSUFFICIENT_STOCK")
	case errors.Is(err, core.ErrProductNotFound):
		writeError(c, http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, core.ErrSaleNotFound):
		writeError(c, http.StatusNotFound, err.Error(), "SALE_NOT_FOUND")
	case errors.Is(err, core.ErrInvalidQuantity):
		writeError(c, http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case errors.Is(err, core.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
	default:
		writeError(c, http.StatusInternalServerError, err.Error(), "INTERNAL")
	}
}
