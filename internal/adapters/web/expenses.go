package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"biztrack/internal/core"
)

type expenseRequest struct {
	Category    core.ExpenseCategory `json:"category" binding:"required"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Date        *time.Time           `json:"date"`
}

func (r expenseRequest) toInput() core.ExpenseInput {
	in := core.ExpenseInput{
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in
}

func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.expenses.ListExpenses(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *Handler) createExpense(c *gin.Context) {
	var input expenseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	expense, err := h.expenses.CreateExpense(c.Request.Context(), input.toInput())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) updateExpense(c *gin.Context) {
	var input expenseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	expense, err := h.expenses.UpdateExpense(c.Request.Context(), c.Param("id"), input.toInput())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if expense == nil {
		writeError(c, http.StatusNotFound, "expense not found", "EXPENSE_NOT_FOUND")
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *Handler) deleteExpense(c *gin.Context) {
	if err := h.expenses.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
