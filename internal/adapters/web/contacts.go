package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biztrack/internal/core"
)

type supplierRequest struct {
	Name     string `json:"name" binding:"required"`
	Contact  string `json:"contact"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

type customerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.contacts.Contacts(c.Request.Context())
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if contacts == nil {
		contacts = []core.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) createSupplier(c *gin.Context) {
	var input supplierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	supplier, err := h.contacts.CreateSupplier(c.Request.Context(), core.Supplier{
		Name:     input.Name,
		Contact:  input.Contact,
		Category: input.Category,
		Notes:    input.Notes,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *Handler) updateSupplier(c *gin.Context) {
	var input supplierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	supplier, err := h.contacts.UpdateSupplier(c.Request.Context(), c.Param("id"), core.Supplier{
		Name:     input.Name,
		Contact:  input.Contact,
		Category: input.Category,
		Notes:    input.Notes,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if supplier == nil {
		writeError(c, http.StatusNotFound, "supplier not found", "SUPPLIER_NOT_FOUND")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *Handler) deleteSupplier(c *gin.Context) {
	if err := h.contacts.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createCustomer(c *gin.Context) {
	var input customerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	customer, err := h.contacts.CreateCustomer(c.Request.Context(), core.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(c *gin.Context) {
	var input customerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, "invalid input", "BAD_REQUEST")
		return
	}

	customer, err := h.contacts.UpdateCustomer(c.Request.Context(), c.Param("id"), core.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	})
	if err != nil {
		writeCoreError(c, err)
		return
	}
	if customer == nil {
		writeError(c, http.StatusNotFound, "customer not found", "CUSTOMER_NOT_FOUND")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	if err := h.contacts.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		writeCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
