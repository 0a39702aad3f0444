// internal/payment/handler/method_handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/service"

	"github.com/gin-gonic/gin"
)

type MethodHandler struct {
	Service service.MethodService
}

func NewMethodHandler(svc service.MethodService) *MethodHandler {
	return &MethodHandler{Service: svc}
}

// Create menangani POST /payment-methods
func (h *MethodHandler) Create(c *gin.Context) {
	var req payment.MethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validasi gagal", "errors": err.Error()})
		return
	}

	created, err := h.Service.Create(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// List menangani GET /payment-methods
func (h *MethodHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	methods, total, err := h.Service.List(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal memuat metode pembayaran: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      methods,
		"totalData": total,
		"page":      page,
		"limit":     limit,
	})
}

// Get menangani GET /payment-methods/:id
func (h *MethodHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID tidak valid"})
		return
	}

	m, err := h.Service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, payment.ErrMethodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": m})
}

// Update menangani PUT /payment-methods/:id
func (h *MethodHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID tidak valid"})
		return
	}

	var req payment.MethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validasi gagal", "errors": err.Error()})
		return
	}

	updated, err := h.Service.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, payment.ErrMethodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// Delete menangani DELETE /payment-methods/:id
func (h *MethodHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID tidak valid"})
		return
	}

	if err := h.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, payment.ErrMethodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Metode pembayaran berhasil dihapus"})
}
