// internal/payment/handler/confirmation_handler.go
package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConfirmationHandler struct {
	Service   service.ConfirmationService
	UploadDir string
}

func NewConfirmationHandler(svc service.ConfirmationService, uploadDir string) *ConfirmationHandler {
	return &ConfirmationHandler{Service: svc, UploadDir: uploadDir}
}

// Create menangani POST /payment-confirmations (multipart: bukti transfer)
func (h *ConfirmationHandler) Create(c *gin.Context) {
	var req payment.CreateConfirmationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validasi gagal", "errors": err.Error()})
		return
	}

	userID := c.GetUint("user_id")

	// Simpan file bukti transfer dengan nama acak
	proofFile := ""
	if file, err := c.FormFile("bukti_transfer"); err == nil {
		proofFile = uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, proofFile)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal menyimpan bukti transfer: " + err.Error()})
			return
		}
	}

	created, err := h.Service.Create(req, userID, proofFile)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrOrderNotFound), errors.Is(err, payment.ErrMethodNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// List menangani GET /payment-confirmations
func (h *ConfirmationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	confirmations, total, err := h.Service.List(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal memuat data konfirmasi: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      confirmations,
		"totalData": total,
		"page":      page,
		"limit":     limit,
	})
}

// Get menangani GET /payment-confirmations/:id
func (h *ConfirmationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID tidak valid"})
		return
	}

	pc, err := h.Service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, payment.ErrConfirmationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": pc})
}

// Confirm menangani PATCH /payment-confirmations/:id/confirm (staff only)
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	h.applyReview(c, h.Service.Confirm)
}

// Reject menangani PATCH /payment-confirmations/:id/reject (staff only)
func (h *ConfirmationHandler) Reject(c *gin.Context) {
	h.applyReview(c, h.Service.Reject)
}

// applyReview memetakan hasil confirm/reject ke response HTTP:
// tidak ada -> 404, sudah diproses -> 409 (konflik, bukan no-op).
func (h *ConfirmationHandler) applyReview(c *gin.Context, action func(uint) (*payment.PaymentConfirmation, error)) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID tidak valid"})
		return
	}

	pc, err := action(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrConfirmationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, payment.ErrConfirmationNotPending):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": pc})
}

// Delete menangani DELETE /payment-confirmations/:id
func (h *ConfirmationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID tidak valid"})
		return
	}

	if err := h.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, payment.ErrConfirmationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Konfirmasi berhasil dihapus"})
}

func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}
