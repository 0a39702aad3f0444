// internal/payment/handler/payment_handler.go
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Service    service.PaymentService
	Reconciler service.Reconciler
}

func NewPaymentHandler(svc service.PaymentService, rec service.Reconciler) *PaymentHandler {
	return &PaymentHandler{Service: svc, Reconciler: rec}
}

// CreatePayment menangani POST /payments/create
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req payment.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validasi gagal", "errors": err.Error()})
		return
	}

	result, err := h.Service.CreatePayment(req)
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"snap_token":  result.SnapToken,
		"payment_url": result.PaymentURL,
		"message":     "Payment URL generated successfully",
	})
}

// HandleWebhook menangani POST /payments/webhook.
// Signature diverifikasi dari raw body; state hanya berubah lewat reconciler.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	signature := c.GetHeader("X-Signature-Key")

	result, err := h.Reconciler.HandleNotification(rawBody, signature)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		case errors.Is(err, payment.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order_id": result.OrderID, "status": result.Status})
}

// CheckStatus menangani GET /payments/status/:orderId
func (h *PaymentHandler) CheckStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order ID tidak valid"})
		return
	}

	status, err := h.Service.CheckStatus(uint(orderID))
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"order_status":         status.OrderStatus,
		"payment_status":       status.PaymentStatus,
		"payment_confirmation": status.Confirmation,
	})
}
