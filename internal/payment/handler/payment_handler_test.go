package handler_test

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sistem-order-service/internal/order"
	orderrepo "sistem-order-service/internal/order/repository"
	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/handler"
	paymentrepo "sistem-order-service/internal/payment/repository"
	"sistem-order-service/internal/payment/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testServerKey = "test-server-key"

// nopPublisher menelan event; jalur webhook tidak boleh tergantung broker.
type nopPublisher struct{}

func (nopPublisher) Publish(routingKey string, body []byte) error { return nil }

// setupWebhookRouter merakit jalur webhook lengkap: DB sungguhan (sqlite
// in-memory), repository sungguhan, reconciler sungguhan, dan miniredis.
func setupWebhookRouter(t *testing.T) (*gin.Engine, *gorm.DB, *miniredis.Miniredis) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&order.Order{}, &order.OrderItem{},
		&payment.PaymentMethod{}, &payment.PaymentConfirmation{},
	))

	mr, err := miniredis.Run()
	assert.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	payRepo := paymentrepo.NewPaymentRepository(db)
	oRepo := orderrepo.NewOrderRepository(db)
	rec := service.NewReconciler(payRepo, oRepo, rdb, nopPublisher{}, testServerKey)

	h := handler.NewPaymentHandler(nil, rec)
	router := gin.New()
	router.POST("/api/payments/webhook", h.HandleWebhook)
	return router, db, mr
}

func signPayload(body []byte) string {
	h := sha512.New()
	h.Write(body)
	h.Write([]byte(testServerKey))
	return hex.EncodeToString(h.Sum(nil))
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Key", signature)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedOrder(t *testing.T, db *gorm.DB, id uint, total float64) {
	o := &order.Order{OrderID: id, UserID: 7, Status: order.StatusPending, TotalAmount: total, OrderDate: time.Now()}
	assert.NoError(t, db.Create(o).Error)
}

func TestWebhook_SettlementAccept_AdvancesOrderAndCreatesConfirmation(t *testing.T) {
	router, db, mr := setupWebhookRouter(t)
	defer mr.Close()

	seedOrder(t, db, 42, 100000)

	body := []byte(`{"order_id":"ORDER-42","transaction_id":"txn-abc","transaction_status":"settlement","fraud_status":"accept"}`)
	w := postWebhook(router, body, signPayload(body))

	assert.Equal(t, http.StatusOK, w.Code)

	var o order.Order
	assert.NoError(t, db.First(&o, "order_id = ?", 42).Error)
	assert.Equal(t, order.StatusProses, o.Status)

	var pc payment.PaymentConfirmation
	assert.NoError(t, db.First(&pc, "order_id = ?", 42).Error)
	assert.Equal(t, payment.ConfirmationConfirmed, pc.Status)
	assert.Equal(t, 100000.0, pc.Amount)
	assert.Equal(t, payment.GatewayProofSentinel, pc.BuktiTransfer)
	assert.NotNil(t, pc.GatewayRef)
	assert.Equal(t, "txn-abc", *pc.GatewayRef)
}

func TestWebhook_UnknownOrderIs404AndWritesNothing(t *testing.T) {
	router, db, mr := setupWebhookRouter(t)
	defer mr.Close()

	body := []byte(`{"order_id":"ORDER-999","transaction_id":"txn-x","transaction_status":"settlement","fraud_status":"accept"}`)
	w := postWebhook(router, body, signPayload(body))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")

	var count int64
	assert.NoError(t, db.Model(&payment.PaymentConfirmation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWebhook_InvalidSignatureIs400AndWritesNothing(t *testing.T) {
	router, db, mr := setupWebhookRouter(t)
	defer mr.Close()

	seedOrder(t, db, 42, 100000)

	body := []byte(`{"order_id":"ORDER-42","transaction_id":"txn-abc","transaction_status":"settlement","fraud_status":"accept"}`)
	w := postWebhook(router, body, "signature-palsu")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid signature")

	var o order.Order
	assert.NoError(t, db.First(&o, "order_id = ?", 42).Error)
	assert.Equal(t, order.StatusPending, o.Status)

	var count int64
	assert.NoError(t, db.Model(&payment.PaymentConfirmation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWebhook_RedeliveryCreatesSingleConfirmation(t *testing.T) {
	router, db, mr := setupWebhookRouter(t)
	defer mr.Close()

	seedOrder(t, db, 42, 100000)

	body := []byte(`{"order_id":"ORDER-42","transaction_id":"txn-abc","transaction_status":"settlement","fraud_status":"accept"}`)
	sig := signPayload(body)

	for i := 0; i < 3; i++ {
		w := postWebhook(router, body, sig)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	assert.NoError(t, db.Model(&payment.PaymentConfirmation{}).Where("order_id = ?", 42).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWebhook_PendingThenSettlementSameTransaction(t *testing.T) {
	router, db, mr := setupWebhookRouter(t)
	defer mr.Close()

	seedOrder(t, db, 42, 100000)

	// Gateway mengirim "pending" dulu, lalu "settlement" untuk
	// transaction_id yang sama; ini dua transisi, bukan redelivery.
	pendingBody := []byte(`{"order_id":"ORDER-42","transaction_id":"txn-abc","transaction_status":"pending"}`)
	w := postWebhook(router, pendingBody, signPayload(pendingBody))
	assert.Equal(t, http.StatusOK, w.Code)

	settleBody := []byte(`{"order_id":"ORDER-42","transaction_id":"txn-abc","transaction_status":"settlement","fraud_status":"accept"}`)
	w = postWebhook(router, settleBody, signPayload(settleBody))
	assert.Equal(t, http.StatusOK, w.Code)

	var o order.Order
	assert.NoError(t, db.First(&o, "order_id = ?", 42).Error)
	assert.Equal(t, order.StatusProses, o.Status)

	var count int64
	assert.NoError(t, db.Model(&payment.PaymentConfirmation{}).Where("order_id = ?", 42).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWebhook_CancelMovesOrderToCancelled(t *testing.T) {
	router, db, mr := setupWebhookRouter(t)
	defer mr.Close()

	seedOrder(t, db, 42, 100000)

	body := []byte(`{"order_id":"ORDER-42","transaction_id":"txn-c","transaction_status":"cancel"}`)
	w := postWebhook(router, body, signPayload(body))

	assert.Equal(t, http.StatusOK, w.Code)

	var o order.Order
	assert.NoError(t, db.First(&o, "order_id = ?", 42).Error)
	assert.Equal(t, order.StatusCancelled, o.Status)

	// Cancel tidak membuat konfirmasi
	var count int64
	assert.NoError(t, db.Model(&payment.PaymentConfirmation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWebhook_UnknownTransactionStatusIsAckedUnchanged(t *testing.T) {
	router, db, mr := setupWebhookRouter(t)
	defer mr.Close()

	seedOrder(t, db, 42, 100000)

	body := []byte(`{"order_id":"ORDER-42","transaction_id":"txn-r","transaction_status":"refund"}`)
	w := postWebhook(router, body, signPayload(body))

	assert.Equal(t, http.StatusOK, w.Code)

	var o order.Order
	assert.NoError(t, db.First(&o, "order_id = ?", 42).Error)
	assert.Equal(t, order.StatusPending, o.Status)
}
