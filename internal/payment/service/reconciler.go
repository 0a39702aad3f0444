// internal/payment/service/reconciler.go
package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"sistem-order-service/internal/event"
	"sistem-order-service/internal/order"
	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/repository"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

var ctx = context.Background()

// Prefix order_id pada payload gateway ("ORDER-42" -> order 42).
const orderRefPrefix = "ORDER-"

// TTL penanda dedupe di Redis; unique index gateway_ref di DB tetap
// menjadi garansi utamanya.
const dedupeTTL = 48 * time.Hour

// OrderFinder adalah "kontrak" minimal ke store order yang dibutuhkan
// reconciler.
type OrderFinder interface {
	FindByID(id uint) (*order.Order, error)
}

// Transition adalah hasil pemetaan (transaction_status, fraud_status)
// ke status order berikutnya.
type Transition struct {
	Next               order.OrderStatus
	Apply              bool // false: notifikasi di-ack tanpa perubahan state
	CreateConfirmation bool
}

// NextTransition memetakan notifikasi gateway ke transisi status order.
//
//	capture/settlement + challenge      -> pending
//	capture/settlement + accept/kosong  -> proses (+ konfirmasi otomatis)
//	cancel/deny/expire                  -> cancelled
//	pending                             -> pending
//	lainnya                             -> tidak ada perubahan
func NextTransition(transactionStatus, fraudStatus string) Transition {
	switch transactionStatus {
	case "capture", "settlement":
		switch fraudStatus {
		case "challenge":
			return Transition{Next: order.StatusPending, Apply: true}
		case "accept", "":
			return Transition{Next: order.StatusProses, Apply: true, CreateConfirmation: true}
		}
		return Transition{}
	case "cancel", "deny", "expire":
		return Transition{Next: order.StatusCancelled, Apply: true}
	case "pending":
		return Transition{Next: order.StatusPending, Apply: true}
	}
	return Transition{}
}

// VerifySignature membandingkan X-Signature-Key dengan
// hex(sha512(rawBody + serverKey)) secara constant-time.
func VerifySignature(rawBody []byte, signature, serverKey string) bool {
	h := sha512.New()
	h.Write(rawBody)
	h.Write([]byte(serverKey))
	expected := hex.EncodeToString(h.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// ReconcileResult merangkum apa yang terjadi pada satu notifikasi.
type ReconcileResult struct {
	OrderID             uint              `json:"order_id"`
	Status              order.OrderStatus `json:"status"`
	Applied             bool              `json:"applied"`
	Duplicate           bool              `json:"duplicate"`
	ConfirmationCreated bool              `json:"confirmation_created"`
}

// Reconciler menerjemahkan notifikasi pembayaran asinkron dari gateway
// menjadi transisi status order + materialisasi konfirmasi pembayaran.
type Reconciler interface {
	HandleNotification(rawBody []byte, signature string) (*ReconcileResult, error)
}

type reconciler struct {
	repo      repository.PaymentRepository
	orders    OrderFinder
	rdb       *redis.Client
	publisher event.Publisher
	serverKey string
}

func NewReconciler(repo repository.PaymentRepository, orders OrderFinder, rdb *redis.Client, publisher event.Publisher, serverKey string) Reconciler {
	return &reconciler{
		repo:      repo,
		orders:    orders,
		rdb:       rdb,
		publisher: publisher,
		serverKey: serverKey,
	}
}

// Satu transaction_id mengirim beberapa notifikasi sepanjang hidupnya
// (pending, lalu settlement); yang duplikat hanyalah delivery ulang
// transisi yang SAMA, jadi key-nya memuat status, bukan id saja.
func dedupeKey(transactionID, transactionStatus, fraudStatus string) string {
	return fmt.Sprintf("webhook:txn:%s:%s:%s", transactionID, transactionStatus, fraudStatus)
}

func (r *reconciler) HandleNotification(rawBody []byte, signature string) (*ReconcileResult, error) {
	// 1. Verifikasi signature sebelum menyentuh state apa pun
	if !VerifySignature(rawBody, signature, r.serverKey) {
		return nil, payment.ErrInvalidSignature
	}

	var notif payment.GatewayNotification
	if err := json.Unmarshal(rawBody, &notif); err != nil {
		return nil, fmt.Errorf("payload notifikasi tidak valid: %w", err)
	}

	// 2. "ORDER-42" -> 42, lalu pastikan order-nya ada
	orderID, err := parseOrderRef(notif.OrderID)
	if err != nil {
		return nil, payment.ErrOrderNotFound
	}

	o, err := r.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrOrderNotFound
		}
		return nil, err
	}

	// 3. Redelivery transisi yang sudah pernah diproses cukup di-ack ulang
	if notif.TransactionID != "" {
		key := dedupeKey(notif.TransactionID, notif.TransactionStatus, notif.FraudStatus)
		if n, err := r.rdb.Exists(ctx, key).Result(); err == nil && n > 0 {
			log.Printf("Webhook redelivery untuk txn %s (%s) diabaikan (sudah diproses)", notif.TransactionID, notif.TransactionStatus)
			return &ReconcileResult{OrderID: orderID, Status: o.Status, Duplicate: true}, nil
		}
		// Redis gagal bukan alasan menolak: unique index gateway_ref
		// tetap mencegah duplikasi.
	}

	// 4. Hitung transisi
	tr := NextTransition(notif.TransactionStatus, notif.FraudStatus)
	if !tr.Apply {
		return &ReconcileResult{OrderID: orderID, Status: o.Status}, nil
	}

	var conf *payment.PaymentConfirmation
	if tr.CreateConfirmation {
		conf = &payment.PaymentConfirmation{
			OrderID:          o.OrderID,
			UserID:           o.UserID,
			Amount:           o.TotalAmount,
			PaymentMethodID:  payment.DefaultPaymentMethodID,
			ConfirmationDate: time.Now(),
			Status:           payment.ConfirmationConfirmed,
			BuktiTransfer:    payment.GatewayProofSentinel,
		}
		if notif.TransactionID != "" {
			ref := notif.TransactionID
			conf.GatewayRef = &ref
		}
	}

	// 5. Terapkan dalam satu transaksi (order + konfirmasi)
	created, err := r.repo.ApplyGatewayTransition(orderID, tr.Next, conf)
	if err != nil {
		return nil, err
	}

	// 6. Tandai transisi ini sudah diproses (best effort)
	if notif.TransactionID != "" {
		key := dedupeKey(notif.TransactionID, notif.TransactionStatus, notif.FraudStatus)
		if err := r.rdb.Set(ctx, key, 1, dedupeTTL).Err(); err != nil {
			log.Printf("PERINGATAN: gagal menyimpan penanda dedupe txn %s: %v", notif.TransactionID, err)
		}
	}

	if err := r.publishStatusChanged(orderID, o.Status, tr.Next); err != nil {
		log.Printf("PERINGATAN: gagal publish event status order %d: %v", orderID, err)
	}

	return &ReconcileResult{
		OrderID:             orderID,
		Status:              tr.Next,
		Applied:             true,
		ConfirmationCreated: created,
	}, nil
}

func parseOrderRef(ref string) (uint, error) {
	raw := strings.TrimPrefix(ref, orderRefPrefix)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("order_id tidak valid: %q", ref)
	}
	return uint(id), nil
}

func (r *reconciler) publishStatusChanged(orderID uint, from, to order.OrderStatus) error {
	payload := struct {
		OrderID   uint   `json:"orderId"`
		From      string `json:"from"`
		To        string `json:"to"`
		Source    string `json:"source"`
		Timestamp string `json:"timestamp"`
	}{
		OrderID:   orderID,
		From:      string(from),
		To:        string(to),
		Source:    "gateway_webhook",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gagal serialize event: %w", err)
	}
	return r.publisher.Publish(event.OrderStatusChanged, body)
}
