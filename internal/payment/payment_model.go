package payment

import (
	"errors"
	"time"
)

// Status Konfirmasi Pembayaran (Enum)
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationRejected  ConfirmationStatus = "rejected"
)

// Sentinel untuk bukti_transfer pada konfirmasi yang dibuat otomatis
// oleh webhook gateway (bukan upload manual).
const GatewayProofSentinel = "midtrans_payment"

// DefaultPaymentMethodID dipakai untuk konfirmasi yang dibuat oleh gateway.
const DefaultPaymentMethodID = 1

var (
	ErrOrderNotFound          = errors.New("pesanan tidak ditemukan")
	ErrConfirmationNotFound   = errors.New("konfirmasi pembayaran tidak ditemukan")
	ErrConfirmationNotPending = errors.New("konfirmasi pembayaran sudah diproses")
	ErrMethodNotFound         = errors.New("metode pembayaran tidak ditemukan")
	ErrInvalidSignature       = errors.New("signature tidak valid")
)

// PaymentMethod adalah model GORM untuk tabel 'payment_methods'.
type PaymentMethod struct {
	PaymentMethodID uint      `gorm:"column:payment_method_id;primaryKey" json:"payment_method_id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	AccountNumber   string    `gorm:"type:varchar(50)" json:"account_number"`
	AccountName     string    `gorm:"type:varchar(100)" json:"account_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PaymentConfirmation adalah model GORM untuk tabel 'payment_confirmations'.
//
// GatewayRef berisi transaction_id dari gateway dan ber-unique index:
// redelivery webhook dengan transaction_id yang sama tidak akan pernah
// menghasilkan baris kedua. Nil untuk konfirmasi manual.
type PaymentConfirmation struct {
	ConfirmationID   uint               `gorm:"column:confirmation_id;primaryKey" json:"confirmation_id"`
	OrderID          uint               `gorm:"not null;index" json:"order_id"`
	UserID           uint               `gorm:"not null" json:"user_id"`
	Amount           float64            `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethodID  uint               `gorm:"not null" json:"payment_method_id"`
	ConfirmationDate time.Time          `gorm:"not null" json:"confirmation_date"`
	Status           ConfirmationStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	BuktiTransfer    string             `gorm:"column:bukti_transfer;type:varchar(255)" json:"bukti_transfer"`
	GatewayRef       *string            `gorm:"type:varchar(100);uniqueIndex" json:"gateway_ref,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
