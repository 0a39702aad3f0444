package order

import (
	"time"

	"sistem-order-service/internal/user"

	"gorm.io/gorm"
)

// Status Pesanan (Enum)
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusProses    OrderStatus = "proses"  // pembayaran diterima, pesanan diproses
	StatusSelesai   OrderStatus = "selesai" // pesanan selesai
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus memeriksa apakah sebuah nilai termasuk enum status pesanan.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProses, StatusSelesai, StatusCancelled:
		return true
	}
	return false
}

// Order adalah model domain dan GORM untuk tabel 'orders'.
// TotalAmount adalah snapshot hasil perhitungan server saat checkout,
// tidak divalidasi ulang setelahnya.
type Order struct {
	OrderID     uint        `gorm:"column:order_id;primaryKey" json:"order_id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	OrderDate   time.Time   `gorm:"not null" json:"order_date"`
	Status      OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items,omitempty"`
	User        *user.User  `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem adalah satu baris pesanan (produk + jumlah + harga).
// UnitPrice dan Subtotal dihitung server-side dari harga produk saat checkout.
type OrderItem struct {
	OrderItemID uint      `gorm:"column:order_item_id;primaryKey" json:"order_item_id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ProductID   uint      `gorm:"not null" json:"product_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal    float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Hook GORM: status default dan tanggal pesanan diisi saat create.
func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	return
}
