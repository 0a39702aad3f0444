// internal/order/order_dto.go
package order

// Satu baris item pada payload checkout. Harga TIDAK diterima dari client;
// server menghitung ulang dari tabel products.
type CreateOrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// Payload JSON untuk POST /orders (checkout)
type CreateOrderRequest struct {
	UserID uint                     `json:"user_id" binding:"required"`
	Items  []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Payload JSON untuk PATCH /orders/:id/status
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=pending proses selesai cancelled"`
}
