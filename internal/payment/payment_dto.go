// internal/payment/payment_dto.go
package payment

// GatewayNotification adalah payload webhook dari Midtrans.
// order_id memakai format "ORDER-<id>"; transaction_id dipakai sebagai
// kunci dedupe saat redelivery.
type GatewayNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
}

// Payload JSON untuk POST /payments/create
type CreatePaymentRequest struct {
	OrderID       uint   `json:"order_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

// Payload multipart/form untuk POST /payment-confirmations
type CreateConfirmationRequest struct {
	OrderID         uint    `form:"order_id" json:"order_id" binding:"required"`
	PaymentMethodID uint    `form:"payment_method_id" json:"payment_method_id" binding:"required"`
	Amount          float64 `form:"amount" json:"amount" binding:"required,gt=0"`
}

// Payload JSON untuk payment method create/update
type MethodRequest struct {
	Name          string `json:"name" binding:"required"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}
