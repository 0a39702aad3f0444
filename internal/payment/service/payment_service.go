// internal/payment/service/payment_service.go
package service

import (
	"errors"
	"fmt"

	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/repository"

	"gorm.io/gorm"
)

// PaymentURL adalah hasil pembuatan transaksi Snap.
type PaymentURL struct {
	SnapToken  string `json:"snap_token"`
	PaymentURL string `json:"payment_url"`
}

// PaymentStatus merangkum status order + konfirmasinya untuk halaman
// pengecekan pembayaran.
type PaymentStatus struct {
	OrderStatus   string                       `json:"order_status"`
	PaymentStatus string                       `json:"payment_status"`
	Confirmation  *payment.PaymentConfirmation `json:"payment_confirmation,omitempty"`
}

// PaymentService adalah "kontrak" bisnis untuk integrasi gateway:
// pembuatan transaksi Snap dan pengecekan status pembayaran.
type PaymentService interface {
	CreatePayment(req payment.CreatePaymentRequest) (*PaymentURL, error)
	CheckStatus(orderID uint) (*PaymentStatus, error)
}

type paymentService struct {
	repo   repository.PaymentRepository
	orders OrderFinder
	snap   SnapClient
}

func NewPaymentService(repo repository.PaymentRepository, orders OrderFinder, snap SnapClient) PaymentService {
	return &paymentService{repo: repo, orders: orders, snap: snap}
}

func (s *paymentService) CreatePayment(req payment.CreatePaymentRequest) (*PaymentURL, error) {
	o, err := s.orders.FindByID(req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrOrderNotFound
		}
		return nil, err
	}

	snapReq := SnapRequest{
		TransactionDetails: TransactionDetails{
			OrderID:     fmt.Sprintf("%s%d", orderRefPrefix, o.OrderID),
			GrossAmount: o.TotalAmount,
		},
		CustomerDetails: CustomerDetails{
			FirstName: req.CustomerName,
			Email:     req.CustomerEmail,
		},
		ItemDetails: []ItemDetail{
			{
				ID:       fmt.Sprintf("%d", o.OrderID),
				Price:    o.TotalAmount,
				Quantity: 1,
				Name:     fmt.Sprintf("Order #%d", o.OrderID),
			},
		},
		EnabledPayments: enabledPayments,
	}

	resp, err := s.snap.CreateTransaction(snapReq)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat transaksi snap: %w", err)
	}

	return &PaymentURL{SnapToken: resp.Token, PaymentURL: resp.RedirectURL}, nil
}

func (s *paymentService) CheckStatus(orderID uint) (*PaymentStatus, error) {
	o, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrOrderNotFound
		}
		return nil, err
	}

	status := &PaymentStatus{
		OrderStatus:   string(o.Status),
		PaymentStatus: "pending",
	}

	pc, err := s.repo.FindConfirmedByOrderID(orderID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return status, nil
	}

	status.PaymentStatus = string(payment.ConfirmationConfirmed)
	status.Confirmation = pc
	return status, nil
}
