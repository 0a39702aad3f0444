// internal/payment/service/confirmation_service.go
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"sistem-order-service/internal/event"
	"sistem-order-service/internal/order"
	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/repository"

	"gorm.io/gorm"
)

// ConfirmationService adalah "kontrak" bisnis untuk konfirmasi pembayaran
// manual (upload bukti transfer + review oleh staff).
type ConfirmationService interface {
	Create(req payment.CreateConfirmationRequest, userID uint, proofFile string) (*payment.PaymentConfirmation, error)
	List(page, limit int) ([]payment.PaymentConfirmation, int64, error)
	GetByID(id uint) (*payment.PaymentConfirmation, error)
	Confirm(id uint) (*payment.PaymentConfirmation, error)
	Reject(id uint) (*payment.PaymentConfirmation, error)
	Delete(id uint) error
}

type confirmationService struct {
	repo      repository.PaymentRepository
	orders    OrderFinder
	publisher event.Publisher
}

func NewConfirmationService(repo repository.PaymentRepository, orders OrderFinder, publisher event.Publisher) ConfirmationService {
	return &confirmationService{repo: repo, orders: orders, publisher: publisher}
}

func (s *confirmationService) Create(req payment.CreateConfirmationRequest, userID uint, proofFile string) (*payment.PaymentConfirmation, error) {
	if _, err := s.orders.FindByID(req.OrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrOrderNotFound
		}
		return nil, err
	}

	if _, err := s.repo.FindMethodByID(req.PaymentMethodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrMethodNotFound
		}
		return nil, err
	}

	pc := &payment.PaymentConfirmation{
		OrderID:          req.OrderID,
		UserID:           userID,
		Amount:           req.Amount,
		PaymentMethodID:  req.PaymentMethodID,
		ConfirmationDate: time.Now(),
		Status:           payment.ConfirmationPending,
		BuktiTransfer:    proofFile,
	}
	return s.repo.SaveConfirmation(pc)
}

func (s *confirmationService) List(page, limit int) ([]payment.PaymentConfirmation, int64, error) {
	return s.repo.FindConfirmations(page, limit)
}

func (s *confirmationService) GetByID(id uint) (*payment.PaymentConfirmation, error) {
	pc, err := s.repo.FindConfirmationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrConfirmationNotFound
		}
		return nil, err
	}
	return pc, nil
}

// Confirm memindahkan konfirmasi pending -> confirmed; konfirmasi yang
// sudah diproses ditolak sebagai konflik, bukan di-no-op.
func (s *confirmationService) Confirm(id uint) (*payment.PaymentConfirmation, error) {
	pc, orderAdvanced, err := s.repo.ConfirmPending(id)
	if err != nil {
		return nil, err
	}

	// Event hanya untuk transisi order yang benar-benar terjadi; order
	// yang sudah lewat pending (atau cancelled) tidak berubah.
	if orderAdvanced {
		if err := s.publishStatusChanged(pc.OrderID, order.StatusPending, order.StatusProses); err != nil {
			log.Printf("PERINGATAN: gagal publish event status order %d: %v", pc.OrderID, err)
		}
	}
	return pc, nil
}

func (s *confirmationService) Reject(id uint) (*payment.PaymentConfirmation, error) {
	return s.repo.RejectPending(id)
}

func (s *confirmationService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.DeleteConfirmation(id)
}

func (s *confirmationService) publishStatusChanged(orderID uint, from, to order.OrderStatus) error {
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
		Source:    "manual_confirmation",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gagal serialize event: %w", err)
	}
	return s.publisher.Publish(event.OrderStatusChanged, body)
}
