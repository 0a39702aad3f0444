// internal/payment/service/method_service.go
package service

import (
	"errors"

	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/repository"

	"gorm.io/gorm"
)

// MethodService adalah "kontrak" bisnis untuk master metode pembayaran.
type MethodService interface {
	Create(req payment.MethodRequest) (*payment.PaymentMethod, error)
	List(page, limit int) ([]payment.PaymentMethod, int64, error)
	GetByID(id uint) (*payment.PaymentMethod, error)
	Update(id uint, req payment.MethodRequest) (*payment.PaymentMethod, error)
	Delete(id uint) error
}

type methodService struct {
	repo repository.PaymentRepository
}

func NewMethodService(repo repository.PaymentRepository) MethodService {
	return &methodService{repo: repo}
}

func (s *methodService) Create(req payment.MethodRequest) (*payment.PaymentMethod, error) {
	m := &payment.PaymentMethod{
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	}
	return s.repo.SaveMethod(m)
}

func (s *methodService) List(page, limit int) ([]payment.PaymentMethod, int64, error) {
	return s.repo.FindMethods(page, limit)
}

func (s *methodService) GetByID(id uint) (*payment.PaymentMethod, error) {
	m, err := s.repo.FindMethodByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrMethodNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *methodService) Update(id uint, req payment.MethodRequest) (*payment.PaymentMethod, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	m.Name = req.Name
	m.AccountNumber = req.AccountNumber
	m.AccountName = req.AccountName
	return s.repo.UpdateMethod(m)
}

func (s *methodService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.DeleteMethod(id)
}
