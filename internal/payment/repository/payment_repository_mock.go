package repository

import (
	"sistem-order-service/internal/order"
	"sistem-order-service/internal/payment"

	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository adalah mock untuk PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SaveConfirmation(pc *payment.PaymentConfirmation) (*payment.PaymentConfirmation, error) {
	args := m.Called(pc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentConfirmation), args.Error(1)
}

func (m *MockPaymentRepository) FindConfirmations(page, limit int) ([]payment.PaymentConfirmation, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]payment.PaymentConfirmation), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) FindConfirmationByID(id uint) (*payment.PaymentConfirmation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentConfirmation), args.Error(1)
}

func (m *MockPaymentRepository) FindConfirmedByOrderID(orderID uint) (*payment.PaymentConfirmation, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentConfirmation), args.Error(1)
}

func (m *MockPaymentRepository) DeleteConfirmation(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPaymentRepository) ConfirmPending(id uint) (*payment.PaymentConfirmation, bool, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*payment.PaymentConfirmation), args.Bool(1), args.Error(2)
}

func (m *MockPaymentRepository) RejectPending(id uint) (*payment.PaymentConfirmation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentConfirmation), args.Error(1)
}

func (m *MockPaymentRepository) ApplyGatewayTransition(orderID uint, next order.OrderStatus, conf *payment.PaymentConfirmation) (bool, error) {
	args := m.Called(orderID, next, conf)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) SaveMethod(pm *payment.PaymentMethod) (*payment.PaymentMethod, error) {
	args := m.Called(pm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentMethod), args.Error(1)
}

func (m *MockPaymentRepository) FindMethods(page, limit int) ([]payment.PaymentMethod, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]payment.PaymentMethod), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) FindMethodByID(id uint) (*payment.PaymentMethod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentMethod), args.Error(1)
}

func (m *MockPaymentRepository) UpdateMethod(pm *payment.PaymentMethod) (*payment.PaymentMethod, error) {
	args := m.Called(pm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentMethod), args.Error(1)
}

func (m *MockPaymentRepository) DeleteMethod(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}
