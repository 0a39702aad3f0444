package repository

import (
	"sistem-order-service/internal/product"

	"github.com/stretchr/testify/mock"
)

// MockProductRepository adalah mock untuk ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(p *product.Product) (*product.Product, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(page, limit int) ([]product.Product, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]product.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(id uint) (*product.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(p *product.Product) (*product.Product, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}
