// internal/product/repository/product_repository.go
package repository

import (
	"sistem-order-service/internal/product"

	"gorm.io/gorm"
)

// ProductRepository adalah "kontrak" akses data untuk tabel 'products'.
type ProductRepository interface {
	Save(p *product.Product) (*product.Product, error)
	FindAll(page, limit int) ([]product.Product, int64, error)
	FindByID(id uint) (*product.Product, error)
	Update(p *product.Product) (*product.Product, error)
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(p *product.Product) (*product.Product, error) {
	if err := r.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) FindAll(page, limit int) ([]product.Product, int64, error) {
	var products []product.Product
	var total int64

	if err := r.db.Model(&product.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) FindByID(id uint) (*product.Product, error) {
	var p product.Product
	if err := r.db.First(&p, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Update(p *product.Product) (*product.Product, error) {
	if err := r.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&product.Product{}, "product_id = ?", id).Error
}
