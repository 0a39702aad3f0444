// internal/product/service/product_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"sistem-order-service/internal/product"
	"sistem-order-service/internal/product/repository"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

var ctx = context.Background()

var ErrProductNotFound = errors.New("produk tidak ditemukan")

// ProductService adalah "kontrak" bisnis untuk katalog produk.
type ProductService interface {
	Create(req product.CreateProductRequest) (*product.Product, error)
	List(page, limit int) ([]product.Product, int64, error)
	GetByID(id uint) (*product.Product, error)
	Update(id uint, req product.UpdateProductRequest) (*product.Product, error)
	Delete(id uint) error
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productService) Create(req product.CreateProductRequest) (*product.Product, error) {
	p := &product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	return s.repo.Save(p)
}

func (s *productService) List(page, limit int) ([]product.Product, int64, error) {
	return s.repo.FindAll(page, limit)
}

// GetByID membaca cache lebih dulu, fallback ke database (read-through).
func (s *productService) GetByID(id uint) (*product.Product, error) {
	cacheKey := productCacheKey(id)

	if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var p product.Product
		if json.Unmarshal([]byte(val), &p) == nil {
			return &p, nil
		}
	}

	p, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if jsonData, err := json.Marshal(p); err == nil {
		s.rdb.Set(ctx, cacheKey, jsonData, 10*time.Minute)
	}
	return p, nil
}

func (s *productService) Update(id uint, req product.UpdateProductRequest) (*product.Product, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}

	updated, err := s.repo.Update(p)
	if err != nil {
		return nil, err
	}

	s.invalidate(id)
	return updated, nil
}

func (s *productService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *productService) invalidate(id uint) {
	if err := s.rdb.Del(ctx, productCacheKey(id)).Err(); err != nil {
		log.Printf("PERINGATAN: gagal invalidasi cache produk %d: %v", id, err)
	}
}
