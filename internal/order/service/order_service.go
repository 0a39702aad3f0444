// internal/order/service/order_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"sistem-order-service/internal/event"
	"sistem-order-service/internal/order"
	"sistem-order-service/internal/order/repository"
	"sistem-order-service/internal/product"
	"sistem-order-service/internal/user"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Konteks global untuk Redis
var ctx = context.Background()

var (
	ErrOrderNotFound   = errors.New("pesanan tidak ditemukan")
	ErrProductNotFound = errors.New("produk tidak ditemukan")
	ErrUserNotFound    = errors.New("user tidak ditemukan")
)

// ProductFinder adalah "kontrak" minimal ke katalog produk yang dibutuhkan
// checkout untuk menghitung ulang harga server-side.
type ProductFinder interface {
	FindByID(id uint) (*product.Product, error)
}

// UserFinder memastikan pemilik pesanan benar-benar terdaftar.
type UserFinder interface {
	FindByID(id uint) (*user.User, error)
}

// OrderService adalah "kontrak" bisnis untuk pesanan.
type OrderService interface {
	CreateOrder(req order.CreateOrderRequest) (*order.Order, error)
	List(page, limit int) ([]order.Order, int64, error)
	GetByID(id uint) (*order.Order, error)
	GetByUserID(userID uint) ([]order.Order, error)
	UpdateStatus(id uint, status order.OrderStatus) (*order.Order, error)
	Delete(id uint) error
}

type orderService struct {
	repo      repository.OrderRepository
	rdb       *redis.Client
	publisher event.Publisher
	products  ProductFinder
	users     UserFinder
}

func NewOrderService(repo repository.OrderRepository, rdb *redis.Client, publisher event.Publisher, products ProductFinder, users UserFinder) OrderService {
	return &orderService{
		repo:      repo,
		rdb:       rdb,
		publisher: publisher,
		products:  products,
		users:     users,
	}
}

func ordersByUserCacheKey(userID uint) string {
	return fmt.Sprintf("orders_by_user:%d", userID)
}

// CreateOrder memproses checkout: validasi user & produk, hitung ulang
// unit_price/subtotal/total_amount dari tabel products (harga dari client
// tidak pernah dipercaya), lalu simpan order + items dalam satu transaksi.
func (s *orderService) CreateOrder(req order.CreateOrderRequest) (*order.Order, error) {
	if _, err := s.users.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var items []order.OrderItem
	var totalAmount float64

	for _, it := range req.Items {
		p, err := s.products.FindByID(it.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product_id=%d", ErrProductNotFound, it.ProductID)
			}
			return nil, err
		}

		subtotal := p.Price * float64(it.Quantity)
		items = append(items, order.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
		})
		totalAmount += subtotal
	}

	newOrder := &order.Order{
		UserID:      req.UserID,
		OrderDate:   time.Now(),
		Status:      order.StatusPending,
		TotalAmount: totalAmount,
		Items:       items,
	}

	savedOrder, err := s.repo.Save(newOrder)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan pesanan: %w", err)
	}

	// Publish event "order.created"; jika gagal, order tetap tersimpan.
	if err := s.publishOrderCreated(savedOrder); err != nil {
		log.Printf("PERINGATAN: order %d tersimpan, tapi gagal publish event: %v", savedOrder.OrderID, err)
	}

	s.rdb.Del(ctx, ordersByUserCacheKey(req.UserID))

	return savedOrder, nil
}

func (s *orderService) List(page, limit int) ([]order.Order, int64, error) {
	return s.repo.FindAll(page, limit)
}

func (s *orderService) GetByID(id uint) (*order.Order, error) {
	o, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// GetByUserID membaca cache lebih dulu, fallback ke database.
func (s *orderService) GetByUserID(userID uint) ([]order.Order, error) {
	cacheKey := ordersByUserCacheKey(userID)

	if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var orders []order.Order
		if json.Unmarshal([]byte(val), &orders) == nil {
			return orders, nil
		}
	}

	orders, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(orders); err == nil {
		s.rdb.Set(ctx, cacheKey, jsonData, 10*time.Minute)
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(id uint, status order.OrderStatus) (*order.Order, error) {
	if !order.ValidStatus(status) {
		return nil, fmt.Errorf("status tidak valid: %s", status)
	}

	o, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.publishStatusChanged(id, o.Status, status); err != nil {
		log.Printf("PERINGATAN: gagal publish event status order %d: %v", id, err)
	}

	s.rdb.Del(ctx, ordersByUserCacheKey(o.UserID))

	o.Status = status
	return o, nil
}

func (s *orderService) Delete(id uint) error {
	o, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.rdb.Del(ctx, ordersByUserCacheKey(o.UserID))
	return nil
}

func (s *orderService) publishOrderCreated(o *order.Order) error {
	payload := struct {
		OrderID     uint    `json:"orderId"`
		UserID      uint    `json:"userId"`
		TotalAmount float64 `json:"totalAmount"`
		ItemCount   int     `json:"itemCount"`
		Timestamp   string  `json:"timestamp"`
	}{
		OrderID:     o.OrderID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gagal serialize event: %w", err)
	}
	return s.publisher.Publish(event.OrderCreated, body)
}

func (s *orderService) publishStatusChanged(orderID uint, from, to order.OrderStatus) error {
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
		Source:    "manual_update",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gagal serialize event: %w", err)
	}
	return s.publisher.Publish(event.OrderStatusChanged, body)
}
