// internal/order/repository/order_repository.go
package repository

import (
	"sistem-order-service/internal/order"

	"gorm.io/gorm"
)

// OrderRepository adalah "kontrak" akses data untuk tabel 'orders' dan 'order_items'.
type OrderRepository interface {
	// Save menyimpan order beserta seluruh item-nya dalam satu transaksi.
	Save(o *order.Order) (*order.Order, error)
	FindAll(page, limit int) ([]order.Order, int64, error)
	FindByID(id uint) (*order.Order, error)
	FindByUserID(userID uint) ([]order.Order, error)
	// UpdateStatus mengganti status dalam satu statement UPDATE (atomic per baris).
	UpdateStatus(id uint, status order.OrderStatus) error
	// Delete menghapus order beserta item-nya dalam satu transaksi.
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Save(o *order.Order) (*order.Order, error) {
	// gorm membuat order + items (association) dalam satu transaksi
	if err := r.db.Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) FindAll(page, limit int) ([]order.Order, int64, error) {
	var orders []order.Order
	var total int64

	if err := r.db.Model(&order.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Preload("Items").Preload("User").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) FindByID(id uint) (*order.Order, error) {
	var o order.Order
	err := r.db.Preload("Items").Preload("User").
		First(&o, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(id uint, status order.OrderStatus) error {
	res := r.db.Model(&order.Order{}).
		Where("order_id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Hapus item lebih dulu, baru order-nya
		if err := tx.Delete(&order.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&order.Order{}, "order_id = ?", id).Error
	})
}
