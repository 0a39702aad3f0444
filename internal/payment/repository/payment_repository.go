// internal/payment/repository/payment_repository.go
package repository

import (
	"errors"

	"sistem-order-service/internal/order"
	"sistem-order-service/internal/payment"

	"gorm.io/gorm"
)

// PaymentRepository adalah "kontrak" akses data untuk payment_confirmations
// dan payment_methods, termasuk transisi status yang harus atomic.
type PaymentRepository interface {
	// Konfirmasi pembayaran
	SaveConfirmation(pc *payment.PaymentConfirmation) (*payment.PaymentConfirmation, error)
	FindConfirmations(page, limit int) ([]payment.PaymentConfirmation, int64, error)
	FindConfirmationByID(id uint) (*payment.PaymentConfirmation, error)
	FindConfirmedByOrderID(orderID uint) (*payment.PaymentConfirmation, error)
	DeleteConfirmation(id uint) error

	// ConfirmPending dan RejectPending memindahkan konfirmasi keluar dari
	// 'pending' dengan satu conditional UPDATE; 0 baris berarti konflik.
	// ConfirmPending juga menaikkan order pending -> proses di transaksi
	// yang sama (order dan konfirmasi diperlakukan sebagai satu aggregate);
	// bool-nya melaporkan apakah baris order benar-benar berpindah status.
	ConfirmPending(id uint) (*payment.PaymentConfirmation, bool, error)
	RejectPending(id uint) (*payment.PaymentConfirmation, error)

	// ApplyGatewayTransition menerapkan hasil reconciler dalam satu
	// transaksi: update status order, plus (opsional) materialisasi
	// konfirmasi yang di-key pada gateway_ref agar redelivery idempotent.
	// Mengembalikan true jika baris konfirmasi baru dibuat.
	ApplyGatewayTransition(orderID uint, next order.OrderStatus, conf *payment.PaymentConfirmation) (bool, error)

	// Metode pembayaran
	SaveMethod(m *payment.PaymentMethod) (*payment.PaymentMethod, error)
	FindMethods(page, limit int) ([]payment.PaymentMethod, int64, error)
	FindMethodByID(id uint) (*payment.PaymentMethod, error)
	UpdateMethod(m *payment.PaymentMethod) (*payment.PaymentMethod, error)
	DeleteMethod(id uint) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) SaveConfirmation(pc *payment.PaymentConfirmation) (*payment.PaymentConfirmation, error) {
	if err := r.db.Create(pc).Error; err != nil {
		return nil, err
	}
	return pc, nil
}

func (r *paymentRepository) FindConfirmations(page, limit int) ([]payment.PaymentConfirmation, int64, error) {
	var confirmations []payment.PaymentConfirmation
	var total int64

	if err := r.db.Model(&payment.PaymentConfirmation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&confirmations).Error
	if err != nil {
		return nil, 0, err
	}
	return confirmations, total, nil
}

func (r *paymentRepository) FindConfirmationByID(id uint) (*payment.PaymentConfirmation, error) {
	var pc payment.PaymentConfirmation
	if err := r.db.First(&pc, "confirmation_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *paymentRepository) FindConfirmedByOrderID(orderID uint) (*payment.PaymentConfirmation, error) {
	var pc payment.PaymentConfirmation
	err := r.db.Where("order_id = ? AND status = ?", orderID, payment.ConfirmationConfirmed).
		First(&pc).Error
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *paymentRepository) DeleteConfirmation(id uint) error {
	return r.db.Delete(&payment.PaymentConfirmation{}, "confirmation_id = ?", id).Error
}

func (r *paymentRepository) ConfirmPending(id uint) (*payment.PaymentConfirmation, bool, error) {
	var result *payment.PaymentConfirmation
	var orderAdvanced bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&payment.PaymentConfirmation{}).
			Where("confirmation_id = ? AND status = ?", id, payment.ConfirmationPending).
			Update("status", payment.ConfirmationConfirmed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.classifyConflict(tx, id)
		}

		var pc payment.PaymentConfirmation
		if err := tx.First(&pc, "confirmation_id = ?", id).Error; err != nil {
			return err
		}

		// Order pending ikut naik ke proses; order yang sudah lebih jauh
		// (atau cancelled) dibiarkan.
		ores := tx.Model(&order.Order{}).
			Where("order_id = ? AND status = ?", pc.OrderID, order.StatusPending).
			Update("status", order.StatusProses)
		if ores.Error != nil {
			return ores.Error
		}
		orderAdvanced = ores.RowsAffected > 0

		result = &pc
		return nil
	})
	return result, orderAdvanced, err
}

func (r *paymentRepository) RejectPending(id uint) (*payment.PaymentConfirmation, error) {
	var result *payment.PaymentConfirmation

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&payment.PaymentConfirmation{}).
			Where("confirmation_id = ? AND status = ?", id, payment.ConfirmationPending).
			Update("status", payment.ConfirmationRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.classifyConflict(tx, id)
		}

		var pc payment.PaymentConfirmation
		if err := tx.First(&pc, "confirmation_id = ?", id).Error; err != nil {
			return err
		}
		result = &pc
		return nil
	})
	return result, err
}

// classifyConflict membedakan "tidak ada" dari "sudah diproses" setelah
// conditional UPDATE tidak mengenai baris apa pun.
func (r *paymentRepository) classifyConflict(tx *gorm.DB, id uint) error {
	var pc payment.PaymentConfirmation
	if err := tx.First(&pc, "confirmation_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payment.ErrConfirmationNotFound
		}
		return err
	}
	return payment.ErrConfirmationNotPending
}

func (r *paymentRepository) ApplyGatewayTransition(orderID uint, next order.OrderStatus, conf *payment.PaymentConfirmation) (bool, error) {
	var created bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&order.Order{}).
			Where("order_id = ?", orderID).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return payment.ErrOrderNotFound
		}

		if conf == nil {
			return nil
		}

		if conf.GatewayRef != nil {
			// Idempotent: redelivery dengan transaction_id yang sama
			// menemukan baris lama, tidak membuat duplikat.
			res := tx.Where("gateway_ref = ?", *conf.GatewayRef).FirstOrCreate(conf)
			if res.Error != nil {
				return res.Error
			}
			created = res.RowsAffected > 0
			return nil
		}

		created = true
		return tx.Create(conf).Error
	})
	return created, err
}

func (r *paymentRepository) SaveMethod(m *payment.PaymentMethod) (*payment.PaymentMethod, error) {
	if err := r.db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *paymentRepository) FindMethods(page, limit int) ([]payment.PaymentMethod, int64, error) {
	var methods []payment.PaymentMethod
	var total int64

	if err := r.db.Model(&payment.PaymentMethod{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.Offset(offset).Limit(limit).Find(&methods).Error; err != nil {
		return nil, 0, err
	}
	return methods, total, nil
}

func (r *paymentRepository) FindMethodByID(id uint) (*payment.PaymentMethod, error) {
	var m payment.PaymentMethod
	if err := r.db.First(&m, "payment_method_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *paymentRepository) UpdateMethod(m *payment.PaymentMethod) (*payment.PaymentMethod, error) {
	if err := r.db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *paymentRepository) DeleteMethod(id uint) error {
	return r.db.Delete(&payment.PaymentMethod{}, "payment_method_id = ?", id).Error
}
