// internal/user/repository/user_repository.go
package repository

import (
	"sistem-order-service/internal/user"

	"gorm.io/gorm"
)

// UserRepository adalah "kontrak" akses data untuk tabel 'users'.
type UserRepository interface {
	Save(u *user.User) (*user.User, error)
	FindAll(page, limit int) ([]user.User, int64, error)
	FindByID(id uint) (*user.User, error)
	FindByEmail(email string) (*user.User, error)
	Update(u *user.User) (*user.User, error)
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Save(u *user.User) (*user.User, error) {
	if err := r.db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) FindAll(page, limit int) ([]user.User, int64, error) {
	var users []user.User
	var total int64

	if err := r.db.Model(&user.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) FindByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *user.User) (*user.User, error) {
	if err := r.db.Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&user.User{}, "user_id = ?", id).Error
}
