// internal/user/service/user_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"sistem-order-service/internal/user"
	"sistem-order-service/internal/user/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user tidak ditemukan")
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrInvalidCredentials = errors.New("email atau password salah")
)

// UserService adalah "kontrak" bisnis untuk akun dan autentikasi.
type UserService interface {
	Register(req user.RegisterRequest) (*user.User, error)
	Login(req user.LoginRequest) (*user.LoginResponse, error)
	List(page, limit int) ([]user.User, int64, error)
	GetByID(id uint) (*user.User, error)
	Update(id uint, req user.UpdateUserRequest) (*user.User, error)
	Delete(id uint) error
}

type userService struct {
	repo      repository.UserRepository
	jwtSecret string
}

func NewUserService(repo repository.UserRepository, jwtSecret string) UserService {
	return &userService{repo: repo, jwtSecret: jwtSecret}
}

func (s *userService) Register(req user.RegisterRequest) (*user.User, error) {
	// Email harus unik
	if _, err := s.repo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("gagal hash password: %w", err)
	}

	newUser := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     user.RoleUser, // registrasi publik selalu role 'user'
	}
	return s.repo.Save(newUser)
}

func (s *userService) Login(req user.LoginRequest) (*user.LoginResponse, error) {
	u, err := s.repo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   float64(u.UserID),
		"email": u.Email,
		"role":  string(u.Role),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("gagal sign token: %w", err)
	}

	return &user.LoginResponse{Token: signed, User: u}, nil
}

func (s *userService) List(page, limit int) ([]user.User, int64, error) {
	return s.repo.FindAll(page, limit)
}

func (s *userService) GetByID(id uint) (*user.User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Update(id uint, req user.UpdateUserRequest) (*user.User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" && req.Email != u.Email {
		if _, err := s.repo.FindByEmail(req.Email); err == nil {
			return nil, ErrEmailTaken
		}
		u.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("gagal hash password: %w", err)
		}
		u.Password = string(hashed)
	}
	if req.Role != "" {
		u.Role = req.Role
	}

	return s.repo.Update(u)
}

func (s *userService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
