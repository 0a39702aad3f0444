package service

import (
	"testing"

	"sistem-order-service/internal/user"
	"sistem-order-service/internal/user/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "rahasia-test"

func setupUserTest() (UserService, *repository.MockUserRepository) {
	mockRepo := new(repository.MockUserRepository)
	svc := NewUserService(mockRepo, testJWTSecret)
	return svc, mockRepo
}

func hashPassword(t *testing.T, plain string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestRegister_Success(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByEmail", "budi@example.com").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Save", mock.MatchedBy(func(u *user.User) bool {
		// Password harus ter-hash dan role registrasi publik selalu 'user'
		return u.Email == "budi@example.com" &&
			u.Role == user.RoleUser &&
			u.Password != "rahasia123" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("rahasia123")) == nil
	})).Return(&user.User{UserID: 1, Email: "budi@example.com", Role: user.RoleUser}, nil).Once()

	created, err := svc.Register(user.RegisterRequest{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "rahasia123",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), created.UserID)
	mockRepo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByEmail", "budi@example.com").
		Return(&user.User{UserID: 1, Email: "budi@example.com"}, nil).Once()

	_, err := svc.Register(user.RegisterRequest{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "rahasia123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByEmail", "budi@example.com").Return(&user.User{
		UserID:   1,
		Email:    "budi@example.com",
		Password: hashPassword(t, "rahasia123"),
		Role:     user.RoleAdmin,
	}, nil).Once()

	resp, err := svc.Login(user.LoginRequest{Email: "budi@example.com", Password: "rahasia123"})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Token harus bisa diverifikasi dengan secret yang sama dan membawa
	// claim identitas
	parsed, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["sub"])
	assert.Equal(t, "budi@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByEmail", "budi@example.com").Return(&user.User{
		UserID:   1,
		Email:    "budi@example.com",
		Password: hashPassword(t, "rahasia123"),
	}, nil).Once()

	_, err := svc.Login(user.LoginRequest{Email: "budi@example.com", Password: "salah"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Login(user.LoginRequest{Email: "ghost@example.com", Password: "rahasia123"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByID", uint(99)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.GetByID(99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdate_EmailTakenByAnotherUser(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByID", uint(1)).Return(&user.User{
		UserID: 1, Email: "budi@example.com", Role: user.RoleUser,
	}, nil).Once()
	mockRepo.On("FindByEmail", "ani@example.com").
		Return(&user.User{UserID: 2, Email: "ani@example.com"}, nil).Once()

	_, err := svc.Update(1, user.UpdateUserRequest{Email: "ani@example.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	svc, mockRepo := setupUserTest()

	mockRepo.On("FindByID", uint(99)).Return(nil, gorm.ErrRecordNotFound).Once()

	err := svc.Delete(99)

	assert.ErrorIs(t, err, ErrUserNotFound)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}
