// internal/user/user_dto.go
package user

// Payload JSON untuk POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Payload JSON untuk POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Response JSON untuk login yang berhasil
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Payload JSON untuk update akun oleh staff
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     Role   `json:"role" binding:"omitempty,oneof=admin user"`
}
