package user

import "time"

// Role akun (Enum)
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User adalah model domain dan GORM untuk tabel 'users'.
// Password tidak pernah ikut di-serialize ke response JSON.
type User struct {
	UserID    uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
