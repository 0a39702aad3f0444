package product

import "time"

// Product adalah model domain dan GORM untuk tabel 'products'.
type Product struct {
	ProductID   uint      `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
