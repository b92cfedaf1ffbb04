package models

import "time"

// Klien sederhana, tanpa login, terikat ke perusahaan
type Client struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	TotalBookings int        `gorm:"default:0" json:"total_bookings"`
	TotalSpent    float64    `gorm:"default:0" json:"total_spent"`
	LastBookingAt *time.Time `json:"last_booking_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
