package models

import "time"

type Payment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`
	BookingID uint `gorm:"index" json:"booking_id"`

	Amount        float64   `json:"amount"`
	PaymentStatus string    `gorm:"size:20" json:"payment_status"`
	PaymentDate   time.Time `json:"payment_date"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
