package models

import "time"

type Expense struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	Description string    `gorm:"size:255;not null" json:"description"`
	Category    string    `gorm:"size:50" json:"category"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	Notes       string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
