package models

import "time"

// Penanggung jawab operasional (kru/vendor) untuk booking atau layanan
type ResponsibleParty struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20" json:"phone"`
	Role   string `gorm:"size:50" json:"role"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
