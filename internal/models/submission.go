package models

import "time"

type Submission struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Token publik agar klien bisa cek status tanpa login
	PublicToken string `gorm:"size:36;uniqueIndex" json:"public_token"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`
	Address     string `gorm:"size:255" json:"address"`

	BookingName    string     `gorm:"size:100" json:"booking_name"`
	BookingDate    time.Time  `json:"booking_date"`
	BookingDateEnd *time.Time `json:"booking_date_end"`
	StartTime      string     `gorm:"size:5" json:"start_time"`
	EndTime        string     `gorm:"size:5" json:"end_time"`

	Location       string `gorm:"size:255" json:"location"`
	LocationMapURL string `gorm:"size:255" json:"location_map_url"`

	Services []SubmissionService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	Notes        string `gorm:"size:500" json:"notes"`
	RejectReason string `gorm:"size:255" json:"reject_reason"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	RejectedAt  *time.Time `json:"rejected_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubmissionService struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	SubmissionID uint `gorm:"index" json:"submission_id"`
	ServiceID    uint `json:"service_id"`

	ServiceName  string  `gorm:"size:100;not null" json:"service_name"`
	Description  string  `gorm:"size:255" json:"description"`
	DefaultPrice float64 `json:"default_price"`
	Quantity     int     `gorm:"default:1" json:"quantity"`

	Position int `json:"position"`
}
