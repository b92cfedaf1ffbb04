package models

import "time"

type Booking struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	// Kode unik untuk faktur / kalender
	Code string `gorm:"size:40;uniqueIndex;not null" json:"code"`

	SubmissionID *uint `gorm:"index" json:"submission_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Name           string     `gorm:"size:100" json:"name"`
	BookingDate    time.Time  `json:"booking_date"`
	BookingDateEnd *time.Time `json:"booking_date_end"`
	BookingDays    int        `gorm:"default:1" json:"booking_days"`
	StartTime      string     `gorm:"size:5" json:"start_time"`
	EndTime        string     `gorm:"size:5" json:"end_time"`

	Location       string `gorm:"size:255" json:"location"`
	LocationMapURL string `gorm:"size:255" json:"location_map_url"`

	Status string `gorm:"size:20;default:'Dijadwalkan'" json:"status"`

	Services []BookingService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	Fees     []BookingFee     `gorm:"constraint:OnDelete:CASCADE;" json:"fees"`
	Payments []Payment        `gorm:"constraint:OnDelete:CASCADE;" json:"payments"`

	ResponsibleParties []ResponsibleParty `gorm:"many2many:booking_responsible_parties;" json:"responsible_parties"`

	OriginalSubtotal float64 `json:"original_subtotal"`
	DiscountValue    float64 `json:"discount_value"`
	DiscountType     string  `gorm:"size:10" json:"discount_type"`
	DiscountAmount   float64 `json:"discount_amount"`
	TaxPercentage    float64 `json:"tax_percentage"`
	TaxAmount        float64 `json:"tax_amount"`
	TotalPrice       float64 `json:"total_price"`

	PaymentStatus string `gorm:"size:20;default:'Belum Bayar'" json:"payment_status"`

	Notes string `gorm:"size:500" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingService struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index" json:"booking_id"`
	ServiceID uint `json:"service_id"`

	ServiceName string  `gorm:"size:100;not null" json:"service_name"`
	Price       float64 `json:"price"`
	Quantity    int     `gorm:"default:1" json:"quantity"`

	ResponsiblePartyID *uint `json:"responsible_party_id"`

	Position int `json:"position"`
}

type BookingFee struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index" json:"booking_id"`

	Description string  `gorm:"size:255" json:"description"`
	Amount      float64 `json:"amount"`
}
