package submission

import (
	"time"

	"github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
)

// DPCeilingRatio membatasi uang muka maksimal 90% dari total.
const DPCeilingRatio = 0.9

type DiscountType string

const (
	DiscountRupiah DiscountType = "rupiah"
	DiscountPersen DiscountType = "persen"
)

// ======================================================
// CONFIRMATION DRAFT
// ======================================================

// ConfirmationDraft adalah tampilan submission yang bisa diedit operator
// sebelum menjadi booking. Nilai murni di memori; tidak pernah disimpan.
type ConfirmationDraft struct {
	BookingName string

	ClientName    string
	ClientPhone   string
	ClientAddress string

	BookingDate    time.Time
	BookingDateEnd *time.Time
	StartTime      string
	EndTime        string

	Location       string
	LocationMapURL string

	Services []DraftService

	ResponsiblePartyIDs []uint

	PaymentStatus booking.PaymentStatus
	AmountPaid    float64

	DiscountValue float64
	DiscountType  DiscountType
	TaxPercentage float64

	AdditionalFees []DraftFee

	Notes          string
	SyncToCalendar bool
}

type DraftService struct {
	ServiceID   uint
	ServiceName string

	DefaultPrice float64
	// CustomPrice menimpa harga default jika diisi operator
	CustomPrice *float64
	Quantity    int

	ResponsiblePartyID *uint
}

type DraftFee struct {
	Description string
	Amount      float64
}

type Totals struct {
	OriginalSubtotal float64 `json:"original_subtotal"`
	DiscountAmount   float64 `json:"discount_amount"`
	Subtotal         float64 `json:"subtotal"`
	TaxAmount        float64 `json:"tax_amount"`
	FeesTotal        float64 `json:"fees_total"`
	Total            float64 `json:"total"`
}

// ======================================================
// PRICING
// ======================================================

// BookingDays menghitung jumlah hari booking: selisih hari utuh + 1,
// minimal 1 hari.
func BookingDays(start time.Time, end *time.Time) int {
	if end == nil {
		return 1
	}

	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// LinePrice resolves the effective unit price of a service line.
func (s DraftService) LinePrice() float64 {
	price := s.DefaultPrice
	if s.CustomPrice != nil {
		price = *s.CustomPrice
	}
	if price < 0 {
		return 0
	}
	return price
}

// LineQuantity floors the quantity at 1.
func (s DraftService) LineQuantity() int {
	if s.Quantity < 1 {
		return 1
	}
	return s.Quantity
}

// ComputeTotals adalah fungsi murni: draft masuk, rincian harga keluar.
// Dipanggil ulang setiap field berubah; tidak ada state tersembunyi.
func ComputeTotals(d ConfirmationDraft) Totals {
	days := BookingDays(d.BookingDate, d.BookingDateEnd)

	var lineSum float64
	for _, svc := range d.Services {
		lineSum += svc.LinePrice() * float64(svc.LineQuantity())
	}

	original := lineSum * float64(days)

	var discount float64
	switch d.DiscountType {
	case DiscountPersen:
		pct := clamp(d.DiscountValue, 0, 100)
		discount = original * pct / 100
	case DiscountRupiah:
		discount = clamp(d.DiscountValue, 0, original)
	}

	subtotal := original - discount
	if subtotal < 0 {
		subtotal = 0
	}

	tax := subtotal * clamp(d.TaxPercentage, 0, 100) / 100

	var fees float64
	for _, fee := range d.AdditionalFees {
		if fee.Amount > 0 {
			fees += fee.Amount
		}
	}

	total := subtotal + tax + fees
	if total < 0 {
		total = 0
	}

	return Totals{
		OriginalSubtotal: original,
		DiscountAmount:   discount,
		Subtotal:         subtotal,
		TaxAmount:        tax,
		FeesTotal:        fees,
		Total:            total,
	}
}

// SyncAmountPaid adalah satu-satunya aturan turunan antara payment_status
// dan amount_paid. Lunas memaksa amount_paid = total, Belum Bayar memaksa 0,
// DP membiarkan nilai operator (divalidasi terpisah terhadap plafon 90%).
func SyncAmountPaid(d *ConfirmationDraft, t Totals) {
	switch d.PaymentStatus {
	case booking.PaymentLunas:
		d.AmountPaid = t.Total
	case booking.PaymentBelumBayar:
		d.AmountPaid = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
