package booking

import "github.com/luthfirf17/catat-jasamu-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusScheduled Status = "Dijadwalkan"
	StatusCancelled Status = "Dibatalkan"
	StatusCompleted Status = "Selesai"
)

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentBelumBayar PaymentStatus = "Belum Bayar"
	PaymentDP         PaymentStatus = "DP"
	PaymentLunas      PaymentStatus = "Lunas"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentBelumBayar, PaymentDP, PaymentLunas:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCancel menentukan apakah sebuah booking boleh dibatalkan
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete menentukan apakah sebuah booking boleh diselesaikan
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

// PaymentStatusFor derives the payment status of a booking from how much of
// the total has been paid so far.
func PaymentStatusFor(paid, total float64) PaymentStatus {
	switch {
	case paid <= 0:
		return PaymentBelumBayar
	case paid >= total:
		return PaymentLunas
	default:
		return PaymentDP
	}
}
