package submission

import (
	"math"

	"github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
)

// FieldErrors memetakan nama field ke kode error. Semua pelanggaran
// dikumpulkan sekaligus agar UI bisa menampilkan seluruhnya.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation_failed"
}

// Toleransi pembandingan rupiah dalam float
const amountEpsilon = 0.01

// Validate memeriksa draft sebelum persistence disentuh. Mengembalikan nil
// jika draft valid. Total dihitung ulang di sini, tidak dipercaya dari
// state lama.
func Validate(d ConfirmationDraft) FieldErrors {
	errs := FieldErrors{}

	if d.ClientName == "" {
		errs["client_name"] = "required"
	}
	if d.ClientPhone == "" {
		errs["client_phone"] = "required"
	}
	if d.BookingDate.IsZero() {
		errs["booking_date"] = "required"
	}
	if d.BookingDateEnd != nil && d.BookingDateEnd.Before(d.BookingDate) {
		errs["booking_date_end"] = "before_start"
	}

	totals := ComputeTotals(d)

	switch d.DiscountType {
	case DiscountPersen:
		if d.DiscountValue < 0 || d.DiscountValue > 100 {
			errs["discount_value"] = "out_of_range"
		}
	case DiscountRupiah:
		if d.DiscountValue < 0 {
			errs["discount_value"] = "out_of_range"
		} else if d.DiscountValue > totals.OriginalSubtotal {
			errs["discount_value"] = "exceeds_subtotal"
		}
	default:
		// Tipe tak dikenal tidak boleh lolos diam-diam sebagai "tanpa diskon"
		if d.DiscountType != "" || d.DiscountValue != 0 {
			errs["discount_type"] = "invalid"
		}
	}

	if d.TaxPercentage < 0 || d.TaxPercentage > 100 {
		errs["tax_percentage"] = "out_of_range"
	}

	if d.AmountPaid < 0 {
		errs["amount_paid"] = "negative"
	}

	switch d.PaymentStatus {
	case booking.PaymentDP:
		if d.AmountPaid > totals.Total*DPCeilingRatio+amountEpsilon {
			errs["amount_paid"] = "exceeds_dp_ceiling"
		}
	case booking.PaymentLunas:
		if math.Abs(d.AmountPaid-totals.Total) > amountEpsilon {
			errs["amount_paid"] = "lunas_mismatch"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
