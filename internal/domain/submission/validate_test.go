package submission

import (
	"testing"
	"time"

	"github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
)

func validDraft() ConfirmationDraft {
	return ConfirmationDraft{
		ClientName:  "Budi Santoso",
		ClientPhone: "+6281234567890",
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Services: []DraftService{
			{ServiceID: 1, ServiceName: "Dekorasi", DefaultPrice: 100000, Quantity: 1},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if errs := Validate(validDraft()); errs != nil {
		t.Fatalf("draft valid ditolak: %v", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	d := validDraft()
	d.ClientName = ""
	d.ClientPhone = ""
	d.BookingDate = time.Time{}

	errs := Validate(d)
	if errs == nil {
		t.Fatal("expected errors, got nil")
	}
	for _, field := range []string{"client_name", "client_phone", "booking_date"} {
		if errs[field] != "required" {
			t.Errorf("%s = %q, want required", field, errs[field])
		}
	}
}

func TestValidateDateEndBeforeStart(t *testing.T) {
	d := validDraft()
	end := d.BookingDate.AddDate(0, 0, -1)
	d.BookingDateEnd = &end

	errs := Validate(d)
	if errs["booking_date_end"] != "before_start" {
		t.Errorf("booking_date_end = %q, want before_start", errs["booking_date_end"])
	}
}

func TestValidateDiscountBounds(t *testing.T) {
	d := validDraft()
	d.DiscountType = DiscountPersen
	d.DiscountValue = 150
	if errs := Validate(d); errs["discount_value"] != "out_of_range" {
		t.Errorf("persen 150: got %q, want out_of_range", errs["discount_value"])
	}

	d = validDraft()
	d.DiscountType = DiscountRupiah
	d.DiscountValue = 200000 // subtotal 100000
	if errs := Validate(d); errs["discount_value"] != "exceeds_subtotal" {
		t.Errorf("rupiah > subtotal: got %q, want exceeds_subtotal", errs["discount_value"])
	}

	d = validDraft()
	d.DiscountType = DiscountRupiah
	d.DiscountValue = -1
	if errs := Validate(d); errs["discount_value"] != "out_of_range" {
		t.Errorf("rupiah negatif: got %q, want out_of_range", errs["discount_value"])
	}
}

func TestValidateUnknownDiscountType(t *testing.T) {
	d := validDraft()
	d.DiscountType = "percent" // salah ketik, bukan "persen"
	d.DiscountValue = 10

	errs := Validate(d)
	if errs["discount_type"] != "invalid" {
		t.Errorf("discount_type = %q, want invalid", errs["discount_type"])
	}

	// Tipe kosong dengan nilai diskon juga tidak boleh lolos
	d = validDraft()
	d.DiscountType = ""
	d.DiscountValue = 5000
	if errs := Validate(d); errs["discount_type"] != "invalid" {
		t.Errorf("tipe kosong bernilai: got %q, want invalid", errs["discount_type"])
	}

	// Tipe kosong tanpa nilai = tanpa diskon, tetap valid
	d = validDraft()
	d.DiscountType = ""
	d.DiscountValue = 0
	if errs := Validate(d); errs != nil {
		t.Errorf("tanpa diskon harus valid, got %v", errs)
	}
}

func TestValidateTaxBounds(t *testing.T) {
	d := validDraft()
	d.TaxPercentage = 101
	if errs := Validate(d); errs["tax_percentage"] != "out_of_range" {
		t.Errorf("pajak 101: got %q, want out_of_range", errs["tax_percentage"])
	}
}

func TestValidateDPCeilingRejectedNotClamped(t *testing.T) {
	d := validDraft() // total 100000, plafon DP 90000
	d.PaymentStatus = booking.PaymentDP
	d.AmountPaid = 95000

	errs := Validate(d)
	if errs["amount_paid"] != "exceeds_dp_ceiling" {
		t.Fatalf("amount_paid = %q, want exceeds_dp_ceiling", errs["amount_paid"])
	}
	// Nilai draft tidak boleh diubah diam-diam oleh validasi
	if d.AmountPaid != 95000 {
		t.Errorf("AmountPaid berubah jadi %v, harus tetap 95000", d.AmountPaid)
	}
}

func TestValidateDPAtCeiling(t *testing.T) {
	d := validDraft()
	d.PaymentStatus = booking.PaymentDP
	d.AmountPaid = 90000 // tepat 90% dari 100000

	if errs := Validate(d); errs != nil {
		t.Errorf("DP tepat di plafon harus lolos, got %v", errs)
	}
}

func TestValidateLunasMismatch(t *testing.T) {
	d := validDraft()
	d.PaymentStatus = booking.PaymentLunas
	d.AmountPaid = 50000 // total 100000; nilai basi dari UI

	errs := Validate(d)
	if errs["amount_paid"] != "lunas_mismatch" {
		t.Errorf("amount_paid = %q, want lunas_mismatch", errs["amount_paid"])
	}
}

func TestValidateNegativeAmountPaid(t *testing.T) {
	d := validDraft()
	d.AmountPaid = -100

	errs := Validate(d)
	if errs["amount_paid"] != "negative" {
		t.Errorf("amount_paid = %q, want negative", errs["amount_paid"])
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	d := ConfirmationDraft{
		TaxPercentage: 200,
		DiscountType:  DiscountPersen,
		DiscountValue: -5,
	}

	errs := Validate(d)
	if len(errs) < 4 {
		t.Errorf("expected semua pelanggaran terkumpul, got %d: %v", len(errs), errs)
	}
}
