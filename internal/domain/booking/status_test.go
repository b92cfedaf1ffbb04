package booking

import (
	"testing"
	"time"

	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

func TestCanCancel(t *testing.T) {
	if err := CanCancel(StatusScheduled); err != nil {
		t.Errorf("booking terjadwal harus bisa dibatalkan: %v", err)
	}

	for _, s := range []Status{StatusCancelled, StatusCompleted} {
		err := CanCancel(s)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("CanCancel(%s) = %v, want invalid_state", s, err)
		}
	}
}

func TestCanComplete(t *testing.T) {
	if err := CanComplete(StatusScheduled); err != nil {
		t.Errorf("booking terjadwal harus bisa diselesaikan: %v", err)
	}

	for _, s := range []Status{StatusCancelled, StatusCompleted} {
		err := CanComplete(s)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("CanComplete(%s) = %v, want invalid_state", s, err)
		}
	}
}

func TestCancelEntity(t *testing.T) {
	now := time.Now()
	bk := &models.Booking{Status: string(StatusScheduled)}

	if err := Cancel(bk, now); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if bk.Status != string(StatusCancelled) {
		t.Errorf("Status = %s, want Dibatalkan", bk.Status)
	}
	if bk.CancelledAt == nil {
		t.Error("CancelledAt kosong")
	}

	if err := Complete(bk, now); err == nil {
		t.Error("complete setelah cancel harus ditolak")
	}
}

func TestCompleteEntity(t *testing.T) {
	now := time.Now()
	bk := &models.Booking{Status: string(StatusScheduled)}

	if err := Complete(bk, now); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if bk.Status != string(StatusCompleted) {
		t.Errorf("Status = %s, want Selesai", bk.Status)
	}
	if bk.CompletedAt == nil {
		t.Error("CompletedAt kosong")
	}
}

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		paid, total float64
		want        PaymentStatus
	}{
		{0, 100000, PaymentBelumBayar},
		{-5, 100000, PaymentBelumBayar},
		{50000, 100000, PaymentDP},
		{100000, 100000, PaymentLunas},
		{150000, 100000, PaymentLunas},
	}

	for _, tc := range cases {
		if got := PaymentStatusFor(tc.paid, tc.total); got != tc.want {
			t.Errorf("PaymentStatusFor(%v, %v) = %s, want %s", tc.paid, tc.total, got, tc.want)
		}
	}
}

func TestPaymentStatusIsValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentBelumBayar, PaymentDP, PaymentLunas} {
		if !s.IsValid() {
			t.Errorf("%s harus valid", s)
		}
	}
	if PaymentStatus("Cicilan").IsValid() {
		t.Error("status asing harus ditolak")
	}
}
