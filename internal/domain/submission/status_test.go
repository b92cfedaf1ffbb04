package submission

import (
	"testing"
	"time"

	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

func TestCanConfirm(t *testing.T) {
	if err := CanConfirm(StatusPending); err != nil {
		t.Errorf("pending harus bisa dikonfirmasi: %v", err)
	}

	for _, s := range []Status{StatusConfirmed, StatusRejected} {
		err := CanConfirm(s)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("CanConfirm(%s) = %v, want invalid_state", s, err)
		}
	}
}

func TestCanReject(t *testing.T) {
	if err := CanReject(StatusPending); err != nil {
		t.Errorf("pending harus bisa ditolak: %v", err)
	}

	for _, s := range []Status{StatusConfirmed, StatusRejected} {
		err := CanReject(s)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("CanReject(%s) = %v, want invalid_state", s, err)
		}
	}
}

func TestConfirmEntity(t *testing.T) {
	now := time.Now()
	sub := &models.Submission{Status: string(StatusPending)}

	if err := Confirm(sub, now); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if sub.Status != string(StatusConfirmed) {
		t.Errorf("Status = %s, want confirmed", sub.Status)
	}
	if sub.ConfirmedAt == nil || !sub.ConfirmedAt.Equal(now) {
		t.Errorf("ConfirmedAt = %v, want %v", sub.ConfirmedAt, now)
	}

	// Konfirmasi kedua harus gagal dan tidak mengubah apa pun
	if err := Confirm(sub, now.Add(time.Hour)); err == nil {
		t.Error("konfirmasi ganda harus ditolak")
	}
	if !sub.ConfirmedAt.Equal(now) {
		t.Error("ConfirmedAt berubah setelah konfirmasi ganda")
	}
}

func TestRejectEntity(t *testing.T) {
	now := time.Now()
	sub := &models.Submission{Status: string(StatusPending)}

	if err := Reject(sub, "Jadwal penuh", now); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if sub.Status != string(StatusRejected) {
		t.Errorf("Status = %s, want rejected", sub.Status)
	}
	if sub.RejectReason != "Jadwal penuh" {
		t.Errorf("RejectReason = %q", sub.RejectReason)
	}
	if sub.RejectedAt == nil {
		t.Error("RejectedAt kosong")
	}

	// Pengajuan yang sudah ditolak tidak bisa dikonfirmasi
	if err := Confirm(sub, now); err == nil {
		t.Error("confirm setelah reject harus ditolak")
	}
}
