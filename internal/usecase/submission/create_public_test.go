package submission

import (
	"context"
	"testing"

	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
)

func publicInput() CreatePublicSubmissionInput {
	return CreatePublicSubmissionInput{
		CompanyID:   1,
		ClientName:  "Siti Aminah",
		ClientPhone: "081234567890",
		Date:        "2026-04-01",
		Services: []ServiceRequest{
			{ServiceID: 5, Quantity: 2},
		},
	}
}

func TestCreatePublicSubmission(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicSubmission(repo, testDispatcher())

	sub, err := uc.Execute(context.Background(), publicInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if sub.Status != string(domain.StatusPending) {
		t.Errorf("status awal = %s, want pending", sub.Status)
	}
	if sub.PublicToken == "" {
		t.Error("PublicToken kosong")
	}
	if len(sub.Services) != 1 {
		t.Fatalf("jumlah layanan = %d, want 1", len(sub.Services))
	}

	// Snapshot katalog, bukan referensi
	line := sub.Services[0]
	if line.ServiceName != "Dekorasi" || line.DefaultPrice != 100000 {
		t.Errorf("snapshot layanan salah: %+v", line)
	}
	if line.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", line.Quantity)
	}

	if repo.created != sub {
		t.Error("CreateSubmission tidak dipanggil dengan submission yang sama")
	}
}

func TestCreatePublicSubmissionInvalidPhone(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicSubmission(repo, testDispatcher())

	in := publicInput()
	in.ClientPhone = "bukan-nomor"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "invalid_phone") {
		t.Errorf("got %v, want invalid_phone", err)
	}
}

func TestCreatePublicSubmissionNoServices(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicSubmission(repo, testDispatcher())

	in := publicInput()
	in.Services = nil

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "no_services") {
		t.Errorf("got %v, want no_services", err)
	}
}

func TestCreatePublicSubmissionBadDates(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicSubmission(repo, testDispatcher())

	in := publicInput()
	in.Date = "01-04-2026"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_date") {
		t.Errorf("format salah: got %v, want invalid_date", err)
	}

	in = publicInput()
	in.DateEnd = "2026-03-31" // sebelum tanggal mulai
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_date_range") {
		t.Errorf("rentang terbalik: got %v, want invalid_date_range", err)
	}
}

func TestCreatePublicSubmissionUnknownService(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePublicSubmission(repo, testDispatcher())

	in := publicInput()
	in.Services = []ServiceRequest{{ServiceID: 404}}

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Errorf("got %v, want service_not_found", err)
	}
	if repo.created != nil {
		t.Error("submission tetap dibuat padahal layanan tidak ada")
	}
}
