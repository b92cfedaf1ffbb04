package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	bookingdomain "github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Service{},
		&models.Client{},
		&models.Submission{},
		&models.SubmissionService{},
		&models.Booking{},
		&models.BookingService{},
		&models.BookingFee{},
		&models.Payment{},
		&models.ResponsibleParty{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func seedPendingSubmission(t *testing.T, db *gorm.DB, token string) (*models.Company, *models.Submission) {
	t.Helper()

	company := models.Company{Name: "Dekorasi Melati", Slug: "melati-" + token, Timezone: "Asia/Jakarta"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	sub := models.Submission{
		CompanyID:   company.ID,
		PublicToken: token,
		Status:      string(domain.StatusPending),
		ClientName:  "Budi Santoso",
		ClientPhone: "+6281234567890",
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	return &company, &sub
}

func confirmationInput(company *models.Company, code string, amount float64, status bookingdomain.PaymentStatus) (*models.Client, *models.Booking, *models.Payment) {
	client := &models.Client{
		CompanyID: company.ID,
		Name:      "Budi Santoso",
		Phone:     "+6281234567890",
	}

	bk := &models.Booking{
		CompanyID:     company.ID,
		Code:          code,
		BookingDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		BookingDays:   1,
		Status:        string(bookingdomain.StatusScheduled),
		TotalPrice:    100000,
		PaymentStatus: string(status),
	}

	pay := &models.Payment{
		CompanyID:     company.ID,
		Amount:        amount,
		PaymentStatus: string(status),
		PaymentDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	return client, bk, pay
}

// Konfirmasi selalu menghasilkan tepat satu baris pembayaran per booking,
// termasuk Belum Bayar dengan amount 0.
func TestConfirmSubmissionZeroPaymentPersisted(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionGormRepository(db)

	company, sub := seedPendingSubmission(t, db, "tok-zero")
	client, bk, pay := confirmationInput(company, "BK-20260310-AAAAAAAA", 0, bookingdomain.PaymentBelumBayar)

	if err := repo.ConfirmSubmission(context.Background(), sub.ID, client, bk, pay); err != nil {
		t.Fatalf("ConfirmSubmission: %v", err)
	}

	var payments []models.Payment
	if err := db.Where("booking_id = ?", bk.ID).Find(&payments).Error; err != nil {
		t.Fatalf("load payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("jumlah pembayaran = %d, want tepat 1", len(payments))
	}
	if payments[0].Amount != 0 {
		t.Errorf("amount = %v, want 0", payments[0].Amount)
	}
	if payments[0].PaymentStatus != string(bookingdomain.PaymentBelumBayar) {
		t.Errorf("payment status = %s, want Belum Bayar", payments[0].PaymentStatus)
	}

	var stored models.Submission
	if err := db.First(&stored, sub.ID).Error; err != nil {
		t.Fatalf("load submission: %v", err)
	}
	if stored.Status != string(domain.StatusConfirmed) {
		t.Errorf("status submission = %s, want confirmed", stored.Status)
	}
	if stored.ConfirmedAt == nil {
		t.Error("ConfirmedAt kosong")
	}
}

func TestConfirmSubmissionDPPaymentPersisted(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionGormRepository(db)

	company, sub := seedPendingSubmission(t, db, "tok-dp")
	client, bk, pay := confirmationInput(company, "BK-20260310-BBBBBBBB", 50000, bookingdomain.PaymentDP)

	if err := repo.ConfirmSubmission(context.Background(), sub.ID, client, bk, pay); err != nil {
		t.Fatalf("ConfirmSubmission: %v", err)
	}

	var payments []models.Payment
	db.Where("booking_id = ?", bk.ID).Find(&payments)
	if len(payments) != 1 || payments[0].Amount != 50000 {
		t.Errorf("pembayaran tersimpan salah: %+v", payments)
	}
}

func TestConfirmSubmissionTwiceLosesWithInvalidState(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionGormRepository(db)

	company, sub := seedPendingSubmission(t, db, "tok-twice")

	client, bk, pay := confirmationInput(company, "BK-20260310-CCCCCCCC", 0, bookingdomain.PaymentBelumBayar)
	if err := repo.ConfirmSubmission(context.Background(), sub.ID, client, bk, pay); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	client2, bk2, pay2 := confirmationInput(company, "BK-20260310-DDDDDDDD", 0, bookingdomain.PaymentBelumBayar)
	err := repo.ConfirmSubmission(context.Background(), sub.ID, client2, bk2, pay2)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("second confirm: got %v, want invalid_state", err)
	}

	var bookings int64
	db.Model(&models.Booking{}).Where("company_id = ?", company.ID).Count(&bookings)
	if bookings != 1 {
		t.Errorf("jumlah booking = %d, want 1", bookings)
	}

	var payments int64
	db.Model(&models.Payment{}).Where("company_id = ?", company.ID).Count(&payments)
	if payments != 1 {
		t.Errorf("jumlah pembayaran = %d, want 1", payments)
	}
}

func TestConfirmSubmissionReusesClientByPhone(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionGormRepository(db)

	company, sub := seedPendingSubmission(t, db, "tok-cli-1")

	client, bk, pay := confirmationInput(company, "BK-20260310-EEEEEEEE", 0, bookingdomain.PaymentBelumBayar)
	if err := repo.ConfirmSubmission(context.Background(), sub.ID, client, bk, pay); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	sub2 := models.Submission{
		CompanyID:   company.ID,
		PublicToken: "tok-cli-2",
		Status:      string(domain.StatusPending),
		ClientName:  "Budi Santoso",
		ClientPhone: "+6281234567890",
		BookingDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&sub2).Error; err != nil {
		t.Fatalf("seed second submission: %v", err)
	}

	client2, bk2, pay2 := confirmationInput(company, "BK-20260401-FFFFFFFF", 0, bookingdomain.PaymentBelumBayar)
	client2.Name = "Budi S. (baru)"
	if err := repo.ConfirmSubmission(context.Background(), sub2.ID, client2, bk2, pay2); err != nil {
		t.Fatalf("second confirm: %v", err)
	}

	var clients []models.Client
	db.Where("company_id = ?", company.ID).Find(&clients)
	if len(clients) != 1 {
		t.Fatalf("jumlah klien = %d, want 1 (dicocokkan per telepon)", len(clients))
	}
	if clients[0].Name != "Budi S. (baru)" {
		t.Errorf("nama klien = %q, want diperbarui dari draft", clients[0].Name)
	}
	if clients[0].TotalBookings != 2 {
		t.Errorf("TotalBookings = %d, want 2", clients[0].TotalBookings)
	}
}
