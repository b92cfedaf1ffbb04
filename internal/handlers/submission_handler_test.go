package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/middleware"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Submission{},
		&models.SubmissionService{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func previewRouter(db *gorm.DB, companyID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewSubmissionHandler(db, nil, nil, audit.NewDispatcher(audit.New(nil)), nil)

	r := gin.New()
	r.POST(
		"/me/submissions/:id/preview-totals",
		func(c *gin.Context) {
			c.Set(middleware.ContextUserID, uint(1))
			c.Set(middleware.ContextCompanyID, companyID)
		},
		h.PreviewTotals,
	)
	return r
}

func TestPreviewTotalsComputesForOwnSubmission(t *testing.T) {
	db := newHandlerTestDB(t)

	company := models.Company{Name: "Dekorasi Melati", Slug: "melati", Timezone: "Asia/Jakarta"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	sub := models.Submission{
		CompanyID:   company.ID,
		PublicToken: "tok-preview",
		Status:      string(domain.StatusPending),
		ClientName:  "Budi Santoso",
		ClientPhone: "+6281234567890",
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	r := previewRouter(db, company.ID)

	body := `{
		"client_name": "Budi Santoso",
		"client_phone": "+6281234567890",
		"booking_date": "2026-03-10",
		"services": [
			{"service_id": 1, "service_name": "Dekorasi", "default_price": 50000, "quantity": 2}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/me/submissions/1/preview-totals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Totals struct {
			Total float64 `json:"total"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Totals.Total != 100000 {
		t.Errorf("total = %v, want 100000", resp.Totals.Total)
	}
}

func TestPreviewTotalsUnknownSubmission(t *testing.T) {
	db := newHandlerTestDB(t)

	company := models.Company{Name: "Dekorasi Melati", Slug: "melati", Timezone: "Asia/Jakarta"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	r := previewRouter(db, company.ID)

	req := httptest.NewRequest(http.MethodPost, "/me/submissions/999/preview-totals", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPreviewTotalsOtherCompanySubmission(t *testing.T) {
	db := newHandlerTestDB(t)

	mine := models.Company{Name: "Dekorasi Melati", Slug: "melati", Timezone: "Asia/Jakarta"}
	other := models.Company{Name: "Dekorasi Mawar", Slug: "mawar", Timezone: "Asia/Jakarta"}
	if err := db.Create(&mine).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	sub := models.Submission{
		CompanyID:   other.ID,
		PublicToken: "tok-other",
		Status:      string(domain.StatusPending),
		ClientName:  "Siti",
		ClientPhone: "+6281200000000",
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	r := previewRouter(db, mine.ID)

	req := httptest.NewRequest(http.MethodPost, "/me/submissions/1/preview-totals", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 untuk submission perusahaan lain", w.Code)
	}
}
