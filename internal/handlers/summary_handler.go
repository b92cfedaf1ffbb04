package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/cache"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/middleware"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type SummaryHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewSummaryHandler(db *gorm.DB, summaryCache *cache.Cache) *SummaryHandler {
	return &SummaryHandler{
		db:    db,
		cache: summaryCache,
	}
}

// ======================================================
// RESPONSE
// ======================================================

type MonthlySummary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`

	Outstanding float64 `json:"outstanding"`

	BookingsTotal     int64 `json:"bookings_total"`
	BookingsCompleted int64 `json:"bookings_completed"`
	BookingsCancelled int64 `json:"bookings_cancelled"`

	SubmissionsPending int64 `json:"submissions_pending"`
}

// ======================================================
// MONTHLY
// ======================================================

// Monthly menghitung ringkasan keuangan satu periode. Pemasukan dihitung
// dari pembayaran yang tercatat di periode itu (cash basis), bukan dari
// total booking.
func (h *SummaryHandler) Monthly(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	loc := timezone.Location(company.Timezone)
	now := time.Now().In(loc)

	year := now.Year()
	month := int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 2000 || parsed > 2100 {
			httperr.BadRequest(c, "invalid_year", "Tahun tidak valid.")
			return
		}
		year = parsed
	}
	if monthStr := c.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			httperr.BadRequest(c, "invalid_month", "Bulan tidak valid.")
			return
		}
		month = parsed
	}

	var summary MonthlySummary
	if h.cache.GetSummary(c.Request.Context(), companyID, year, month, &summary) {
		c.JSON(http.StatusOK, summary)
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	summary = MonthlySummary{Year: year, Month: month}

	if err := h.db.Model(&models.Payment{}).
		Where("company_id = ? AND payment_date >= ? AND payment_date < ?", companyID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalIncome).Error; err != nil {
		httperr.Internal(c, "failed_to_compute_summary", "Gagal menghitung ringkasan.")
		return
	}

	if err := h.db.Model(&models.Expense{}).
		Where("company_id = ? AND expense_date >= ? AND expense_date < ?", companyID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalExpenses).Error; err != nil {
		httperr.Internal(c, "failed_to_compute_summary", "Gagal menghitung ringkasan.")
		return
	}

	summary.NetProfit = summary.TotalIncome - summary.TotalExpenses

	// Piutang: booking aktif periode ini yang belum lunas.
	type outstandingRow struct {
		Total float64
		Paid  float64
	}
	var rows []outstandingRow
	if err := h.db.Model(&models.Booking{}).
		Select(
			"bookings.total_price AS total, COALESCE(SUM(payments.amount), 0) AS paid",
		).
		Joins("LEFT JOIN payments ON payments.booking_id = bookings.id").
		Where(
			"bookings.company_id = ? AND bookings.booking_date >= ? AND bookings.booking_date < ? AND bookings.status <> ?",
			companyID, start, end, string(domain.StatusCancelled),
		).
		Group("bookings.id").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_compute_summary", "Gagal menghitung ringkasan.")
		return
	}
	for _, r := range rows {
		if remaining := r.Total - r.Paid; remaining > 0 {
			summary.Outstanding += remaining
		}
	}

	base := h.db.Model(&models.Booking{}).
		Where("company_id = ? AND booking_date >= ? AND booking_date < ?", companyID, start, end)

	base.Session(&gorm.Session{}).Count(&summary.BookingsTotal)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Count(&summary.BookingsCompleted)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCancelled)).
		Count(&summary.BookingsCancelled)

	h.db.Model(&models.Submission{}).
		Where("company_id = ? AND status = ?", companyID, "pending").
		Count(&summary.SubmissionsPending)

	h.cache.SetSummary(c.Request.Context(), companyID, year, month, summary)

	c.JSON(http.StatusOK, summary)
}
