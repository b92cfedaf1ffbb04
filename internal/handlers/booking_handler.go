package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
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

type BookingHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewBookingHandler(db *gorm.DB, dispatcher *audit.Dispatcher, summaryCache *cache.Cache) *BookingHandler {
	return &BookingHandler{
		db:    db,
		audit: dispatcher,
		cache: summaryCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Date   string  `json:"date"` // YYYY-MM-DD, default hari ini
	Notes  string  `json:"notes"`
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Tanggal wajib diisi.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	date, err := parseDateInCompany(&company, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Tanggal tidak valid.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	var bookings []models.Booking
	h.db.
		Preload("Client").
		Preload("Services").
		Where(
			"company_id = ? AND booking_date >= ? AND booking_date < ?",
			companyID, start, end,
		).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings)

	c.JSON(http.StatusOK, bookings)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Tahun dan bulan wajib diisi.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Tahun tidak valid.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Bulan tidak valid.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	loc := timezone.Location(company.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	var bookings []models.Booking
	h.db.
		Preload("Client").
		Preload("Services").
		Where(
			"company_id = ? AND booking_date >= ? AND booking_date < ?",
			companyID, start, end,
		).
		Order("booking_date ASC").
		Find(&bookings)

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// GET
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var bk models.Booking
	if err := h.db.
		Preload("Client").
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Fees").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC")
		}).
		Preload("ResponsibleParties").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&bk).Error; err != nil {

		httperr.NotFound(c, "booking_not_found", "Booking tidak ditemukan.")
		return
	}

	c.JSON(http.StatusOK, bk)
}

// ======================================================
// RECORD PAYMENT
// ======================================================

// RecordPayment menambah pembayaran ke booking. Akumulasi pembayaran tidak
// boleh melewati total; mencapai total membuat status pembayaran Lunas.
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	paymentDate := nowInCompany(&company)
	if req.Date != "" {
		parsed, err := parseDateInCompany(&company, req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Tanggal tidak valid.")
			return
		}
		paymentDate = parsed
	}

	var recorded models.Payment

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var bk models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND company_id = ?", id, companyID).
			First(&bk).Error; err != nil {
			return httperr.ErrBusiness("booking_not_found")
		}

		if bk.Status == string(domain.StatusCancelled) {
			return httperr.ErrBusiness("invalid_state")
		}

		var paid float64
		if err := tx.Model(&models.Payment{}).
			Where("booking_id = ?", bk.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error; err != nil {
			return err
		}

		if paid+req.Amount > bk.TotalPrice+0.01 {
			return httperr.ErrBusiness("exceeds_total")
		}

		newStatus := domain.PaymentStatusFor(paid+req.Amount, bk.TotalPrice)

		pay := models.Payment{
			CompanyID:     companyID,
			BookingID:     bk.ID,
			Amount:        req.Amount,
			PaymentStatus: string(newStatus),
			PaymentDate:   paymentDate,
			Notes:         req.Notes,
		}

		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		bk.PaymentStatus = string(newStatus)
		if err := tx.Save(&bk).Error; err != nil {
			return err
		}

		recorded = pay
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking tidak ditemukan.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.Conflict(c, "invalid_state", "Booking sudah dibatalkan.")
			return
		}
		if httperr.IsBusiness(err, "exceeds_total") {
			httperr.BadRequest(c, "exceeds_total", "Pembayaran melebihi total tagihan.")
			return
		}
		httperr.Internal(c, "failed_to_record_payment", "Gagal mencatat pembayaran.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "payment_recorded",
		Entity:    "booking",
		EntityID:  &recorded.BookingID,
		Metadata:  map[string]any{"amount": recorded.Amount},
	})

	h.cache.InvalidateSummary(c.Request.Context(), companyID)

	c.JSON(http.StatusCreated, recorded)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, "cancel")
}

// ======================================================
// COMPLETE
// ======================================================

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, "complete")
}

func (h *BookingHandler) transition(c *gin.Context, action string) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	var bk models.Booking
	if err := h.db.Where("id = ? AND company_id = ?", id, companyID).First(&bk).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking tidak ditemukan.")
		return
	}

	now := nowInCompany(&company)

	var err error
	var auditAction string
	switch action {
	case "cancel":
		err = domain.Cancel(&bk, now)
		auditAction = "booking_cancelled"
	case "complete":
		err = domain.Complete(&bk, now)
		auditAction = "booking_completed"
	}

	if err != nil {
		httperr.Conflict(c, "invalid_state", "Status booking tidak memungkinkan operasi ini.")
		return
	}

	if err := h.db.Save(&bk).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Gagal memperbarui booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    auditAction,
		Entity:    "booking",
		EntityID:  &bk.ID,
	})

	h.cache.InvalidateSummary(c.Request.Context(), companyID)

	c.JSON(http.StatusOK, bk)
}
