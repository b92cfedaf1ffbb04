package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	"github.com/luthfirf17/catat-jasamu-api/internal/cache"
	bookingdomain "github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/middleware"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	ucsubmission "github.com/luthfirf17/catat-jasamu-api/internal/usecase/submission"
)

// ======================================================
// HANDLER
// ======================================================

type SubmissionHandler struct {
	db      *gorm.DB
	confirm *ucsubmission.ConfirmSubmission
	reject  *ucsubmission.RejectSubmission
	audit   *audit.Dispatcher
	cache   *cache.Cache
}

func NewSubmissionHandler(
	db *gorm.DB,
	confirm *ucsubmission.ConfirmSubmission,
	reject *ucsubmission.RejectSubmission,
	dispatcher *audit.Dispatcher,
	summaryCache *cache.Cache,
) *SubmissionHandler {
	return &SubmissionHandler{
		db:      db,
		confirm: confirm,
		reject:  reject,
		audit:   dispatcher,
		cache:   summaryCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type DraftServiceRequest struct {
	ServiceID          uint     `json:"service_id"`
	ServiceName        string   `json:"service_name"`
	DefaultPrice       float64  `json:"default_price"`
	CustomPrice        *float64 `json:"custom_price"`
	Quantity           int      `json:"quantity"`
	ResponsiblePartyID *uint    `json:"responsible_party_id"`
}

type DraftFeeRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type ConfirmSubmissionRequest struct {
	BookingName string `json:"booking_name"`

	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`

	BookingDate    string `json:"booking_date"`     // YYYY-MM-DD
	BookingDateEnd string `json:"booking_date_end"` // opsional
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`

	Location       string `json:"location"`
	LocationMapURL string `json:"location_map_url"`

	Services            []DraftServiceRequest `json:"services"`
	ResponsiblePartyIDs []uint                `json:"responsible_party_ids"`

	PaymentStatus string  `json:"payment_status"`
	AmountPaid    float64 `json:"amount_paid"`

	DiscountValue float64 `json:"discount_value"`
	DiscountType  string  `json:"discount_type"`
	TaxPercentage float64 `json:"tax_percentage"`

	AdditionalFees []DraftFeeRequest `json:"additional_fees"`

	Notes                string `json:"notes"`
	SyncToGoogleCalendar bool   `json:"sync_to_google_calendar"`
}

type RejectSubmissionRequest struct {
	Reason string `json:"reason"`
}

func (req *ConfirmSubmissionRequest) toDraft(company *models.Company) (domain.ConfirmationDraft, error) {
	draft := domain.ConfirmationDraft{
		BookingName:         req.BookingName,
		ClientName:          req.ClientName,
		ClientPhone:         req.ClientPhone,
		ClientAddress:       req.ClientAddress,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		Location:            req.Location,
		LocationMapURL:      req.LocationMapURL,
		ResponsiblePartyIDs: req.ResponsiblePartyIDs,
		PaymentStatus:       bookingdomain.PaymentStatus(req.PaymentStatus),
		AmountPaid:          req.AmountPaid,
		DiscountValue:       req.DiscountValue,
		DiscountType:        domain.DiscountType(req.DiscountType),
		TaxPercentage:       req.TaxPercentage,
		Notes:               req.Notes,
		SyncToCalendar:      req.SyncToGoogleCalendar,
	}

	if req.DiscountType == "" {
		draft.DiscountType = domain.DiscountRupiah
	}

	if req.BookingDate != "" {
		date, err := parseDateInCompany(company, req.BookingDate)
		if err != nil {
			return draft, err
		}
		draft.BookingDate = date
	}

	if req.BookingDateEnd != "" {
		end, err := parseDateInCompany(company, req.BookingDateEnd)
		if err != nil {
			return draft, err
		}
		draft.BookingDateEnd = &end
	}

	for _, svc := range req.Services {
		draft.Services = append(draft.Services, domain.DraftService{
			ServiceID:          svc.ServiceID,
			ServiceName:        svc.ServiceName,
			DefaultPrice:       svc.DefaultPrice,
			CustomPrice:        svc.CustomPrice,
			Quantity:           svc.Quantity,
			ResponsiblePartyID: svc.ResponsiblePartyID,
		})
	}

	for _, fee := range req.AdditionalFees {
		draft.AdditionalFees = append(draft.AdditionalFees, domain.DraftFee{
			Description: fee.Description,
			Amount:      fee.Amount,
		})
	}

	return draft, nil
}

// ======================================================
// LIST
// ======================================================

func (h *SubmissionHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	status := c.Query("status")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	q := h.db.
		Model(&models.Submission{}).
		Where("company_id = ?", companyID)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "submission_count_failed", "Gagal menghitung pengajuan.")
		return
	}

	var subs []models.Submission
	if err := q.
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error; err != nil {

		httperr.Internal(c, "submission_list_failed", "Gagal memuat pengajuan.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"submissions": subs,
	})
}

// ======================================================
// GET
// ======================================================

func (h *SubmissionHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var sub models.Submission
	if err := h.db.
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&sub).Error; err != nil {

		httperr.NotFound(c, "submission_not_found", "Pengajuan tidak ditemukan.")
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ======================================================
// PREVIEW TOTALS
// ======================================================

// PreviewTotals menghitung rincian harga draft tanpa menyentuh apa pun.
// Dipakai UI untuk kalkulasi live saat operator mengedit.
func (h *SubmissionHandler) PreviewTotals(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var sub models.Submission
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&sub).Error; err != nil {

		httperr.NotFound(c, "submission_not_found", "Pengajuan tidak ditemukan.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	var req ConfirmSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	draft, err := req.toDraft(&company)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Tanggal tidak valid.")
		return
	}

	totals := domain.ComputeTotals(draft)
	domain.SyncAmountPaid(&draft, totals)

	c.JSON(http.StatusOK, gin.H{
		"totals":      totals,
		"amount_paid": draft.AmountPaid,
		"errors":      domain.Validate(draft),
	})
}

// ======================================================
// CONFIRM
// ======================================================

func (h *SubmissionHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID pengajuan tidak valid.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	var req ConfirmSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	draft, err := req.toDraft(&company)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Tanggal tidak valid.")
		return
	}

	bk, err := h.confirm.Execute(c.Request.Context(), companyID, userID, uint(id), draft)
	if err != nil {
		h.mapSubmissionError(c, err)
		return
	}

	h.cache.InvalidateSummary(c.Request.Context(), companyID)

	c.JSON(http.StatusCreated, bk)
}

// ======================================================
// REJECT
// ======================================================

func (h *SubmissionHandler) Reject(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID pengajuan tidak valid.")
		return
	}

	var req RejectSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	sub, err := h.reject.Execute(c.Request.Context(), companyID, userID, uint(id), req.Reason)
	if err != nil {
		h.mapSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ======================================================
// DELETE
// ======================================================

func (h *SubmissionHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var sub models.Submission
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&sub).Error; err != nil {

		httperr.NotFound(c, "submission_not_found", "Pengajuan tidak ditemukan.")
		return
	}

	if err := h.db.Select("Services").Delete(&sub).Error; err != nil {
		httperr.Internal(c, "submission_delete_failed", "Gagal menghapus pengajuan.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "submission_deleted",
		Entity:    "submission",
		EntityID:  &sub.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": sub.ID})
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *SubmissionHandler) mapSubmissionError(c *gin.Context, err error) {
	var fields domain.FieldErrors
	switch {
	case errors.As(err, &fields):
		httperr.Validation(c, fields)
	case httperr.IsBusiness(err, "submission_not_found"):
		httperr.NotFound(c, "submission_not_found", "Pengajuan tidak ditemukan.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.Conflict(c, "invalid_state", "Pengajuan sudah dikonfirmasi atau ditolak.")
	case httperr.IsBusiness(err, "responsible_party_not_found"):
		httperr.BadRequest(c, "responsible_party_not_found", "Penanggung jawab tidak ditemukan.")
	default:
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Permintaan tidak valid.")
			return
		}
		httperr.Internal(c, "submission_operation_failed", "Operasi pengajuan gagal.")
	}
}
