package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	"github.com/luthfirf17/catat-jasamu-api/internal/cache"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/httpresp"
	"github.com/luthfirf17/catat-jasamu-api/internal/middleware"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ExpenseHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.Cache
}

func NewExpenseHandler(db *gorm.DB, dispatcher *audit.Dispatcher, summaryCache *cache.Cache) *ExpenseHandler {
	return &ExpenseHandler{
		db:    db,
		audit: dispatcher,
		cache: summaryCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category"`
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
	Notes       string  `json:"notes"`
}

type UpdateExpenseRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	Notes       *string  `json:"notes"`
}

// ======================================================
// LIST
// ======================================================

func (h *ExpenseHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	q := h.db.Where("company_id = ?", companyID)

	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr != "" && monthStr != "" {
		year, errY := strconv.Atoi(yearStr)
		month, errM := strconv.Atoi(monthStr)
		if errY != nil || errM != nil || year < 2000 || year > 2100 || month < 1 || month > 12 {
			httperr.BadRequest(c, "invalid_period", "Tahun atau bulan tidak valid.")
			return
		}
		q = q.Where(
			"EXTRACT(YEAR FROM expense_date) = ? AND EXTRACT(MONTH FROM expense_date) = ?",
			year, month,
		)
	}

	var expenses []models.Expense
	if err := q.
		Order("expense_date DESC, id DESC").
		Find(&expenses).Error; err != nil {

		httperr.Internal(c, "failed_to_list_expenses", "Gagal memuat pengeluaran.")
		return
	}

	httpresp.List(c, expenses)
}

// ======================================================
// CREATE
// ======================================================

func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	date, err := parseDateInCompany(&company, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Tanggal tidak valid.")
		return
	}

	exp := models.Expense{
		CompanyID:   companyID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    strings.ToLower(req.Category),
		ExpenseDate: date,
		Notes:       req.Notes,
	}

	if err := h.db.Create(&exp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_expense", "Gagal menyimpan pengeluaran.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "expense_created",
		Entity:    "expense",
		EntityID:  &exp.ID,
		Metadata:  map[string]any{"amount": exp.Amount},
	})

	h.cache.InvalidateSummary(c.Request.Context(), companyID)

	c.JSON(http.StatusCreated, exp)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var exp models.Expense
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&exp).Error; err != nil {

		httperr.NotFound(c, "expense_not_found", "Pengeluaran tidak ditemukan.")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	if req.Description != nil {
		exp.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			httperr.BadRequest(c, "invalid_amount", "Nominal harus lebih dari nol.")
			return
		}
		exp.Amount = *req.Amount
	}
	if req.Category != nil {
		exp.Category = strings.ToLower(*req.Category)
	}
	if req.Date != nil {
		var company models.Company
		if err := h.db.First(&company, companyID).Error; err != nil {
			httperr.Internal(c, "company_not_found", "Perusahaan tidak ditemukan.")
			return
		}
		date, err := parseDateInCompany(&company, *req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Tanggal tidak valid.")
			return
		}
		exp.ExpenseDate = date
	}
	if req.Notes != nil {
		exp.Notes = *req.Notes
	}

	if err := h.db.Save(&exp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_expense", "Gagal memperbarui pengeluaran.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "expense_updated",
		Entity:    "expense",
		EntityID:  &exp.ID,
	})

	h.cache.InvalidateSummary(c.Request.Context(), companyID)

	c.JSON(http.StatusOK, exp)
}

// ======================================================
// DELETE
// ======================================================

func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	idStr := c.Param("id")

	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID tidak valid.")
		return
	}
	id := uint(id64)

	res := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.Expense{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_expense", "Gagal menghapus pengeluaran.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "expense_not_found", "Pengeluaran tidak ditemukan.")
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "expense_deleted",
		Entity:    "expense",
		EntityID:  &id,
	})

	h.cache.InvalidateSummary(c.Request.Context(), companyID)

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
