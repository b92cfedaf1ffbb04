package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/middleware"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

type UpdateCompanyRequest struct {
	Name                 *string  `json:"name"`
	Phone                *string  `json:"phone"`
	Address              *string  `json:"address"`
	Timezone             *string  `json:"timezone"`
	DefaultTaxPercentage *float64 `json:"default_tax_percentage"`
}

func (h *CompanyHandler) GetMeCompany(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Perusahaan tidak ditemukan.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Gagal memuat data perusahaan.")
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateMeCompany(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Perusahaan tidak ditemukan.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Gagal memuat data perusahaan.")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Zona waktu tidak dikenal.")
			return
		}
		company.Timezone = *req.Timezone
	}
	if req.DefaultTaxPercentage != nil {
		if *req.DefaultTaxPercentage < 0 || *req.DefaultTaxPercentage > 100 {
			httperr.BadRequest(c, "invalid_tax_percentage", "Persentase pajak harus 0-100.")
			return
		}
		company.DefaultTaxPercentage = *req.DefaultTaxPercentage
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Gagal menyimpan pengaturan perusahaan.")
		return
	}

	c.JSON(http.StatusOK, company)
}
