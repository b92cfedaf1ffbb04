package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/httpresp"
	"github.com/luthfirf17/catat-jasamu-api/internal/middleware"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/validators"
)

type ResponsiblePartyHandler struct {
	db *gorm.DB
}

func NewResponsiblePartyHandler(db *gorm.DB) *ResponsiblePartyHandler {
	return &ResponsiblePartyHandler{db: db}
}

type CreateResponsiblePartyRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type UpdateResponsiblePartyRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

func (h *ResponsiblePartyHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	q := h.db.Where("company_id = ?", companyID)

	if active := c.Query("active"); active == "true" {
		q = q.Where("active = ?", true)
	} else if active == "false" {
		q = q.Where("active = ?", false)
	}

	var parties []models.ResponsibleParty
	if err := q.Order("name ASC").Find(&parties).Error; err != nil {
		httperr.Internal(c, "failed_to_list_responsible_parties", "Gagal memuat penanggung jawab.")
		return
	}

	httpresp.List(c, parties)
}

func (h *ResponsiblePartyHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateResponsiblePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	if req.Phone != "" && !validators.IsPhoneValid(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Nomor telepon tidak valid.")
		return
	}

	party := models.ResponsibleParty{
		CompanyID: companyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      req.Role,
		Active:    true,
	}

	if err := h.db.Create(&party).Error; err != nil {
		httperr.Internal(c, "failed_to_create_responsible_party", "Gagal menyimpan penanggung jawab.")
		return
	}

	c.JSON(http.StatusCreated, party)
}

func (h *ResponsiblePartyHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var party models.ResponsibleParty
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&party).Error; err != nil {

		httperr.NotFound(c, "responsible_party_not_found", "Penanggung jawab tidak ditemukan.")
		return
	}

	var req UpdateResponsiblePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone != "" && !validators.IsPhoneValid(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Nomor telepon tidak valid.")
			return
		}
		party.Phone = *req.Phone
	}
	if req.Role != nil {
		party.Role = *req.Role
	}
	if req.Active != nil {
		party.Active = *req.Active
	}

	if err := h.db.Save(&party).Error; err != nil {
		httperr.Internal(c, "failed_to_update_responsible_party", "Gagal memperbarui penanggung jawab.")
		return
	}

	c.JSON(http.StatusOK, party)
}

func (h *ResponsiblePartyHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	// Penanggung jawab yang pernah dipakai booking hanya dinonaktifkan,
	// supaya riwayat booking lama tetap utuh.
	var count int64
	h.db.Table("booking_responsible_parties").
		Where("responsible_party_id = ?", id).
		Count(&count)

	if count > 0 {
		res := h.db.Model(&models.ResponsibleParty{}).
			Where("id = ? AND company_id = ?", id, companyID).
			Update("active", false)
		if res.Error != nil {
			httperr.Internal(c, "failed_to_delete_responsible_party", "Gagal menghapus penanggung jawab.")
			return
		}
		if res.RowsAffected == 0 {
			httperr.NotFound(c, "responsible_party_not_found", "Penanggung jawab tidak ditemukan.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"deactivated": id})
		return
	}

	res := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.ResponsibleParty{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_responsible_party", "Gagal menghapus penanggung jawab.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "responsible_party_not_found", "Penanggung jawab tidak ditemukan.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
