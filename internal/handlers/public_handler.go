package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	infraRepo "github.com/luthfirf17/catat-jasamu-api/internal/infra/repository"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	ucsubmission "github.com/luthfirf17/catat-jasamu-api/internal/usecase/submission"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPublicHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *PublicHandler {
	return &PublicHandler{
		db:    db,
		audit: dispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type PublicCreateSubmissionRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Address     string `json:"address"`

	BookingName    string `json:"booking_name"`
	BookingDate    string `json:"booking_date" binding:"required"` // YYYY-MM-DD
	BookingDateEnd string `json:"booking_date_end"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`

	Location       string `json:"location"`
	LocationMapURL string `json:"location_map_url"`

	Services []PublicServiceRequest `json:"services" binding:"required,min=1"`
	Notes    string                 `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES (katalog publik)
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var company models.Company
	if err := h.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("company_id = ? AND active = true", company.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Gagal memuat layanan.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":  company,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// CREATE SUBMISSION (form publik)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateSubmission(c *gin.Context) {
	slug := c.Param("slug")

	var company models.Company
	if err := h.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Perusahaan tidak ditemukan.")
		return
	}

	var req PublicCreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Data tidak valid.")
		return
	}

	repo := infraRepo.NewSubmissionGormRepository(h.db)
	uc := ucsubmission.NewCreatePublicSubmission(repo, h.audit)

	in := ucsubmission.CreatePublicSubmissionInput{
		CompanyID:      company.ID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Address:        req.Address,
		BookingName:    req.BookingName,
		Date:           req.BookingDate,
		DateEnd:        req.BookingDateEnd,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		LocationMapURL: req.LocationMapURL,
		Notes:          req.Notes,
	}

	for _, svc := range req.Services {
		in.Services = append(in.Services, ucsubmission.ServiceRequest{
			ServiceID: svc.ServiceID,
			Quantity:  svc.Quantity,
		})
	}

	sub, err := uc.Execute(c.Request.Context(), in)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Pengajuan tidak valid.")
			return
		}
		httperr.Internal(c, "failed_to_create_submission", "Gagal membuat pengajuan.")
		return
	}

	c.JSON(http.StatusCreated, sub)
}

////////////////////////////////////////////////////////
// STATUS (klien cek lewat token publik)
////////////////////////////////////////////////////////

func (h *PublicHandler) GetSubmissionStatus(c *gin.Context) {
	token := c.Param("token")

	var sub models.Submission
	if err := h.db.
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("public_token = ?", token).
		First(&sub).Error; err != nil {

		httperr.NotFound(c, "submission_not_found", "Pengajuan tidak ditemukan.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        sub.Status,
		"booking_name":  sub.BookingName,
		"booking_date":  sub.BookingDate,
		"reject_reason": sub.RejectReason,
		"services":      sub.Services,
	})
}
