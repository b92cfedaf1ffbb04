package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	"github.com/luthfirf17/catat-jasamu-api/internal/config"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
	"github.com/luthfirf17/catat-jasamu-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, dispatcher *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: dispatcher}
}

// --------- Requests ---------

type RegisterRequest struct {
	CompanyName    string `json:"company_name" binding:"required"`
	CompanySlug    string `json:"company_slug" binding:"required"`
	CompanyPhone   string `json:"company_phone"`
	CompanyAddress string `json:"company_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.CompanySlug))

	var count int64
	h.db.Model(&models.Company{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "Domain e-mail tidak valid.",
		})
		return
	}

	company := models.Company{
		Name:     req.CompanyName,
		Slug:     slug,
		Phone:    req.CompanyPhone,
		Address:  req.CompanyAddress,
		Timezone: timezone.DefaultTimezone,
	}

	if err := h.db.Create(&company).Error; err != nil {
		// Balapan pada slug unik tetap terdeteksi walau lolos cek count
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_company"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		CompanyID:    company.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: company.ID,
		UserID:    &user.ID,
		Action:    "company_registered",
		Entity:    "company",
		EntityID:  &company.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"company_id": user.CompanyID,
		},
		"company": gin.H{
			"id":      company.ID,
			"name":    company.Name,
			"slug":    company.Slug,
			"phone":   company.Phone,
			"address": company.Address,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Company").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	h.audit.Dispatch(audit.Event{
		CompanyID: user.CompanyID,
		UserID:    &user.ID,
		Action:    "user_logged_in",
		Entity:    "user",
		EntityID:  &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"company_id": user.CompanyID,
		},
		"company": gin.H{
			"id":      user.Company.ID,
			"name":    user.Company.Name,
			"slug":    user.Company.Slug,
			"phone":   user.Company.Phone,
			"address": user.Company.Address,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"companyId": user.CompanyID,
		"role":      user.Role,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
