package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

type SubmissionGormRepository struct {
	db *gorm.DB
}

func NewSubmissionGormRepository(db *gorm.DB) *SubmissionGormRepository {
	return &SubmissionGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *SubmissionGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *SubmissionGormRepository) GetActiveService(
	ctx context.Context,
	companyID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ? AND active = true", serviceID, companyID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Responsible parties
// --------------------------------------------------

func (r *SubmissionGormRepository) ListResponsibleParties(
	ctx context.Context,
	companyID uint,
	ids []uint,
) ([]models.ResponsibleParty, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var parties []models.ResponsibleParty
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

// --------------------------------------------------
// Submission
// --------------------------------------------------

func (r *SubmissionGormRepository) CreateSubmission(
	ctx context.Context,
	sub *models.Submission,
) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubmissionGormRepository) GetSubmissionForCompany(
	ctx context.Context,
	companyID uint,
	submissionID uint,
) (*models.Submission, error) {

	var sub models.Submission
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND company_id = ?", submissionID, companyID).
		First(&sub).Error; err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *SubmissionGormRepository) UpdateSubmission(
	ctx context.Context,
	sub *models.Submission,
) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// --------------------------------------------------
// Confirmation (atomic)
// --------------------------------------------------

// ConfirmSubmission runs the whole confirmation in one transaction. The
// submission row is locked and its status re-checked under the lock, so a
// concurrent confirm on the same row loses with invalid_state instead of
// writing a second booking.
func (r *SubmissionGormRepository) ConfirmSubmission(
	ctx context.Context,
	submissionID uint,
	client *models.Client,
	bk *models.Booking,
	pay *models.Payment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var sub models.Submission
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND company_id = ?", submissionID, bk.CompanyID).
			First(&sub).Error; err != nil {
			return httperr.ErrBusiness("submission_not_found")
		}

		if sub.Status != string(domain.StatusPending) {
			return httperr.ErrBusiness("invalid_state")
		}

		// Klien dicocokkan per (company, phone); data draft menimpa
		// nama/alamat lama.
		var existing models.Client
		err := tx.
			Where("company_id = ? AND phone = ?", client.CompanyID, client.Phone).
			First(&existing).Error

		now := time.Now()

		if err == nil {
			existing.Name = client.Name
			existing.Address = client.Address
			existing.TotalBookings++
			existing.TotalSpent += bk.TotalPrice
			existing.LastBookingAt = &now
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*client = existing
		} else {
			client.TotalBookings = 1
			client.TotalSpent = bk.TotalPrice
			client.LastBookingAt = &now
			if err := tx.Create(client).Error; err != nil {
				return err
			}
		}

		bk.ClientID = client.ID
		bk.SubmissionID = &sub.ID

		if err := tx.Create(bk).Error; err != nil {
			return err
		}

		// Selalu tepat satu baris pembayaran per konfirmasi, termasuk
		// Belum Bayar (amount 0), agar riwayat pembayaran booking utuh.
		pay.BookingID = bk.ID
		if err := tx.Create(pay).Error; err != nil {
			return err
		}

		sub.Status = string(domain.StatusConfirmed)
		sub.ConfirmedAt = &now
		return tx.Save(&sub).Error
	})
}

// Compile-time check
var _ domain.Repository = (*SubmissionGormRepository)(nil)
