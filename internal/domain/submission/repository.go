package submission

import (
	"context"

	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	// -------- Service catalog --------
	GetActiveService(
		ctx context.Context,
		companyID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Responsible parties --------
	ListResponsibleParties(
		ctx context.Context,
		companyID uint,
		ids []uint,
	) ([]models.ResponsibleParty, error)

	// -------- Submission --------
	CreateSubmission(
		ctx context.Context,
		sub *models.Submission,
	) error

	GetSubmissionForCompany(
		ctx context.Context,
		companyID uint,
		submissionID uint,
	) (*models.Submission, error)

	UpdateSubmission(
		ctx context.Context,
		sub *models.Submission,
	) error

	// -------- Confirmation (atomic) --------
	// ConfirmSubmission commits the whole confirmation in one transaction:
	// lock + re-check the submission, resolve the client by phone, persist
	// the booking with its lines and the payment, flip the status. Either
	// everything lands or nothing does.
	ConfirmSubmission(
		ctx context.Context,
		submissionID uint,
		client *models.Client,
		bk *models.Booking,
		pay *models.Payment,
	) error
}
