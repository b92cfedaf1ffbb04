package submission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
	"github.com/luthfirf17/catat-jasamu-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type ServiceRequest struct {
	ServiceID uint
	Quantity  int
}

type CreatePublicSubmissionInput struct {
	CompanyID uint

	ClientName  string
	ClientPhone string
	Address     string

	BookingName string
	Date        string // YYYY-MM-DD
	DateEnd     string // opsional
	StartTime   string // HH:mm
	EndTime     string

	Location       string
	LocationMapURL string

	Services []ServiceRequest
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreatePublicSubmission struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreatePublicSubmission(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreatePublicSubmission {
	return &CreatePublicSubmission{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreatePublicSubmission) Execute(
	ctx context.Context,
	in CreatePublicSubmissionInput,
) (*models.Submission, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	if !validators.IsPhoneValid(in.ClientPhone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	if len(in.Services) == 0 {
		return nil, httperr.ErrBusiness("no_services")
	}

	loc := timezone.Location(company.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	var dateEnd *time.Time
	if in.DateEnd != "" {
		end, err := time.ParseInLocation("2006-01-02", in.DateEnd, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		if end.Before(date) {
			return nil, httperr.ErrBusiness("invalid_date_range")
		}
		dateEnd = &end
	}

	// Snapshot layanan: nama/harga direkam saat submit, bukan di-join
	// belakangan, supaya perubahan katalog tidak mengubah pengajuan lama.
	var lines []models.SubmissionService
	for i, req := range in.Services {
		svc, err := uc.repo.GetActiveService(ctx, in.CompanyID, req.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}

		qty := req.Quantity
		if qty < 1 {
			qty = 1
		}

		lines = append(lines, models.SubmissionService{
			ServiceID:    svc.ID,
			ServiceName:  svc.Name,
			Description:  svc.Description,
			DefaultPrice: svc.Price,
			Quantity:     qty,
			Position:     i,
		})
	}

	sub := &models.Submission{
		CompanyID:      in.CompanyID,
		PublicToken:    uuid.NewString(),
		Status:         string(domain.InitialStatus()),
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		Address:        in.Address,
		BookingName:    in.BookingName,
		BookingDate:    date,
		BookingDateEnd: dateEnd,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Location:       in.Location,
		LocationMapURL: in.LocationMapURL,
		Services:       lines,
		Notes:          in.Notes,
	}

	if err := uc.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		Action:    "submission_created",
		Entity:    "submission",
		EntityID:  &sub.ID,
	})

	return sub, nil
}
