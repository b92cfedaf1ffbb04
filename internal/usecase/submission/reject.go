package submission

import (
	"context"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
)

type RejectSubmission struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectSubmission(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RejectSubmission {
	return &RejectSubmission{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RejectSubmission) Execute(
	ctx context.Context,
	companyID uint,
	userID uint,
	submissionID uint,
	reason string,
) (*models.Submission, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	sub, err := uc.repo.GetSubmissionForCompany(ctx, companyID, submissionID)
	if err != nil {
		return nil, httperr.ErrBusiness("submission_not_found")
	}

	now := timezone.NowIn(company.Timezone)
	if err := domain.Reject(sub, reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "submission_rejected",
		Entity:    "submission",
		EntityID:  &sub.ID,
	})

	return sub, nil
}
