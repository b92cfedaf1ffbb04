package submission

import (
	"time"

	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(sub *models.Submission, now time.Time) error {
	if err := CanConfirm(Status(sub.Status)); err != nil {
		return err
	}

	sub.Status = string(StatusConfirmed)
	sub.ConfirmedAt = &now
	return nil
}

func Reject(sub *models.Submission, reason string, now time.Time) error {
	if err := CanReject(Status(sub.Status)); err != nil {
		return err
	}

	sub.Status = string(StatusRejected)
	sub.RejectReason = reason
	sub.RejectedAt = &now
	return nil
}
