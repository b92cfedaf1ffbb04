package submission

import "github.com/luthfirf17/catat-jasamu-api/internal/httperr"

// ===============================
// Submission Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// ===============================
// Validations
// ===============================

// Status hanya bergerak maju: pending -> confirmed|rejected.
// Status terminal tidak pernah berubah lagi.

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
