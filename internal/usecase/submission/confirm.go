package submission

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	"github.com/luthfirf17/catat-jasamu-api/internal/calendar"
	bookingdomain "github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/submission"
	"github.com/luthfirf17/catat-jasamu-api/internal/httperr"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type ConfirmSubmission struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cal   calendar.Syncer
}

func NewConfirmSubmission(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cal calendar.Syncer,
) *ConfirmSubmission {
	return &ConfirmSubmission{
		repo:  repo,
		audit: audit,
		cal:   cal,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmSubmission) Execute(
	ctx context.Context,
	companyID uint,
	userID uint,
	submissionID uint,
	draft domain.ConfirmationDraft,
) (*models.Booking, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	sub, err := uc.repo.GetSubmissionForCompany(ctx, companyID, submissionID)
	if err != nil {
		return nil, httperr.ErrBusiness("submission_not_found")
	}

	// --------------------------------------------------
	// 1. Guard status (cek cepat; dicek ulang di bawah lock)
	// --------------------------------------------------
	if err := domain.CanConfirm(domain.Status(sub.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Validasi draft — semua error field dikumpulkan,
	//    persistence belum disentuh sama sekali
	// --------------------------------------------------
	if draft.PaymentStatus == "" {
		draft.PaymentStatus = bookingdomain.PaymentBelumBayar
	}
	if !draft.PaymentStatus.IsValid() {
		return nil, domain.FieldErrors{"payment_status": "invalid"}
	}

	if errs := domain.Validate(draft); errs != nil {
		return nil, errs
	}

	// --------------------------------------------------
	// 3. Harga dihitung ulang saat konfirmasi, bukan dari
	//    state lama di UI
	// --------------------------------------------------
	totals := domain.ComputeTotals(draft)
	domain.SyncAmountPaid(&draft, totals)

	// --------------------------------------------------
	// 4. Penanggung jawab harus milik perusahaan ini
	// --------------------------------------------------
	parties, err := uc.repo.ListResponsibleParties(ctx, companyID, draft.ResponsiblePartyIDs)
	if err != nil {
		return nil, err
	}
	if len(parties) != len(draft.ResponsiblePartyIDs) {
		return nil, httperr.ErrBusiness("responsible_party_not_found")
	}

	// --------------------------------------------------
	// 5. Bentuk booking + payment dari draft
	// --------------------------------------------------
	now := timezone.NowIn(company.Timezone)

	bk := &models.Booking{
		CompanyID:          companyID,
		Code:               newBookingCode(now),
		Name:               draft.BookingName,
		BookingDate:        draft.BookingDate,
		BookingDateEnd:     draft.BookingDateEnd,
		BookingDays:        domain.BookingDays(draft.BookingDate, draft.BookingDateEnd),
		StartTime:          draft.StartTime,
		EndTime:            draft.EndTime,
		Location:           draft.Location,
		LocationMapURL:     draft.LocationMapURL,
		Status:             string(bookingdomain.InitialStatus()),
		ResponsibleParties: parties,
		OriginalSubtotal:   totals.OriginalSubtotal,
		DiscountValue:      draft.DiscountValue,
		DiscountType:       string(draft.DiscountType),
		DiscountAmount:     totals.DiscountAmount,
		TaxPercentage:      draft.TaxPercentage,
		TaxAmount:          totals.TaxAmount,
		TotalPrice:         totals.Total,
		PaymentStatus:      string(draft.PaymentStatus),
		Notes:              draft.Notes,
	}

	for i, svc := range draft.Services {
		bk.Services = append(bk.Services, models.BookingService{
			ServiceID:          svc.ServiceID,
			ServiceName:        svc.ServiceName,
			Price:              svc.LinePrice(),
			Quantity:           svc.LineQuantity(),
			ResponsiblePartyID: svc.ResponsiblePartyID,
			Position:           i,
		})
	}

	for _, fee := range draft.AdditionalFees {
		amount := fee.Amount
		if amount < 0 {
			amount = 0
		}
		bk.Fees = append(bk.Fees, models.BookingFee{
			Description: fee.Description,
			Amount:      amount,
		})
	}

	pay := &models.Payment{
		CompanyID:     companyID,
		Amount:        draft.AmountPaid,
		PaymentStatus: string(draft.PaymentStatus),
		PaymentDate:   now,
	}

	client := &models.Client{
		CompanyID: companyID,
		Name:      draft.ClientName,
		Phone:     draft.ClientPhone,
		Address:   draft.ClientAddress,
	}

	// --------------------------------------------------
	// 6. Satu transaksi: semua jadi, atau tidak sama sekali
	// --------------------------------------------------
	if err := uc.repo.ConfirmSubmission(ctx, submissionID, client, bk, pay); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Efek samping pasca-commit (tidak pernah rollback)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "submission_confirmed",
		Entity:    "submission",
		EntityID:  &submissionID,
		Metadata: map[string]any{
			"booking_id":   bk.ID,
			"booking_code": bk.Code,
			"total":        bk.TotalPrice,
		},
	})

	if draft.SyncToCalendar {
		if err := uc.cal.Sync(ctx, bk); err != nil {
			log.Println("calendar sync failed:", err)
		}
	}

	return bk, nil
}

func newBookingCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return "BK-" + now.Format("20060102") + "-" + suffix
}
