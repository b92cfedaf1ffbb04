package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/luthfirf17/catat-jasamu-api/internal/audit"
	domain "github.com/luthfirf17/catat-jasamu-api/internal/domain/booking"
	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
)

// PaymentReminder menandai booking H-1 yang belum lunas lewat audit log,
// sekali sehari jam 08:00.
type PaymentReminder struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cron  *cron.Cron
}

func NewPaymentReminder(db *gorm.DB, dispatcher *audit.Dispatcher) *PaymentReminder {
	return &PaymentReminder{
		db:    db,
		audit: dispatcher,
		cron:  cron.New(cron.WithLocation(timezone.Location(timezone.DefaultTimezone))),
	}
}

func (r *PaymentReminder) Start() {
	if _, err := r.cron.AddFunc("0 8 * * *", r.run); err != nil {
		log.Println("failed to schedule payment reminder:", err)
		return
	}

	r.cron.Start()
	log.Println("payment reminder scheduler started")
}

func (r *PaymentReminder) Stop() {
	r.cron.Stop()
}

func (r *PaymentReminder) run() {
	now := timezone.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	var bookings []models.Booking
	if err := r.db.
		Where(
			"status = ? AND payment_status <> ? AND booking_date >= ? AND booking_date < ?",
			string(domain.StatusScheduled), string(domain.PaymentLunas), from, to,
		).
		Find(&bookings).Error; err != nil {

		log.Println("payment reminder query failed:", err)
		return
	}

	for i := range bookings {
		bk := bookings[i]
		outstanding := bk.TotalPrice - paidAmount(r.db, bk.ID)

		r.audit.Dispatch(audit.Event{
			CompanyID: bk.CompanyID,
			Action:    "payment_reminder",
			Entity:    "booking",
			EntityID:  &bk.ID,
			Metadata: map[string]any{
				"code":        bk.Code,
				"outstanding": outstanding,
			},
		})
	}

	if len(bookings) > 0 {
		log.Printf("payment reminder: %d booking(s) flagged", len(bookings))
	}
}

func paidAmount(db *gorm.DB, bookingID uint) float64 {
	var paid float64
	db.Model(&models.Payment{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid)
	return paid
}
