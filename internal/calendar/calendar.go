package calendar

import (
	"context"
	"log"

	"github.com/luthfirf17/catat-jasamu-api/internal/models"
)

// Syncer mengirim booking terkonfirmasi ke kalender eksternal.
// Kegagalan sync tidak pernah membatalkan konfirmasi.
type Syncer interface {
	Sync(ctx context.Context, bk *models.Booking) error
}

// LogSyncer adalah implementasi default tanpa integrasi OAuth:
// hanya mencatat niat sync. Integrasi Google Calendar hidup di balik
// interface yang sama.
type LogSyncer struct{}

func NewLogSyncer() *LogSyncer {
	return &LogSyncer{}
}

func (s *LogSyncer) Sync(_ context.Context, bk *models.Booking) error {
	log.Printf("calendar sync requested for booking %s (%s)", bk.Code, bk.BookingDate.Format("2006-01-02"))
	return nil
}

var _ Syncer = (*LogSyncer)(nil)
