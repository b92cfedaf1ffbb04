package handlers

import (
	"time"

	"github.com/luthfirf17/catat-jasamu-api/internal/models"
	"github.com/luthfirf17/catat-jasamu-api/internal/timezone"
)

// --------------------------------------------------
// Timezone terpusat per perusahaan
// --------------------------------------------------

func locationFromCompany(company *models.Company) *time.Location {
	if company != nil {
		return timezone.Location(company.Timezone)
	}
	return timezone.Location(timezone.DefaultTimezone)
}

func nowInCompany(company *models.Company) time.Time {
	return time.Now().In(locationFromCompany(company))
}

func parseDateInCompany(company *models.Company, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromCompany(company),
	)
}
