package validators

import (
	"regexp"
	"strings"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// IsPhoneValid menerima nomor lokal (08xx) maupun internasional (+62xx).
func IsPhoneValid(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRe.MatchString(cleaned)
}
