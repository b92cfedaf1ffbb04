package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid memeriksa domain e-mail benar-benar ada (punya MX
// atau minimal resolve), supaya registrasi dengan domain ngasal ditolak
// lebih awal.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	// fallback: domain tanpa MX tapi resolve tetap diterima
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
