package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsEmailDomainValid resolves the address domain over DNS. A domain with
// either MX or A records is accepted; a resolution failure rejects.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

var phoneDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips formatting characters and prepends the country
// prefix when the number does not already carry one.
func NormalizePhone(phone, prefix string) string {
	digits := phoneDigits.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}

	prefixDigits := phoneDigits.ReplaceAllString(prefix, "")
	if prefixDigits != "" && strings.HasPrefix(digits, prefixDigits) {
		return "+" + digits
	}
	return "+" + prefixDigits + digits
}
