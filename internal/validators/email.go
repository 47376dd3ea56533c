package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailSyntaxValid is the cheap check used on the booking path, where a
// DNS lookup per request would be unacceptable.
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// IsEmailDomainValid additionally resolves the domain. Used on signup,
// where one lookup per account is fine.
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
