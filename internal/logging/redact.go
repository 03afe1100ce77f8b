package logging

import "strings"

// Token masks a bearer or refresh token for log output, keeping the first
// four characters so two tokens can still be told apart.
//
//	"eyJhbGciOi..." -> "eyJh***"
//	"abc"           -> "***"
func Token(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "***"
}

// Email masks the local part of an e-mail address, keeping the domain.
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}
	i := strings.IndexByte(s, '@')
	local, domain := s[:i], s[i+1:]
	r := []rune(local)
	if len(r) > 2 {
		return string(r[:2]) + "***@" + domain
	}
	return "***@" + domain
}
