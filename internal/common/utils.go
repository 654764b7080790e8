package common

import "strings"

// WipeByteArray overwrites the contents of b with zeros. Secrets typed by the
// user are kept as []byte so they can be wiped right after the login request
// has been sent. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeIdentifier trims surrounding whitespace and lower-cases the
// domain of an email address. The local part is kept as typed: the server
// matches it exactly.
func NormalizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return s
	}
	return s[:at+1] + strings.ToLower(s[at+1:])
}
