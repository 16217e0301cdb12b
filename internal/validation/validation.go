package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	NicknameMinLength = 2
	NicknameMaxLength = 20
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nicknamePattern = regexp.MustCompile(`^[가-힣a-zA-Z0-9_]+$`)
)

// ValidEmail reports whether the address has a plausible user@host.tld
// shape. Deliverability is not checked.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidNickname reports whether the name is 2-20 characters of Hangul,
// Latin letters, digits, or underscore.
func ValidNickname(name string) bool {
	name = strings.TrimSpace(name)
	length := utf8.RuneCountInString(name)
	if length < NicknameMinLength || length > NicknameMaxLength {
		return false
	}
	return nicknamePattern.MatchString(name)
}
