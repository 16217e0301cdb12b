package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"민지@example.co.kr",
		"a.b+c@sub.domain.org",
		"  padded@example.com  ",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"no@tld",
		"two@@example.com",
		"spaces in@example.com",
		"@example.com",
		"user@",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), email)
	}
}

func TestValidNickname(t *testing.T) {
	valid := []string{
		"민지",
		"jiyoon_kim",
		"User123",
		"집순이99",
		strings.Repeat("a", 20),
	}
	for _, name := range valid {
		assert.True(t, ValidNickname(name), name)
	}

	invalid := []string{
		"",
		"a", // below minimum
		strings.Repeat("a", 21),
		"has space",
		"emoji🔥name",
		"dash-name",
		"dot.name",
	}
	for _, name := range invalid {
		assert.False(t, ValidNickname(name), name)
	}
}

func TestValidNicknameCountsRunesNotBytes(t *testing.T) {
	// 10 Hangul syllables are 30 bytes but only 10 characters
	name := strings.Repeat("가", 10)
	assert.True(t, ValidNickname(name))

	assert.True(t, ValidNickname(strings.Repeat("가", 20)))
	assert.False(t, ValidNickname(strings.Repeat("가", 21)))
}
