package session

import (
	"strings"

	"github.com/KirkDiggler/secretmafia/internal/random"
)

const (
	// CodeAlphabet leaves out 0, O, 1 and I
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// CodeLength is the number of symbols in a join code
	CodeLength = 6
)

// GenerateCode draws a join code from the alphabet
func GenerateCode(src random.Source) string {
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(CodeAlphabet[src.Intn(len(CodeAlphabet))])
	}
	return b.String()
}

// NormalizeCode upper-cases a code typed by a player
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCode returns true for a normalized code of the right length and alphabet
func IsValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(CodeAlphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}
