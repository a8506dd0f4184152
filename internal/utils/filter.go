package utils

import (
	"unicode"
)

// IsTibetan reports whether r is in the Tibetan block
func IsTibetan(r rune) bool {
	return r >= 0x0F00 && r <= 0x0FFF
}

// IsOnlyNumbers checks if a string consists entirely of digits, Tibetan digits included
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsForeignScript checks for letters outside the Tibetan block
func ContainsForeignScript(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !IsTibetan(r) {
			return true
		}
	}
	return false
}

// IsValidInput checks if a token is worth checking.
// Numbers and tokens in another script are skipped by the CLI unless filtering is off.
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	return !ContainsForeignScript(s)
}
