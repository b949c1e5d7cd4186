package storage

import "strings"

// asciiSpace is the whitespace Trim strips. Non-ASCII spaces are left in
// place so keys padded with them fail validation.
const asciiSpace = " \t\n\v\f\r"

// Trim strips leading and trailing ASCII whitespace from s.
// It reports false when nothing is left, so callers can tell an
// all-whitespace input apart from a usable string.
func Trim(s string) (string, bool) {
	trimmed := strings.Trim(s, asciiSpace)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// IsValidKey reports whether k may be stored as a key.
// Keys are non-empty and made only of ASCII letters, digits, '.', '_' and '-'.
func IsValidKey(k string) bool {
	if k == "" {
		return false
	}

	for i := 0; i < len(k); i++ {
		if !isKeyByte(k[i]) {
			return false
		}
	}
	return true
}

func isKeyByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '.', c == '_', c == '-':
		return true
	}
	return false
}

// normalizeKey trims k and validates the result.
func normalizeKey(k string) (string, error) {
	key, ok := Trim(k)
	if !ok || !IsValidKey(key) {
		return "", ErrInvalidKey
	}
	return key, nil
}
