package persistence

import (
	"strings"

	"github.com/sidquark/minikv/internal/storage"
)

// LineKind classifies a line of a snapshot file
type LineKind byte

const (
	// LineEntry is a well-formed key=value line.
	LineEntry LineKind = iota + 1
	// LineSkip is a blank or comment line.
	LineSkip
	// LineMalformed is a line that carries content but cannot be parsed.
	LineMalformed
)

func (k LineKind) String() string {
	switch k {
	case LineEntry:
		return "entry"
	case LineSkip:
		return "skip"
	case LineMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ParseLine splits a raw line into a trimmed key and value.
//
// Blank lines and lines starting with '#' or ';' are skipped. Only the first
// '=' separates key from value, so values may contain '='. A missing value
// yields the empty string. A missing separator, an empty key or a key with
// characters outside the key alphabet makes the line malformed.
func ParseLine(line string) (key, value string, kind LineKind) {
	trimmed, ok := storage.Trim(line)
	if !ok {
		return "", "", LineSkip
	}

	if trimmed[0] == '#' || trimmed[0] == ';' {
		return "", "", LineSkip
	}

	rawKey, rawValue, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", LineMalformed
	}

	key, ok = storage.Trim(rawKey)
	if !ok {
		return "", "", LineMalformed
	}
	value, _ = storage.Trim(rawValue)

	if !storage.IsValidKey(key) {
		return "", "", LineMalformed
	}
	return key, value, LineEntry
}

// FormatLine renders an entry the way ParseLine reads it back.
func FormatLine(key, value string) string {
	return key + "=" + value + "\n"
}
