package merge

import (
	"strings"

	"github.com/araddon/dateparse"
)

// NormalizeDate parses a date string in whatever format a provider or the
// extraction service produced and returns it as YYYY-MM-DD. Unparsable or
// placeholder values return "" so callers treat them as absent.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "tbd") || strings.EqualFold(s, "null") {
		return ""
	}

	// Fast path: already canonical.
	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		return s
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
