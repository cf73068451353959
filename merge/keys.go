package merge

import (
	"strings"
	"unicode"

	"weekender/types"
)

// Identity-key rules per category. Time-bound entities (concerts, events)
// are identified by name + venue + date; place entities (dining,
// locations) by name + the street line of their address. Different
// providers format the same entity differently, so every component is
// normalized first.

// normalize lowercases, strips punctuation, and collapses whitespace so
// "The Blue Room" and "the  blue room!" produce the same component.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// streetFragment extracts the street line from a full address:
// "900 E 11th St, Austin, TX 78702" -> "900 E 11th St".
func streetFragment(address string) string {
	if i := strings.Index(address, ","); i >= 0 {
		return address[:i]
	}
	return address
}

// IdentityKey computes the deduplication key for a record, or "" when the
// record lacks the fields needed to identify it safely. An unkeyable
// record must be dropped, not merged into an unrelated entity.
func IdentityKey(r types.Record, category types.Category) string {
	name := normalize(r.Name)
	if name == "" {
		return ""
	}

	switch category {
	case types.CategoryConcerts, types.CategoryEvents:
		return name + "|" + normalize(r.Venue) + "|" + strings.TrimSpace(r.Date)
	case types.CategoryDining, types.CategoryLocations:
		return name + "|" + normalize(streetFragment(r.Address))
	default:
		return name
	}
}
