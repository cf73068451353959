package prefilter

import (
	"regexp"

	"weekender/types"
)

// Relevance signal families per category. Lines matching any pattern are
// retained along with a small window of surrounding context.

var sharedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*\*[A-Z].*\*\*`),                 // bold text, usually names
	regexp.MustCompile(`^\s*\d+[.)]\s+\*?\*?[A-Z]`),       // numbered lists
	regexp.MustCompile(`https?://\S+`),                    // URLs
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d`),
	regexp.MustCompile(`\d{1,2}[/\-]\d{1,2}[/\-]?\d{0,4}`),
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(am|pm)?`),
	regexp.MustCompile(`(?i)(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`),
}

var diningPatterns = append(append([]*regexp.Regexp{}, sharedPatterns...),
	regexp.MustCompile(`\$+\s*[-–]?\s*\$*`),
	regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(stars?|rating|/\s*5|/\s*10)`),
	regexp.MustCompile(`(?i)(address|location|located|neighborhood)[:\s]`),
	regexp.MustCompile(`(?i)(cuisine|serves?|specializ|known for)`),
	regexp.MustCompile(`(?i)(reservations?|book|hours|open)`),
	regexp.MustCompile(`(?i)(menu|dishes?|plates?|appetizer|entree|dessert)`),
	regexp.MustCompile(`(?i)(chef|kitchen|restaurant|eatery|bistro|cafe|bar)`),
	regexp.MustCompile(`(?i)(delicious|amazing|best|popular|favorite|must.?try)`),
)

var eventPatterns = append(append(append([]*regexp.Regexp{}, sharedPatterns...), datePatterns...),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`(?i)(tickets?|admission|entry|free)`),
	regexp.MustCompile(`(?i)(venue|location|at the|held at|takes place)`),
	regexp.MustCompile(`(?i)(festival|fair|exhibition|show|performance|game|match)`),
	regexp.MustCompile(`(?i)(sports?|arts?|theater|theatre|comedy|family|kids)`),
	regexp.MustCompile(`(?i)(annual|weekly|daily|special|limited)`),
)

var locationPatterns = append(append([]*regexp.Regexp{}, sharedPatterns...),
	regexp.MustCompile(`(?i)(address|location|located|neighborhood|district)`),
	regexp.MustCompile(`(?i)(hours|open|closed|daily|weekends?)`),
	regexp.MustCompile(`(?i)\$\d+|free\s*(admission|entry)?`),
	regexp.MustCompile(`(?i)(museum|gallery|park|garden|landmark|monument)`),
	regexp.MustCompile(`(?i)(historic|famous|popular|iconic|hidden gem)`),
	regexp.MustCompile(`(?i)(tour|visit|explore|see|experience)`),
	regexp.MustCompile(`(?i)(architecture|art|nature|wildlife|scenic)`),
	regexp.MustCompile(`(?i)(tip|recommend|must.?see|don't miss)`),
)

var concertPatterns = append(append(append([]*regexp.Regexp{}, sharedPatterns...), datePatterns...),
	regexp.MustCompile(`(?i)(doors|show|starts?)\s*(at|@)?\s*\d`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`(?i)(tickets?|sold out|on sale|presale)`),
	regexp.MustCompile(`(?i)(venue|club|theater|theatre|hall|arena|stadium)`),
	regexp.MustCompile(`(?i)(concert|show|gig|performance|tour|live)`),
	regexp.MustCompile(`(?i)(rock|pop|jazz|blues|country|hip.?hop|electronic|indie|metal|folk|r&b)`),
	regexp.MustCompile(`(?i)(band|artist|musician|dj|performer|singer)`),
	regexp.MustCompile(`(?i)(opening act|headlin|support)`),
)

func patternsFor(category types.Category) []*regexp.Regexp {
	switch category {
	case types.CategoryConcerts:
		return concertPatterns
	case types.CategoryDining:
		return diningPatterns
	case types.CategoryEvents:
		return eventPatterns
	case types.CategoryLocations:
		return locationPatterns
	default:
		return sharedPatterns
	}
}
