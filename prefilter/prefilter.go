// Package prefilter strips raw documents down to the lines likely relevant
// to a category before they go to the extraction service, bounding the
// payload each extraction call carries.
package prefilter

import (
	"sort"
	"strings"

	"weekender/config"
	"weekender/types"
)

// Filter scores each line of content against the category's relevance
// signals and returns matching lines plus one line before and two after
// each match, capped at maxLines. Returns "" when nothing matched.
func Filter(content string, category types.Category, maxLines int) string {
	if maxLines <= 0 {
		maxLines = config.MaxFilteredLines
	}

	lines := strings.Split(content, "\n")
	patterns := patternsFor(category)
	keep := make(map[int]struct{})

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) < config.MinLineLength {
			continue
		}

		for _, pattern := range patterns {
			if pattern.MatchString(line) {
				for j := max(0, i-1); j < min(len(lines), i+3); j++ {
					keep[j] = struct{}{}
				}
				break
			}
		}
	}

	if len(keep) == 0 {
		return ""
	}

	indices := make([]int, 0, len(keep))
	for i := range keep {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	if len(indices) > maxLines {
		indices = indices[:maxLines]
	}

	retained := make([]string, 0, len(indices))
	for _, i := range indices {
		retained = append(retained, lines[i])
	}
	return strings.Join(retained, "\n")
}

// FilterDocuments filters every document and drops those that retain
// nothing; an empty document would only waste an extraction call.
func FilterDocuments(docs []types.RawDocument, category types.Category) []types.RawDocument {
	filtered := make([]types.RawDocument, 0, len(docs))
	for _, doc := range docs {
		content := Filter(doc.Content, category, config.MaxFilteredLines)
		if strings.TrimSpace(content) == "" {
			continue
		}
		filtered = append(filtered, types.RawDocument{SourceURL: doc.SourceURL, Content: content})
	}
	return filtered
}

// Batch groups documents into fixed-size batches for dispatch to the
// extraction service.
func Batch(docs []types.RawDocument, size int) [][]types.RawDocument {
	if size <= 0 {
		size = config.ExtractionBatchSize
	}

	var batches [][]types.RawDocument
	for start := 0; start < len(docs); start += size {
		end := min(start+size, len(docs))
		batches = append(batches, docs[start:end])
	}
	return batches
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
