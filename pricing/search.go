package pricing

import (
	"fmt"
	"strings"
)

const (
	searchResultLimit = 6
	sampleLimit       = 5

	noMatchHeader = "No direct matches. Here are some sample prices:"
)

// Search produces a human-readable digest of records matching a free-text
// query, used when no richer answer source is available. A record matches if
// the query is empty, its title contains the query, or the query contains its
// category. The containment check is deliberately two-directional so that a
// query like "I want to sell furniture" matches the category "furniture".
//
// With no matches, the digest falls back to a header plus a handful of sample
// prices from the head of the table.
func Search(records []ComparableRecord, query string) string {
	q := strings.ToLower(query)

	var lines []string
	for _, r := range records {
		title := strings.ToLower(r.Title)
		if q == "" || strings.Contains(title, q) || strings.Contains(q, strings.ToLower(r.Category)) {
			lines = append(lines, summaryLine(r))
			if len(lines) >= searchResultLimit {
				break
			}
		}
	}

	if len(lines) == 0 {
		lines = append(lines, noMatchHeader)
		for i := 0; i < len(records) && i < sampleLimit; i++ {
			lines = append(lines, summaryLine(records[i]))
		}
	}

	return strings.Join(lines, "\n")
}

func summaryLine(r ComparableRecord) string {
	return fmt.Sprintf("%s: %s — $%.2f (%s)", r.Category, r.Title, r.Price, r.Platform)
}
