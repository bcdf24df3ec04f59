package pricing

import (
	"encoding/csv"
	"math"
	"strconv"
	"strings"
)

// ComparableRecord is one historical sale used as pricing evidence.
type ComparableRecord struct {
	Category  string  `json:"category"`
	Condition string  `json:"condition"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Platform  string  `json:"platform"`
}

// ParseRecords parses the comparable-sales table. The table is a simple CSV
// dialect: double quotes toggle an in-quote state and are stripped (there is
// no escaped-quote syntax), commas inside quotes don't split, fields are
// trimmed after unquoting. A header line is skipped if the first line looks
// like one. Rows with fewer than 5 fields are dropped; extra fields are
// ignored.
//
// ParseRecords never fails: unreadable or empty input yields an empty slice.
func ParseRecords(text string) []ComparableRecord {
	records := []ComparableRecord{}

	lines := splitLines(text)
	if len(lines) == 0 {
		return records
	}

	start := 0
	if strings.Contains(strings.ToLower(lines[0]), "category,") {
		start = 1
	}

	for _, line := range lines[start:] {
		cols := splitFields(line)
		if len(cols) < 5 {
			continue
		}
		records = append(records, ComparableRecord{
			Category:  cols[0],
			Condition: cols[1],
			Title:     cols[2],
			Price:     parsePrice(cols[3]),
			Platform:  cols[4],
		})
	}

	return records
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func splitFields(line string) []string {
	var cols []string
	var cur strings.Builder
	inQuote := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuote = !inQuote
		case c == ',' && !inQuote:
			cols = append(cols, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	cols = append(cols, strings.TrimSpace(cur.String()))

	return cols
}

// parsePrice keeps the source table's quirk: anything that doesn't parse as a
// non-negative number counts as a zero-priced sale. Zero rows still count
// toward group averages, skewing them downward. Known data-quality footgun;
// changing it needs a product decision.
func parsePrice(s string) float64 {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(p) || p < 0 {
		return 0
	}
	return p
}

// FormatRecords renders records back into table text, header included. The
// output parses back to the same records as long as field values contain no
// double quotes.
func FormatRecords(records []ComparableRecord) string {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"category", "condition", "title", "price", "platform"})
	for _, r := range records {
		_ = w.Write([]string{
			r.Category,
			r.Condition,
			r.Title,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			r.Platform,
		})
	}
	w.Flush()

	return buf.String()
}
