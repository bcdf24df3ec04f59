package pricing

import (
	"math"
	"strings"
)

const (
	// defaultBasePrice is the base used when no comparable data exists at all.
	defaultBasePrice = 100.0
	// minimumEstimate is the floor every estimate is clamped to.
	minimumEstimate = 10.0
)

// adjustment is one substring rule applied to the combined listing text. A
// rule fires if any of its patterns appears.
type adjustment struct {
	patterns []string
	factor   float64
}

// Rules are evaluated in this order and compound; several may fire for the
// same listing.
var adjustments = []adjustment{
	{patterns: []string{"leather"}, factor: 1.15},
	{patterns: []string{"solid wood", "oak"}, factor: 1.10},
	{patterns: []string{"scratches", "worn"}, factor: 0.85},
	{patterns: []string{"broken", "damage"}, factor: 0.70},
}

// Estimate derives a fair-market price for a candidate listing. The base is
// the mean price of records matching category and condition, falling back to
// category-only matches, then to a fixed default when no comparable data
// exists. Text adjustments are applied to the base, the result is rounded to
// cents and clamped to the minimum.
//
// Estimate is total: any string inputs, including empty ones, produce a
// deterministic result for an unchanged record set.
func Estimate(records []ComparableRecord, category, condition, title, description string) float64 {
	base, ok := meanPrice(records, func(r ComparableRecord) bool {
		return strings.EqualFold(r.Category, category) && strings.EqualFold(r.Condition, condition)
	})
	if !ok {
		base, ok = meanPrice(records, func(r ComparableRecord) bool {
			return strings.EqualFold(r.Category, category)
		})
	}
	if !ok {
		base = defaultBasePrice
	}

	text := strings.ToLower(title + " " + description)
	for _, a := range adjustments {
		for _, p := range a.patterns {
			if strings.Contains(text, p) {
				base *= a.factor
				break
			}
		}
	}

	rounded := math.Round(base*100) / 100
	if rounded < minimumEstimate {
		return minimumEstimate
	}
	return rounded
}

func meanPrice(records []ComparableRecord, match func(ComparableRecord) bool) (float64, bool) {
	var sum float64
	var n int
	for _, r := range records {
		if match(r) {
			sum += r.Price
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
