package pricing

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map"
)

// GroupAverage is the mean price within one bucket.
type GroupAverage struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
}

// AverageByCategory computes the mean price per category. Categories are
// compared case-sensitively as stored; an empty category is bucketed under
// "unknown". Groups come out in first-seen order.
func AverageByCategory(records []ComparableRecord) []GroupAverage {
	return groupAverages(records, func(r ComparableRecord) string { return r.Category })
}

// AverageByPlatform computes the mean price per platform. When categoryFilter
// is non-empty, only records of that category (case-insensitive) are
// included. An empty platform is bucketed under "unknown".
func AverageByPlatform(records []ComparableRecord, categoryFilter string) []GroupAverage {
	if categoryFilter != "" {
		filtered := make([]ComparableRecord, 0, len(records))
		for _, r := range records {
			if strings.EqualFold(r.Category, categoryFilter) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	return groupAverages(records, func(r ComparableRecord) string { return r.Platform })
}

type priceSum struct {
	sum float64
	n   int
}

func groupAverages(records []ComparableRecord, keyOf func(ComparableRecord) string) []GroupAverage {
	// Ordered map keeps group order stable (first appearance in the table).
	groups := orderedmap.New()

	for _, r := range records {
		key := keyOf(r)
		if key == "" {
			key = "unknown"
		}
		acc := priceSum{}
		if v, ok := groups.Get(key); ok {
			acc = v.(priceSum)
		}
		acc.sum += r.Price
		acc.n++
		groups.Set(key, acc)
	}

	out := make([]GroupAverage, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		acc := pair.Value.(priceSum)
		out = append(out, GroupAverage{
			Key:  pair.Key.(string),
			Mean: acc.sum / float64(acc.n),
		})
	}

	return out
}
