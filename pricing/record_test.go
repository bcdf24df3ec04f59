package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ComparableRecord
	}{
		{
			name: "header is skipped",
			text: "category,condition,title,price,platform\nFurniture,Used,Desk,85,Campus Pay",
			want: []ComparableRecord{
				{Category: "Furniture", Condition: "Used", Title: "Desk", Price: 85, Platform: "Campus Pay"},
			},
		},
		{
			name: "no header, all lines are data",
			text: "Furniture,Used,Desk,85,Campus Pay\nBooks,Fair,Atlas,20,eBay",
			want: []ComparableRecord{
				{Category: "Furniture", Condition: "Used", Title: "Desk", Price: 85, Platform: "Campus Pay"},
				{Category: "Books", Condition: "Fair", Title: "Atlas", Price: 20, Platform: "eBay"},
			},
		},
		{
			name: "quoted field with comma does not split",
			text: `Furniture,Used,"Bookshelf, 5 shelves",120,Craigslist`,
			want: []ComparableRecord{
				{Category: "Furniture", Condition: "Used", Title: "Bookshelf, 5 shelves", Price: 120, Platform: "Craigslist"},
			},
		},
		{
			name: "fields are trimmed after unquoting",
			text: ` Furniture , Used ,  "  Desk  " , 85 , Campus Pay `,
			want: []ComparableRecord{
				{Category: "Furniture", Condition: "Used", Title: "Desk", Price: 85, Platform: "Campus Pay"},
			},
		},
		{
			name: "crlf line endings and blank lines",
			text: "category,condition,title,price,platform\r\n\r\nFurniture,Used,Desk,85,Campus Pay\r\n\n",
			want: []ComparableRecord{
				{Category: "Furniture", Condition: "Used", Title: "Desk", Price: 85, Platform: "Campus Pay"},
			},
		},
		{
			name: "rows with fewer than 5 fields are dropped",
			text: "Furniture,Used,Desk\nBooks,Fair,Atlas,20,eBay",
			want: []ComparableRecord{
				{Category: "Books", Condition: "Fair", Title: "Atlas", Price: 20, Platform: "eBay"},
			},
		},
		{
			name: "extra fields are ignored",
			text: "Books,Fair,Atlas,20,eBay,extra,another",
			want: []ComparableRecord{
				{Category: "Books", Condition: "Fair", Title: "Atlas", Price: 20, Platform: "eBay"},
			},
		},
		{
			name: "unparseable price coerces to zero",
			text: "Books,Fair,Atlas,n/a,eBay\nBooks,Fair,Globe,$20,eBay",
			want: []ComparableRecord{
				{Category: "Books", Condition: "Fair", Title: "Atlas", Price: 0, Platform: "eBay"},
				{Category: "Books", Condition: "Fair", Title: "Globe", Price: 0, Platform: "eBay"},
			},
		},
		{
			name: "negative price coerces to zero",
			text: "Books,Fair,Atlas,-5,eBay",
			want: []ComparableRecord{
				{Category: "Books", Condition: "Fair", Title: "Atlas", Price: 0, Platform: "eBay"},
			},
		},
		{
			name: "empty input",
			text: "",
			want: []ComparableRecord{},
		},
		{
			name: "header only",
			text: "category,condition,title,price,platform\n",
			want: []ComparableRecord{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRecords(tc.text))
		})
	}
}

func TestParseRecordsPreservesRowOrder(t *testing.T) {
	text := "A,Used,First,1,x\nB,Used,Second,2,x\nC,Used,Third,3,x"
	records := ParseRecords(text)
	titles := make([]string, len(records))
	for i, r := range records {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"First", "Second", "Third"}, titles)
}

func TestFormatRecordsRoundTrip(t *testing.T) {
	records := []ComparableRecord{
		{Category: "Furniture", Condition: "Used", Title: "Oak Desk", Price: 85.5, Platform: "Campus Pay"},
		{Category: "Electronics", Condition: "New", Title: "Monitor, 27 inch", Price: 120, Platform: "eBay"},
		{Category: "Books", Condition: "Fair", Title: "Atlas", Price: 0, Platform: "Amazon"},
	}

	assert.Equal(t, records, ParseRecords(FormatRecords(records)))
}
