package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"books-explorer/internal/queries"
)

// extJSON renders v the way mongosh would print it, for comparing against
// the shell form of each query.
func extJSON(t *testing.T, v any) string {
	t.Helper()
	out, err := bson.MarshalExtJSON(bson.D{{Key: "q", Value: v}}, false, false)
	require.NoError(t, err)
	return string(out)
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name string
		got  bson.D
		want string
	}{
		{"genre", queries.ByGenre("Fiction"), `{"genre": "Fiction"}`},
		{"published after", queries.PublishedAfter(2000), `{"published_year": {"$gt": 2000}}`},
		{"author", queries.ByAuthor("George Orwell"), `{"author": "George Orwell"}`},
		{"title", queries.ByTitle("1984"), `{"title": "1984"}`},
		{"in stock after", queries.InStockPublishedAfter(2010), `{"in_stock": true, "published_year": {"$gt": 2010}}`},
		{"author and year", queries.ByAuthorAndYear("George Orwell", 1949), `{"author": "George Orwell", "published_year": 1949}`},
		{"set price", queries.SetPrice(9.99), `{"$set": {"price": 9.99}}`},
		{"summary projection", queries.SummaryProjection(), `{"title": 1, "author": 1, "price": 1, "_id": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, `{"q": `+tt.want+`}`, extJSON(t, tt.got))
		})
	}
}

func TestInStockPublishedAfter_KeyOrder(t *testing.T) {
	f := queries.InStockPublishedAfter(2010)
	require.Len(t, f, 2)
	assert.Equal(t, "in_stock", f[0].Key)
	assert.Equal(t, "published_year", f[1].Key)
}

func TestParseSortDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    queries.SortDirection
		wantErr bool
	}{
		{"", queries.Ascending, false},
		{"asc", queries.Ascending, false},
		{"ASC", queries.Ascending, false},
		{"1", queries.Ascending, false},
		{"desc", queries.Descending, false},
		{" Descending ", queries.Descending, false},
		{"-1", queries.Descending, false},
		{"sideways", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := queries.ParseSortDirection(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, queries.ErrInvalidSortDirection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortByPrice(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, queries.SortByPrice(queries.Ascending))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, queries.SortByPrice(queries.Descending))
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, queries.SortByPrice(0))
}

func TestPage(t *testing.T) {
	tests := []struct {
		name      string
		page      queries.Page
		wantSkip  int64
		wantLimit int64
	}{
		{"first page", queries.Page{Number: 1, Size: 5}, 0, 5},
		{"third page", queries.Page{Number: 3, Size: 5}, 10, 5},
		{"zero page clamps", queries.Page{Number: 0, Size: 5}, 0, 5},
		{"negative page clamps", queries.Page{Number: -4, Size: 10}, 0, 10},
		{"default size", queries.Page{Number: 2}, 5, 5},
		{"size capped", queries.Page{Number: 2, Size: 1000}, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSkip, tt.page.Skip())
			assert.Equal(t, tt.wantLimit, tt.page.Limit())
		})
	}
}

func TestAveragePriceByGenre(t *testing.T) {
	want := `[
		{"$group": {"_id": "$genre", "averagePrice": {"$avg": "$price"}}},
		{"$sort": {"_id": 1}}
	]`
	assert.JSONEq(t, `{"q": `+want+`}`, extJSON(t, queries.AveragePriceByGenre()))
}

func TestTopAuthors(t *testing.T) {
	want := `[
		{"$group": {"_id": "$author", "bookCount": {"$sum": 1}}},
		{"$sort": {"bookCount": -1}},
		{"$limit": 1}
	]`
	assert.JSONEq(t, `{"q": `+want+`}`, extJSON(t, queries.TopAuthors(1)))
	assert.JSONEq(t, `{"q": `+want+`}`, extJSON(t, queries.TopAuthors(0)))

	p := queries.TopAuthors(3)
	assert.Equal(t, bson.D{{Key: "$limit", Value: 3}}, p[2])
}

func TestCountByDecade(t *testing.T) {
	want := `[
		{"$group": {
			"_id": {"$subtract": ["$published_year", {"$mod": ["$published_year", 10]}]},
			"count": {"$sum": 1}
		}},
		{"$sort": {"_id": 1}}
	]`
	assert.JSONEq(t, `{"q": `+want+`}`, extJSON(t, queries.CountByDecade()))
}

func TestBookIndexes(t *testing.T) {
	idx := queries.BookIndexes()
	require.Len(t, idx, 2)
	assert.Equal(t, bson.D{{Key: "title", Value: 1}}, idx[0].Keys)
	assert.Equal(t, bson.D{
		{Key: "author", Value: 1},
		{Key: "published_year", Value: 1},
	}, idx[1].Keys)
}
