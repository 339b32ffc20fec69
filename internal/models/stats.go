package models

type GenreAveragePrice struct {
	Genre        string  `json:"genre" bson:"_id"`
	AveragePrice float64 `json:"average_price" bson:"averagePrice"`
}

type AuthorBookCount struct {
	Author    string `json:"author" bson:"_id"`
	BookCount int64  `json:"book_count" bson:"bookCount"`
}

type DecadeCount struct {
	Decade int   `json:"decade" bson:"_id"`
	Count  int64 `json:"count" bson:"count"`
}

// ExplainStats is the part of an explain("executionStats") reply worth
// looking at when checking index usage.
type ExplainStats struct {
	Stage               string `json:"stage"`
	IndexName           string `json:"index_name,omitempty"`
	NReturned           int64  `json:"n_returned"`
	ExecutionTimeMillis int64  `json:"execution_time_millis"`
	TotalKeysExamined   int64  `json:"total_keys_examined"`
	TotalDocsExamined   int64  `json:"total_docs_examined"`
}

// UsedIndex reports whether the winning plan read an index instead of
// scanning the collection.
func (s ExplainStats) UsedIndex() bool {
	return s.IndexName != "" || s.TotalKeysExamined > 0
}

type CollectionStats struct {
	TotalBooks int64 `json:"total_books"`
	InStock    int64 `json:"in_stock"`
	Genres     int   `json:"genres"`
	Authors    int   `json:"authors"`
}
