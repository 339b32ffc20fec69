// Package queries builds the filters, updates, projections, sorts and
// aggregation pipelines run against the books collection. Nothing here
// talks to the database.
package queries

import "go.mongodb.org/mongo-driver/bson"

func ByGenre(genre string) bson.D {
	return bson.D{{Key: "genre", Value: genre}}
}

func ByAuthor(author string) bson.D {
	return bson.D{{Key: "author", Value: author}}
}

func ByTitle(title string) bson.D {
	return bson.D{{Key: "title", Value: title}}
}

// PublishedAfter matches books published strictly after year.
func PublishedAfter(year int) bson.D {
	return bson.D{{Key: "published_year", Value: bson.D{{Key: "$gt", Value: year}}}}
}

func InStockPublishedAfter(year int) bson.D {
	return bson.D{
		{Key: "in_stock", Value: true},
		{Key: "published_year", Value: bson.D{{Key: "$gt", Value: year}}},
	}
}

func ByAuthorAndYear(author string, year int) bson.D {
	return bson.D{
		{Key: "author", Value: author},
		{Key: "published_year", Value: year},
	}
}

func SetPrice(price float64) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{{Key: "price", Value: price}}}}
}

// SummaryProjection keeps title, author and price and drops _id.
func SummaryProjection() bson.D {
	return bson.D{
		{Key: "title", Value: 1},
		{Key: "author", Value: 1},
		{Key: "price", Value: 1},
		{Key: "_id", Value: 0},
	}
}
