package queries

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AveragePriceByGenre groups books by genre and averages their price.
func AveragePriceByGenre() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$genre"},
			{Key: "averagePrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// TopAuthors returns the n authors with the most books, most first.
func TopAuthors(n int) mongo.Pipeline {
	if n < 1 {
		n = 1
	}
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "bookCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "bookCount", Value: -1}}}},
		{{Key: "$limit", Value: n}},
	}
}

// CountByDecade buckets books by published_year rounded down to the decade.
func CountByDecade() mongo.Pipeline {
	decade := bson.D{{Key: "$subtract", Value: bson.A{
		"$published_year",
		bson.D{{Key: "$mod", Value: bson.A{"$published_year", 10}}},
	}}}
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: decade},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
