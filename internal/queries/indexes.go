package queries

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	TitleIndexName      = "title_1"
	AuthorYearIndexName = "author_1_published_year_1"
)

func TitleIndex() mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: "title", Value: 1}}}
}

func AuthorYearIndex() mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{
		{Key: "author", Value: 1},
		{Key: "published_year", Value: 1},
	}}
}

func BookIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{TitleIndex(), AuthorYearIndex()}
}
