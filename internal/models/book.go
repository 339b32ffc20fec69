package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Book struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title" validate:"required"`
	Author        string             `json:"author" bson:"author" validate:"required"`
	Genre         string             `json:"genre" bson:"genre" validate:"required"`
	PublishedYear int                `json:"published_year" bson:"published_year" validate:"gte=0,lte=9999"`
	Price         float64            `json:"price" bson:"price" validate:"gte=0"`
	InStock       bool               `json:"in_stock" bson:"in_stock"`
	Pages         int                `json:"pages,omitempty" bson:"pages,omitempty" validate:"gte=0"`
	Publisher     string             `json:"publisher,omitempty" bson:"publisher,omitempty"`
}

// BookSummary is the {title, author, price} projection used by listing queries.
type BookSummary struct {
	Title  string  `json:"title" bson:"title"`
	Author string  `json:"author" bson:"author"`
	Price  float64 `json:"price" bson:"price"`
}

type PriceUpdate struct {
	Price *float64 `json:"price" validate:"required,gte=0"`
}

const (
	BookEntity  = "book"
	IndexEntity = "index"
)
