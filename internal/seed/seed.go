// Package seed loads sample books written in MongoDB Extended JSON.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"books-explorer/internal/models"
	"books-explorer/internal/store"
	"books-explorer/internal/validation"
)

//go:embed books.json
var defaultDataset []byte

type dataset struct {
	Books []models.Book `bson:"books"`
}

// Parse decodes a {"books": [...]} Extended JSON document and validates
// every record before returning.
func Parse(data []byte) ([]models.Book, error) {
	var ds dataset
	if err := bson.UnmarshalExtJSON(data, false, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	v := validation.New()
	for i, b := range ds.Books {
		if err := v.Validate(b); err != nil {
			return nil, fmt.Errorf("book %d (%q): %w", i, b.Title, err)
		}
	}
	return ds.Books, nil
}

// Load reads path, or the embedded sample dataset when path is empty.
func Load(path string) ([]models.Book, error) {
	if path == "" {
		return Parse(defaultDataset)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// Run inserts books into the store, optionally emptying the collection first.
func Run(ctx context.Context, s *store.BookStore, books []models.Book, drop bool) (int, error) {
	if drop {
		if _, err := s.Collection().DeleteMany(ctx, bson.D{}); err != nil {
			return 0, fmt.Errorf("clear collection: %w", err)
		}
	}
	return s.InsertMany(ctx, books)
}
