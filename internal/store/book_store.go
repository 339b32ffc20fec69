// Package store runs the books collection queries built by package queries
// and decodes their results.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"books-explorer/internal/metrics"
	"books-explorer/internal/models"
	"books-explorer/internal/queries"
)

var ErrBookNotFound = errors.New("book not found")

const defaultTimeout = 5 * time.Second

type Options struct {
	// Timeout bounds every call. Zero means 5s.
	Timeout time.Duration
	Metrics *metrics.Metrics
}

type BookStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewBookStore(coll *mongo.Collection, opts Options) *BookStore {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &BookStore{coll: coll, timeout: opts.Timeout, metrics: opts.Metrics}
}

func (s *BookStore) Collection() *mongo.Collection {
	return s.coll
}

func (s *BookStore) Insert(ctx context.Context, book models.Book) (_ models.Book, err error) {
	defer s.observe("insert", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.InsertOne(ctx, book)
	if err != nil {
		return models.Book{}, fmt.Errorf("insert book: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		book.ID = id
	}
	return book, nil
}

func (s *BookStore) InsertMany(ctx context.Context, books []models.Book) (n int, err error) {
	defer s.observe("insert_many", time.Now(), &err)
	if len(books) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	docs := make([]interface{}, len(books))
	for i := range books {
		docs[i] = books[i]
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert books: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (s *BookStore) FindByGenre(ctx context.Context, genre string) (books []models.Book, err error) {
	defer s.observe("find_by_genre", time.Now(), &err)
	books, err = findAll[models.Book](ctx, s, queries.ByGenre(genre))
	if err != nil {
		return nil, fmt.Errorf("find by genre: %w", err)
	}
	return books, nil
}

func (s *BookStore) FindPublishedAfter(ctx context.Context, year int) (books []models.Book, err error) {
	defer s.observe("find_published_after", time.Now(), &err)
	books, err = findAll[models.Book](ctx, s, queries.PublishedAfter(year))
	if err != nil {
		return nil, fmt.Errorf("find published after: %w", err)
	}
	return books, nil
}

func (s *BookStore) FindByAuthor(ctx context.Context, author string) (books []models.Book, err error) {
	defer s.observe("find_by_author", time.Now(), &err)
	books, err = findAll[models.Book](ctx, s, queries.ByAuthor(author))
	if err != nil {
		return nil, fmt.Errorf("find by author: %w", err)
	}
	return books, nil
}

func (s *BookStore) FindByTitle(ctx context.Context, title string) (book models.Book, err error) {
	defer s.observe("find_by_title", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err = s.coll.FindOne(ctx, queries.ByTitle(title)).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, ErrBookNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("find by title: %w", err)
	}
	return book, nil
}

// UpdatePrice sets the price of the first book with the given title.
func (s *BookStore) UpdatePrice(ctx context.Context, title string, price float64) (res *mongo.UpdateResult, err error) {
	defer s.observe("update_price", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err = s.coll.UpdateOne(ctx, queries.ByTitle(title), queries.SetPrice(price))
	if err != nil {
		return nil, fmt.Errorf("update price: %w", err)
	}
	if res.MatchedCount == 0 {
		return res, ErrBookNotFound
	}
	return res, nil
}

// DeleteByTitle removes the first book with the given title.
func (s *BookStore) DeleteByTitle(ctx context.Context, title string) (err error) {
	defer s.observe("delete_by_title", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, queries.ByTitle(title))
	if err != nil {
		return fmt.Errorf("delete by title: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrBookNotFound
	}
	return nil
}

// FindInStockAfter lists in-stock books published after year as
// {title, author, price}, ordered by price and paginated.
func (s *BookStore) FindInStockAfter(ctx context.Context, year int, dir queries.SortDirection, page queries.Page) (books []models.BookSummary, err error) {
	defer s.observe("find_in_stock_after", time.Now(), &err)
	opts := options.Find().
		SetProjection(queries.SummaryProjection()).
		SetSort(queries.SortByPrice(dir)).
		SetSkip(page.Skip()).
		SetLimit(page.Limit())

	books, err = findAll[models.BookSummary](ctx, s, queries.InStockPublishedAfter(year), opts)
	if err != nil {
		return nil, fmt.Errorf("find in stock after: %w", err)
	}
	return books, nil
}

func (s *BookStore) AveragePriceByGenre(ctx context.Context) (rows []models.GenreAveragePrice, err error) {
	defer s.observe("aggregate_average_price_by_genre", time.Now(), &err)
	rows, err = aggregateAll[models.GenreAveragePrice](ctx, s, queries.AveragePriceByGenre())
	if err != nil {
		return nil, fmt.Errorf("average price by genre: %w", err)
	}
	return rows, nil
}

func (s *BookStore) TopAuthors(ctx context.Context, n int) (rows []models.AuthorBookCount, err error) {
	defer s.observe("aggregate_top_authors", time.Now(), &err)
	rows, err = aggregateAll[models.AuthorBookCount](ctx, s, queries.TopAuthors(n))
	if err != nil {
		return nil, fmt.Errorf("top authors: %w", err)
	}
	return rows, nil
}

func (s *BookStore) CountByDecade(ctx context.Context) (rows []models.DecadeCount, err error) {
	defer s.observe("aggregate_decades", time.Now(), &err)
	rows, err = aggregateAll[models.DecadeCount](ctx, s, queries.CountByDecade())
	if err != nil {
		return nil, fmt.Errorf("count by decade: %w", err)
	}
	return rows, nil
}

// EnsureIndexes creates the title and author/published_year indexes. The
// server treats re-creating an identical index as a no-op.
func (s *BookStore) EnsureIndexes(ctx context.Context) (names []string, err error) {
	defer s.observe("create_indexes", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err = s.coll.Indexes().CreateMany(ctx, queries.BookIndexes())
	if err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return names, nil
}

func (s *BookStore) Stats(ctx context.Context) (stats models.CollectionStats, err error) {
	defer s.observe("stats", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if stats.TotalBooks, err = s.coll.CountDocuments(ctx, bson.D{}); err != nil {
		return stats, fmt.Errorf("count books: %w", err)
	}
	if stats.InStock, err = s.coll.CountDocuments(ctx, bson.D{{Key: "in_stock", Value: true}}); err != nil {
		return stats, fmt.Errorf("count in stock: %w", err)
	}
	genres, err := s.coll.Distinct(ctx, "genre", bson.D{})
	if err != nil {
		return stats, fmt.Errorf("distinct genres: %w", err)
	}
	authors, err := s.coll.Distinct(ctx, "author", bson.D{})
	if err != nil {
		return stats, fmt.Errorf("distinct authors: %w", err)
	}
	stats.Genres = len(genres)
	stats.Authors = len(authors)
	return stats, nil
}

func findAll[T any](ctx context.Context, s *BookStore, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

func aggregateAll[T any](ctx context.Context, s *BookStore, pipeline mongo.Pipeline) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

func (s *BookStore) observe(op string, start time.Time, errp *error) {
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(*errp, ErrBookNotFound):
		outcome = metrics.OutcomeNotFound
	case *errp != nil:
		outcome = metrics.OutcomeError
	}
	s.metrics.Observe(op, outcome, start)
}
