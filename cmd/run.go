package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"books-explorer/internal/queries"
	"books-explorer/internal/store"
)

type runOptions struct {
	Genre        string
	After        int
	Author       string
	Title        string
	Price        float64
	DeleteTitle  string
	InStockAfter int
	Page         int
	PerPage      int
	TopAuthors   int
	ExplainYear  int
}

func defaultRunOptions() runOptions {
	return runOptions{
		Genre:        "Fiction",
		After:        2000,
		Author:       "George Orwell",
		Title:        "1984",
		Price:        9.99,
		DeleteTitle:  "The Da Vinci Code",
		InStockAfter: 2010,
		Page:         1,
		PerPage:      queries.DefaultPageSize,
		TopAuthors:   1,
		ExplainYear:  1949,
	}
}

func (a *app) runCmd() *cobra.Command {
	opts := defaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every query, aggregation and index step in order and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasks(cmd.Context(), a.books, opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Genre, "genre", opts.Genre, "genre to list")
	f.IntVar(&opts.After, "after", opts.After, "list books published after this year")
	f.StringVar(&opts.Author, "author", opts.Author, "author to list and explain")
	f.StringVar(&opts.Title, "title", opts.Title, "title whose price is updated and explained")
	f.Float64Var(&opts.Price, "price", opts.Price, "new price for --title")
	f.StringVar(&opts.DeleteTitle, "delete-title", opts.DeleteTitle, "title to delete")
	f.IntVar(&opts.InStockAfter, "in-stock-after", opts.InStockAfter, "year for the in-stock listing")
	f.IntVar(&opts.Page, "page", opts.Page, "page of the in-stock listing")
	f.IntVar(&opts.PerPage, "per-page", opts.PerPage, "books per page")
	f.IntVar(&opts.TopAuthors, "top-authors", opts.TopAuthors, "how many authors to rank")
	f.IntVar(&opts.ExplainYear, "explain-year", opts.ExplainYear, "published_year for the compound index explain")
	return cmd
}

type step struct {
	name string
	run  func(ctx context.Context) (any, error)
}

// runTasks executes the steps in order. A missing book on update or delete
// is reported in the output rather than stopping the run.
func runTasks(ctx context.Context, s *store.BookStore, o runOptions, out io.Writer) error {
	page := queries.NewPage(o.Page, o.PerPage)

	steps := []step{
		{"books in genre " + o.Genre, func(ctx context.Context) (any, error) {
			return s.FindByGenre(ctx, o.Genre)
		}},
		{fmt.Sprintf("books published after %d", o.After), func(ctx context.Context) (any, error) {
			return s.FindPublishedAfter(ctx, o.After)
		}},
		{"books by " + o.Author, func(ctx context.Context) (any, error) {
			return s.FindByAuthor(ctx, o.Author)
		}},
		{fmt.Sprintf("set price of %q to %.2f", o.Title, o.Price), func(ctx context.Context) (any, error) {
			res, err := s.UpdatePrice(ctx, o.Title, o.Price)
			if err != nil {
				return nil, err
			}
			return map[string]int64{"matched": res.MatchedCount, "modified": res.ModifiedCount}, nil
		}},
		{fmt.Sprintf("delete %q", o.DeleteTitle), func(ctx context.Context) (any, error) {
			if err := s.DeleteByTitle(ctx, o.DeleteTitle); err != nil {
				return nil, err
			}
			return map[string]int{"deleted": 1}, nil
		}},
		{fmt.Sprintf("in stock after %d, price ascending, page %d", o.InStockAfter, page.Number), func(ctx context.Context) (any, error) {
			return s.FindInStockAfter(ctx, o.InStockAfter, queries.Ascending, page)
		}},
		{fmt.Sprintf("in stock after %d, price descending, page %d", o.InStockAfter, page.Number), func(ctx context.Context) (any, error) {
			return s.FindInStockAfter(ctx, o.InStockAfter, queries.Descending, page)
		}},
		{"average price by genre", func(ctx context.Context) (any, error) {
			return s.AveragePriceByGenre(ctx)
		}},
		{"author with the most books", func(ctx context.Context) (any, error) {
			return s.TopAuthors(ctx, o.TopAuthors)
		}},
		{"books per decade", func(ctx context.Context) (any, error) {
			return s.CountByDecade(ctx)
		}},
		{"create indexes", func(ctx context.Context) (any, error) {
			return s.EnsureIndexes(ctx)
		}},
		{fmt.Sprintf("explain title %q", o.Title), func(ctx context.Context) (any, error) {
			return s.ExplainByTitle(ctx, o.Title)
		}},
		{fmt.Sprintf("explain author %q published %d", o.Author, o.ExplainYear), func(ctx context.Context) (any, error) {
			return s.ExplainByAuthorYear(ctx, o.Author, o.ExplainYear)
		}},
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	for _, st := range steps {
		result, err := st.run(ctx)
		switch {
		case errors.Is(err, store.ErrBookNotFound):
			result = map[string]string{"warning": err.Error()}
		case err != nil:
			return fmt.Errorf("%s: %w", st.name, err)
		}
		if _, err := fmt.Fprintf(out, "// %s\n", st.name); err != nil {
			return err
		}
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	return nil
}
