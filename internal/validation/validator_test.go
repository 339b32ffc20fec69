package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"books-explorer/internal/models"
	"books-explorer/internal/validation"
)

func TestValidate_Book(t *testing.T) {
	v := validation.New()

	valid := models.Book{Title: "1984", Author: "George Orwell", Genre: "Dystopian", PublishedYear: 1949, Price: 10.99}
	require.NoError(t, v.Validate(valid))

	err := v.Validate(models.Book{Title: "No author", PublishedYear: 1949, Price: -1})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["author"])
	assert.Equal(t, "is required", verr.Fields["genre"])
	assert.Equal(t, "must be at least 0", verr.Fields["price"])
	assert.NotContains(t, verr.Fields, "title")
}

func TestValidate_PriceUpdate(t *testing.T) {
	v := validation.New()

	price := 9.99
	require.NoError(t, v.Validate(models.PriceUpdate{Price: &price}))

	zero := 0.0
	require.NoError(t, v.Validate(models.PriceUpdate{Price: &zero}))

	err := v.Validate(models.PriceUpdate{})
	assert.ErrorContains(t, err, "price is required")
}
