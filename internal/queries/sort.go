package queries

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrInvalidSortDirection = errors.New("invalid sort direction")

type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// ParseSortDirection accepts asc/desc (any case) and 1/-1. An empty string
// means ascending.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "1":
		return Ascending, nil
	case "desc", "descending", "-1":
		return Descending, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSortDirection, s)
}

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

func SortByPrice(dir SortDirection) bson.D {
	if dir != Descending {
		dir = Ascending
	}
	return bson.D{{Key: "price", Value: int(dir)}}
}
