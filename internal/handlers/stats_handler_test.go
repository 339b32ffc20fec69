package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"books-explorer/internal/models"
)

func TestStatsHandler(t *testing.T) {
	mt := newMock(t)

	mt.Run("average price by genre", func(mt *mtest.T) {
		router := newRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Fiction"}, {Key: "averagePrice", Value: 11.5}},
		))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/genres/average-price", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status OK, got %v", w.Code)
		}

		var rows []models.GenreAveragePrice
		if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].Genre != "Fiction" || rows[0].AveragePrice != 11.5 {
			t.Errorf("unexpected rows: %+v", rows)
		}
	})

	mt.Run("top authors with limit", func(mt *mtest.T) {
		router := newRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "George Orwell"}, {Key: "bookCount", Value: int32(2)}},
			bson.D{{Key: "_id", Value: "J.R.R. Tolkien"}, {Key: "bookCount", Value: int32(2)}},
		))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/authors/top?limit=2", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status OK, got %v", w.Code)
		}

		limit := mt.GetStartedEvent().Command.Lookup("pipeline", "2", "$limit")
		if asInt64(limit) != 2 {
			t.Errorf("expected $limit 2, got %v", limit)
		}
	})

	mt.Run("top authors rejects bad limit", func(mt *mtest.T) {
		router := newRouter(mt)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/authors/top?limit=0", nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", w.Code)
		}
	})

	mt.Run("decades", func(mt *mtest.T) {
		router := newRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int32(1940)}, {Key: "count", Value: int32(2)}},
		))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/decades", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status OK, got %v", w.Code)
		}

		var rows []models.DecadeCount
		if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].Decade != 1940 || rows[0].Count != 2 {
			t.Errorf("unexpected rows: %+v", rows)
		}
	})

	mt.Run("aggregation failure", func(mt *mtest.T) {
		router := newRouter(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 16, Name: "InvalidLength", Message: "boom",
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/decades", nil))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status InternalServerError, got %v", w.Code)
		}
	})
}
