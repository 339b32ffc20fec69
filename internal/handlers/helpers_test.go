package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"books-explorer/internal/handlers"
	"books-explorer/internal/store"
	"books-explorer/internal/utils"
)

const testSecret = "handler-test-secret"

func newMock(t *testing.T) *mtest.T {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		t.Cleanup(func() { _ = mt.Client.Disconnect(context.Background()) })
	}
	return mt
}

func newRouter(mt *mtest.T) *mux.Router {
	return handlers.NewRouter(handlers.RouterConfig{
		Store:   store.NewBookStore(mt.Coll, store.Options{}),
		PerPage: 5,
	})
}

func authorize(t testing.TB, req *http.Request) *http.Request {
	t.Helper()
	utils.InitJwtSecret(testSecret)
	token, err := utils.GenerateJWT("librarian")
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func ns(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func bookDoc(title, author, genre string, year int32, price float64) bson.D {
	return bson.D{
		{Key: "title", Value: title},
		{Key: "author", Value: author},
		{Key: "genre", Value: genre},
		{Key: "published_year", Value: year},
		{Key: "price", Value: price},
		{Key: "in_stock", Value: true},
	}
}

func asInt64(v bson.RawValue) int64 {
	switch v.Type {
	case bsontype.Int32:
		return int64(v.Int32())
	case bsontype.Int64:
		return v.Int64()
	}
	return -1
}
