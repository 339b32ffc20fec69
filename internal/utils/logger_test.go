package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"books-explorer/internal/constants"
	"books-explorer/internal/models"
	"books-explorer/internal/utils"
)

func TestLogger_Log(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("records actor", func(mt *mtest.T) {
		logger := utils.Logger{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ctx := utils.WithActor(context.Background(), "librarian")
		require.NoError(mt, logger.Log(ctx, models.BookEntity, constants.Delete, "The Da Vinci Code"))

		doc := mt.GetStartedEvent().Command.Lookup("documents", "0").Document()
		assert.Equal(mt, "librarian", doc.Lookup("performed_by").StringValue())
		assert.Equal(mt, constants.Delete, doc.Lookup("action").StringValue())
		assert.False(mt, doc.Lookup("exported").Boolean())
	})

	mt.Run("defaults to system actor", func(mt *mtest.T) {
		logger := utils.Logger{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, logger.Log(context.Background(), models.IndexEntity, constants.CreateIndex, nil))

		doc := mt.GetStartedEvent().Command.Lookup("documents", "0").Document()
		assert.Equal(mt, constants.SystemActor, doc.Lookup("performed_by").StringValue())
	})
}

func TestLogger_ZeroValueDiscards(t *testing.T) {
	var logger utils.Logger
	assert.NoError(t, logger.Log(context.Background(), models.BookEntity, constants.Create, nil))
}
