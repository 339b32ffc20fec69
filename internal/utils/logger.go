package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"books-explorer/internal/constants"
	"books-explorer/internal/models"
)

type actorKey struct{}

// WithActor records who is performing the request so audit entries can name them.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return constants.SystemActor
}

// Logger writes audit records to a collection. A zero Logger discards them.
type Logger struct {
	Collection *mongo.Collection
}

func (l *Logger) Log(ctx context.Context, entity, action string, data any) error {
	if l == nil || l.Collection == nil {
		return nil
	}
	log := models.AuditLog{
		Timestamp:   time.Now(),
		Entity:      entity,
		Action:      action,
		PerformedBy: actorFrom(ctx),
		Data:        data,
	}
	_, err := l.Collection.InsertOne(ctx, log)
	return err
}
