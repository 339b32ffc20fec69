package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"books-explorer/internal/models"
	"books-explorer/internal/utils"
)

type LogExporter struct {
	Coll     *mongo.Collection
	Logger   *slog.Logger
	Interval time.Duration
}

// Run exports pending audit records every Interval until ctx is cancelled.
func (l *LogExporter) Run(ctx context.Context) {
	interval := l.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if n, err := l.ExportOnce(ctx); err != nil {
			l.Logger.Error("audit export failed", slog.Any("error", err))
		} else if n > 0 {
			l.Logger.Debug("audit records exported", slog.Int("count", n))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ExportOnce ships every unexported audit record and flags it as exported.
func (l *LogExporter) ExportOnce(ctx context.Context) (int, error) {
	cursor, err := l.Coll.Find(ctx, bson.M{"exported": false})
	if err != nil {
		return 0, fmt.Errorf("find pending audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		return 0, fmt.Errorf("decode audit logs: %w", err)
	}
	if len(logs) == 0 {
		return 0, nil
	}

	if err := utils.ExportData(l.Logger, logs); err != nil {
		return 0, fmt.Errorf("export audit logs: %w", err)
	}

	updateIds := make([]primitive.ObjectID, 0, len(logs))
	for i := range logs {
		updateIds = append(updateIds, logs[i].ID)
	}

	_, err = l.Coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": updateIds}},
		bson.M{"$set": bson.M{"exported": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark audit logs exported: %w", err)
	}
	return len(logs), nil
}
