package utils

import (
	"log/slog"

	"books-explorer/internal/models"
)

// ExportData ships audit records to the structured log sink.
func ExportData(logger *slog.Logger, logs []models.AuditLog) error {
	for _, log := range logs {
		logger.Info("audit",
			slog.String("id", log.ID.Hex()),
			slog.Time("timestamp", log.Timestamp),
			slog.String("entity", log.Entity),
			slog.String("action", log.Action),
			slog.String("performed_by", log.PerformedBy),
			slog.Any("data", log.Data),
		)
	}
	return nil
}
