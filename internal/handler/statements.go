package handler

import (
	"log/slog"
	"net/http"

	"github.com/cardwise/cardwise/internal/models"
)

// HandleListStatements returns every stored statement record.
func (d *Dependencies) HandleListStatements(w http.ResponseWriter, r *http.Request) {
	records, err := d.Database.ListStatements(r.Context())
	if err != nil {
		slog.Error("failed to list statements", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list statements")
		return
	}
	if records == nil {
		records = []models.StatementRecord{}
	}
	slog.Info("listed statements", "count", len(records))

	WriteJSON(w, http.StatusOK, map[string]any{
		"statements": records,
		"count":      len(records),
	})
}
