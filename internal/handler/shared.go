package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cardwise/cardwise/internal/insights"
	"github.com/cardwise/cardwise/internal/payoff"
)

// Dependencies holds the services required by the handlers.
type Dependencies struct {
	Database  DatabaseClient
	Blob      BlobClient
	Queue     QueueClient
	Email     EmailClient
	Analyzer  *insights.Analyzer
	Simulator *payoff.Simulator
}

// NewDependencies wires the default analyzer and simulator around the
// provided service clients.
func NewDependencies(db DatabaseClient, blob BlobClient, queue QueueClient, email EmailClient) *Dependencies {
	return &Dependencies{
		Database:  db,
		Blob:      blob,
		Queue:     queue,
		Email:     email,
		Analyzer:  insights.NewAnalyzer(),
		Simulator: payoff.NewSimulator(),
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
