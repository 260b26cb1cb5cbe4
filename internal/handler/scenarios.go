package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cardwise/cardwise/internal/models"
)

// scenariosRequest carries the current financial state and the what-ifs
// to evaluate against it.
type scenariosRequest struct {
	Statement models.Statement  `json:"statement"`
	Scenarios []models.Scenario `json:"scenarios"`
}

// HandleScenarios simulates spending and saving scenarios against the
// provided statement.
func (d *Dependencies) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	var req scenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid scenarios request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Scenarios) == 0 {
		WriteError(w, http.StatusBadRequest, "No scenarios provided")
		return
	}

	results := d.Simulator.SimulateScenarios(req.Statement, req.Scenarios)
	slog.Info("simulated scenarios", "count", len(results))

	WriteJSON(w, http.StatusOK, results)
}
