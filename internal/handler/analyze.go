package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cardwise/cardwise/internal/insights"
	"github.com/cardwise/cardwise/internal/statement"
)

// analyzeRequest carries raw statement text for synchronous analysis.
type analyzeRequest struct {
	Text string `json:"text"`
}

// analyzeResponse pairs the extraction result with its report.
type analyzeResponse struct {
	Result statement.ParseResult `json:"result"`
	Report insights.Report       `json:"report"`
}

// HandleAnalyze parses free-form statement text and returns the normalized
// statement with the derived report. Parsing never fails; degenerate input
// yields a mostly-missing record.
func (d *Dependencies) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid analyze request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := statement.ParseText(req.Text)
	slog.Info("analyzed statement text",
		"resolved_fields", len(result.Resolved),
		"derived_fields", len(result.Derived),
		"missing_fields", len(result.Missing),
	)

	WriteJSON(w, http.StatusOK, analyzeResponse{
		Result: result,
		Report: d.Analyzer.BuildReport(result.Statement),
	})
}
