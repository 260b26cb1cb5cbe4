package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cardwise/cardwise/internal/categorize"
	"github.com/cardwise/cardwise/internal/csvparse"
	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
)

// categorizeResponse reports parsed transactions and their category
// totals. The parser drops malformed rows silently, so the handler
// instruments its own pre/post counts for callers that care.
type categorizeResponse struct {
	Transactions []models.Transaction       `json:"transactions"`
	Totals       map[string]decimal.Decimal `json:"category_totals"`
	RowCount     int                        `json:"row_count"`
	ParsedCount  int                        `json:"parsed_count"`
	SkippedCount int                        `json:"skipped_count"`
}

// HandleCategorize parses a delimited transaction export from the request
// body and returns categorized totals.
func (d *Dependencies) HandleCategorize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Warn("failed to read categorize request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	content := string(body)
	transactions := csvparse.ParseTransactions(content)
	totals := categorize.Totals(transactions)

	rows := dataRowCount(content)
	slog.Info("categorized transactions",
		"row_count", rows,
		"parsed_count", len(transactions),
		"category_count", len(totals),
	)

	WriteJSON(w, http.StatusOK, categorizeResponse{
		Transactions: transactions,
		Totals:       totals,
		RowCount:     rows,
		ParsedCount:  len(transactions),
		SkippedCount: rows - len(transactions),
	})
}

// dataRowCount counts non-blank data lines (header excluded).
func dataRowCount(content string) int {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return 0
	}
	count := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
