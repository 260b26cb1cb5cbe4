package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cardwise/cardwise/internal/categorize"
	"github.com/cardwise/cardwise/internal/csvparse"
	"github.com/cardwise/cardwise/internal/models"
	"github.com/cardwise/cardwise/internal/services"
	"github.com/cardwise/cardwise/internal/statement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invokeRequest represents the payload from Azure Functions Custom Handler.
type invokeRequest struct {
	Data     map[string]any `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// ProcessQueue handles the queue trigger for processing uploaded
// statements. CSV exports are parsed into transactions and categorized;
// anything else is treated as free-form statement text.
func (d *Dependencies) ProcessQueue(w http.ResponseWriter, r *http.Request) {
	var invokeReq invokeRequest
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read queue request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := json.Unmarshal(bodyBytes, &invokeReq); err != nil {
		slog.Error("failed to unmarshal queue request", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to unmarshal request")
		return
	}

	queueItemVal, ok := invokeReq.Data["queueItem"]
	if !ok {
		queueItemVal, ok = invokeReq.Data["queueitem"]
		if !ok {
			WriteError(w, http.StatusBadRequest, "Missing queueItem in Data")
			return
		}
	}

	queueItemStr, ok := queueItemVal.(string)
	if !ok {
		WriteError(w, http.StatusBadRequest, "queueItem is not a string")
		return
	}

	var queueData map[string]string
	if err := json.Unmarshal([]byte(queueItemStr), &queueData); err != nil {
		slog.Error("failed to unmarshal queueItem", "error", err)
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid queueItem JSON: %v", err))
		return
	}

	blobName := queueData["blob_name"]
	if blobName == "" {
		slog.Warn("queue message missing blob_name", "queue_data", queueData)
		WriteError(w, http.StatusBadRequest, "Missing blob_name")
		return
	}
	filename := queueData["filename"]

	slog.Info("processing queue item", "blob_name", blobName, "filename", filename)

	content, err := d.Blob.DownloadText(r.Context(), DataContainer, blobName)
	if err != nil {
		slog.Error("failed to download statement blob", "blob_name", blobName, "container", DataContainer, "error", err)
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to download statement: %v", err))
		return
	}

	var (
		stmt    models.Statement
		source  string
		rows    int
		skipped int
	)

	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		source = "csv"
		transactions := csvparse.ParseTransactions(content)
		rows = dataRowCount(content)
		skipped = rows - len(transactions)

		stmt.SpendingCategories = categorize.Totals(transactions)
		stmt.NewCharges = chargeTotal(transactions)
		slog.Info("parsed transaction export",
			"blob_name", blobName,
			"row_count", rows,
			"parsed_count", len(transactions),
			"skipped_count", skipped,
		)
	} else {
		source = "text"
		result := statement.ParseText(content)
		stmt = result.Statement
		slog.Info("parsed statement text",
			"blob_name", blobName,
			"resolved_fields", len(result.Resolved),
			"derived_fields", len(result.Derived),
		)
	}

	record := models.StatementRecord{
		ID:         uuid.New().String(),
		Filename:   filename,
		Source:     source,
		Statement:  stmt,
		ImportedAt: time.Now().Format(time.RFC3339),
	}

	if err := d.Database.SaveStatement(r.Context(), record); err != nil {
		slog.Error("failed to save statement record", "id", record.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save statement: %v", err))
		return
	}
	slog.Info("saved statement record", "id", record.ID, "source", source)

	d.sendReportEmail(r, record, rows, skipped)

	slog.Info("queue processing complete", "blob_name", blobName, "statement_id", record.ID)
	w.WriteHeader(http.StatusOK)
}

// chargeTotal sums the absolute value of charge rows (negative amounts in
// the source sign convention).
func chargeTotal(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Amount.IsNegative() {
			total = total.Add(t.Amount.Abs())
		}
	}
	return total
}

// sendReportEmail emails the statement report to the configured user.
// Email failures are logged, not fatal; processing already succeeded.
func (d *Dependencies) sendReportEmail(r *http.Request, record models.StatementRecord, rows, skipped int) {
	if d.Email == nil {
		return
	}
	userEmail := os.Getenv("USER_EMAIL")
	if userEmail == "" {
		slog.Warn("USER_EMAIL environment variable is not set; skipping report email")
		return
	}

	report := d.Analyzer.BuildReport(record.Statement)
	subject := fmt.Sprintf("Cardwise - Statement Report: %s", record.Filename)
	body := services.RenderReportBody(record, report, rows, skipped)

	if err := d.Email.SendEmail(r.Context(), []string{userEmail}, subject, body); err != nil {
		slog.Error("failed to send report email", "statement_id", record.ID, "email", userEmail, "error", err)
		return
	}
	slog.Info("report email sent", "statement_id", record.ID, "email", userEmail)
}
