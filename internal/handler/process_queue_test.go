package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardwise/cardwise/internal/insights"
	"github.com/cardwise/cardwise/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func queueRequest(t *testing.T, blobName, filename string) *http.Request {
	t.Helper()
	item, _ := json.Marshal(map[string]string{"blob_name": blobName, "filename": filename})
	payload := map[string]any{
		"Data": map[string]any{
			"queueItem": string(item),
		},
	}
	body, _ := json.Marshal(payload)
	return httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(body))
}

func TestProcessQueue_CSVExport(t *testing.T) {
	t.Setenv("USER_EMAIL", "user@example.com")

	mockDb := &MockDatabaseClient{}
	mockBlob := &MockBlobClient{}
	mockEmail := &MockEmailClient{}
	deps := &Dependencies{
		Database: mockDb,
		Blob:     mockBlob,
		Email:    mockEmail,
		Analyzer: insights.NewAnalyzer(),
	}

	blobContent := "Date,Merchant,Amount\n" +
		"01/15/2024,Starbucks,-5.50\n" +
		"01/16/2024,Shell Gas,-40.00\n"
	mockBlob.DownloadTextFunc = func(ctx context.Context, containerName, blobName string) (string, error) {
		assert.Equal(t, DataContainer, containerName)
		assert.Equal(t, "uploads/20240115-export.csv", blobName)
		return blobContent, nil
	}

	var saved models.StatementRecord
	mockDb.SaveStatementFunc = func(ctx context.Context, record models.StatementRecord) error {
		saved = record
		return nil
	}

	emailSent := false
	mockEmail.SendEmailFunc = func(ctx context.Context, to []string, subject, body string) error {
		emailSent = true
		assert.Equal(t, []string{"user@example.com"}, to)
		assert.Contains(t, subject, "export.csv")
		assert.Contains(t, body, "Dining & Restaurants")
		return nil
	}

	w := httptest.NewRecorder()
	deps.ProcessQueue(w, queueRequest(t, "uploads/20240115-export.csv", "export.csv"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, emailSent)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "csv", saved.Source)
	assert.Equal(t, "export.csv", saved.Filename)
	assert.True(t, saved.Statement.NewCharges.Equal(decimal.NewFromFloat(45.50)))
	assert.True(t, saved.Statement.SpendingCategories["Dining & Restaurants"].Equal(decimal.NewFromFloat(5.50)))
	assert.True(t, saved.Statement.SpendingCategories["Gas & Auto"].Equal(decimal.NewFromFloat(40.00)))
}

func TestProcessQueue_StatementText(t *testing.T) {
	t.Setenv("USER_EMAIL", "user@example.com")

	mockDb := &MockDatabaseClient{}
	mockBlob := &MockBlobClient{}
	mockEmail := &MockEmailClient{}
	deps := &Dependencies{
		Database: mockDb,
		Blob:     mockBlob,
		Email:    mockEmail,
		Analyzer: insights.NewAnalyzer(),
	}

	mockBlob.DownloadTextFunc = func(ctx context.Context, containerName, blobName string) (string, error) {
		return "Previous Balance: $1,000.00\nNew Balance: $1,200.00\nMinimum Payment Due: $35.00", nil
	}

	var saved models.StatementRecord
	mockDb.SaveStatementFunc = func(ctx context.Context, record models.StatementRecord) error {
		saved = record
		return nil
	}

	w := httptest.NewRecorder()
	deps.ProcessQueue(w, queueRequest(t, "uploads/20240115-statement.txt", "statement.txt"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text", saved.Source)
	assert.True(t, saved.Statement.CurrentBalance.Equal(decimal.NewFromFloat(1200)))
	assert.True(t, saved.Statement.MinimumPayment.Equal(decimal.NewFromFloat(35)))
}

func TestProcessQueue_EmailFailureStillConsumes(t *testing.T) {
	t.Setenv("USER_EMAIL", "user@example.com")

	mockDb := &MockDatabaseClient{}
	mockBlob := &MockBlobClient{}
	mockEmail := &MockEmailClient{}
	deps := &Dependencies{
		Database: mockDb,
		Blob:     mockBlob,
		Email:    mockEmail,
		Analyzer: insights.NewAnalyzer(),
	}

	mockBlob.DownloadTextFunc = func(ctx context.Context, containerName, blobName string) (string, error) {
		return "Current Balance: $500.00", nil
	}
	mockEmail.SendEmailFunc = func(ctx context.Context, to []string, subject, body string) error {
		return errors.New("email failed")
	}

	w := httptest.NewRecorder()
	deps.ProcessQueue(w, queueRequest(t, "uploads/x.txt", "x.txt"))

	// Email failures are logged, not fatal; the message is consumed.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProcessQueue_DownloadError(t *testing.T) {
	mockBlob := &MockBlobClient{}
	deps := &Dependencies{Blob: mockBlob}

	mockBlob.DownloadTextFunc = func(ctx context.Context, containerName, blobName string) (string, error) {
		return "", errors.New("download failed")
	}

	w := httptest.NewRecorder()
	deps.ProcessQueue(w, queueRequest(t, "uploads/x.txt", "x.txt"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to download statement")
}

func TestProcessQueue_SaveError(t *testing.T) {
	mockDb := &MockDatabaseClient{}
	mockBlob := &MockBlobClient{}
	deps := &Dependencies{Database: mockDb, Blob: mockBlob}

	mockBlob.DownloadTextFunc = func(ctx context.Context, containerName, blobName string) (string, error) {
		return "Current Balance: $500.00", nil
	}
	mockDb.SaveStatementFunc = func(ctx context.Context, record models.StatementRecord) error {
		return errors.New("table unavailable")
	}

	w := httptest.NewRecorder()
	deps.ProcessQueue(w, queueRequest(t, "uploads/x.txt", "x.txt"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to save statement")
}

func TestProcessQueue_InvalidBody(t *testing.T) {
	deps := &Dependencies{}

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessQueue_MissingBlobName(t *testing.T) {
	deps := &Dependencies{}

	payload := map[string]any{
		"Data": map[string]any{
			"queueItem": `{}`,
		},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	deps.ProcessQueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
