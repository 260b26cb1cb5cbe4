package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardwise/cardwise/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHandleListStatements_Success(t *testing.T) {
	mockDb := &MockDatabaseClient{}
	deps := &Dependencies{Database: mockDb}

	mockDb.ListStatementsFunc = func(ctx context.Context) ([]models.StatementRecord, error) {
		return []models.StatementRecord{
			{ID: "a", Filename: "jan.txt", Source: "text"},
			{ID: "b", Filename: "feb.csv", Source: "csv"},
		}, nil
	}

	w := httptest.NewRecorder()
	deps.HandleListStatements(w, httptest.NewRequest(http.MethodGet, "/api/statements", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Statements []models.StatementRecord `json:"statements"`
		Count      int                      `json:"count"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "jan.txt", resp.Statements[0].Filename)
}

func TestHandleListStatements_Empty(t *testing.T) {
	mockDb := &MockDatabaseClient{}
	deps := &Dependencies{Database: mockDb}

	w := httptest.NewRecorder()
	deps.HandleListStatements(w, httptest.NewRequest(http.MethodGet, "/api/statements", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"statements":[]`)
}

func TestHandleListStatements_DatabaseError(t *testing.T) {
	mockDb := &MockDatabaseClient{}
	deps := &Dependencies{Database: mockDb}

	mockDb.ListStatementsFunc = func(ctx context.Context) ([]models.StatementRecord, error) {
		return nil, errors.New("table unavailable")
	}

	w := httptest.NewRecorder()
	deps.HandleListStatements(w, httptest.NewRequest(http.MethodGet, "/api/statements", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
