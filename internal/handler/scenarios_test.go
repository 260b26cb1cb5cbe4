package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleScenarios_Success(t *testing.T) {
	deps := newTestDeps()

	payload := map[string]any{
		"statement": map[string]any{
			"current_balance": 2000,
			"interest_rate":   0.18,
		},
		"scenarios": []map[string]any{
			{"name": "Save $100", "monthly_change": -100, "duration_months": 12},
			{"name": "Spend $150", "monthly_change": 150, "duration_months": 12},
		},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	deps.HandleScenarios(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]struct {
		MonthlyChange      float64  `json:"monthly_change"`
		NewBalance         float64  `json:"new_balance"`
		InterestSaved      *float64 `json:"interest_saved,omitempty"`
		AdditionalInterest *float64 `json:"additional_interest,omitempty"`
		Summary            string   `json:"summary"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)

	saving := resp["Save $100"]
	assert.NotNil(t, saving.InterestSaved)
	assert.Nil(t, saving.AdditionalInterest)
	assert.InDelta(t, 800, saving.NewBalance, 0.001)

	spending := resp["Spend $150"]
	assert.NotNil(t, spending.AdditionalInterest)
	assert.Nil(t, spending.InterestSaved)
	assert.InDelta(t, 3800, spending.NewBalance, 0.001)
}

func TestHandleScenarios_NoScenarios(t *testing.T) {
	deps := newTestDeps()

	body, _ := json.Marshal(map[string]any{
		"statement": map[string]any{"current_balance": 2000},
		"scenarios": []any{},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	deps.HandleScenarios(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No scenarios provided")
}

func TestHandleScenarios_InvalidBody(t *testing.T) {
	deps := newTestDeps()

	req := httptest.NewRequest(http.MethodPost, "/api/scenarios", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()

	deps.HandleScenarios(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
