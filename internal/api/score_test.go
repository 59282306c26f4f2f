package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoreRequest(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	h := NewScoreHandler()
	buf, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	h.Score(rec, req)
	return rec
}

func TestScoreEndpointFullMatch(t *testing.T) {
	rec := scoreRequest(t, map[string]interface{}{
		"worker": map[string]interface{}{
			"id":              "w-1",
			"skills":          []string{"rigging", "lighting"},
			"rating":          5.0,
			"location":        "NYC",
			"available_dates": []string{"2024-11-01"},
		},
		"shift": map[string]interface{}{
			"id":              "sh-1",
			"required_skills": []string{"rigging", "lighting"},
			"start_time":      "2024-11-01T09:00:00Z",
			"end_time":        "2024-11-01T17:00:00Z",
			"location":        "NYC",
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ScoreResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 105, resp.Score)
	assert.Equal(t, []string{"All required skills matched", "Top-rated crew member", "Same location"}, resp.Reasons)
}

func TestScoreEndpointDefaultsRating(t *testing.T) {
	// No rating supplied: the boundary default of 3 applies, worth 9 of
	// the 15 rating points.
	rec := scoreRequest(t, map[string]interface{}{
		"worker": map[string]interface{}{
			"id":              "w-1",
			"available_dates": []string{"2024-11-01"},
		},
		"shift": map[string]interface{}{
			"id":         "sh-1",
			"start_time": "2024-11-01T09:00:00Z",
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ScoreResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// 50 base + 15 open shift + 9 rating + 10 location (both empty).
	assert.Equal(t, 84, resp.Score)
}

func TestScoreEndpointUnavailableWorker(t *testing.T) {
	rec := scoreRequest(t, map[string]interface{}{
		"worker": map[string]interface{}{
			"id":              "w-1",
			"skills":          []string{"rigging"},
			"rating":          5.0,
			"available_dates": []string{"2024-11-02"},
		},
		"shift": map[string]interface{}{
			"id":              "sh-1",
			"required_skills": []string{"rigging"},
			"start_time":      "2024-11-01T09:00:00Z",
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ScoreResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Score)
}

func TestScoreEndpointValidation(t *testing.T) {
	rec := scoreRequest(t, map[string]interface{}{
		"worker": map[string]interface{}{"id": "w-1"},
		"shift":  map[string]interface{}{"id": "sh-1"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "shift without start_time must fail validation")
}

func TestScoreEndpointBadJSON(t *testing.T) {
	h := NewScoreHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Score(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
