package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/crewware/roster/internal/scoring"
	"github.com/crewware/roster/internal/store"
)

type ScoreHandler struct {
	validate *validator.Validate
}

func NewScoreHandler() *ScoreHandler {
	return &ScoreHandler{validate: validator.New()}
}

type ScoreWorkerPayload struct {
	ID             string   `json:"id" validate:"required"`
	Skills         []string `json:"skills"`
	Rating         *float64 `json:"rating"`
	Location       string   `json:"location"`
	AvailableDates []string `json:"available_dates"`
}

type ScoreShiftPayload struct {
	ID             string    `json:"id" validate:"required"`
	RequiredSkills []string  `json:"required_skills"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time"`
	Location       string    `json:"location"`
}

type ScoreRequest struct {
	Worker ScoreWorkerPayload `json:"worker" validate:"required"`
	Shift  ScoreShiftPayload  `json:"shift" validate:"required"`
}

type ScoreResponse struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Score handles POST /api/v1/score — scores one worker against one
// shift without persisting anything. Missing ratings default here,
// at the boundary.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rating := float64(store.DefaultRating)
	if req.Worker.Rating != nil {
		rating = *req.Worker.Rating
	}

	worker := &store.Worker{
		ID:             req.Worker.ID,
		Skills:         req.Worker.Skills,
		Rating:         rating,
		Location:       req.Worker.Location,
		AvailableDates: req.Worker.AvailableDates,
	}
	shift := &store.Shift{
		ID:             req.Shift.ID,
		RequiredSkills: req.Shift.RequiredSkills,
		StartTime:      req.Shift.StartTime,
		EndTime:        req.Shift.EndTime,
		Location:       req.Shift.Location,
	}

	index := scoring.BuildAvailabilityIndex([]*store.Worker{worker})
	scorer := scoring.NewScorer(index)
	score, reasons := scorer.Score(worker, shift)
	if reasons == nil {
		reasons = []string{}
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Score: score, Reasons: reasons})
}
