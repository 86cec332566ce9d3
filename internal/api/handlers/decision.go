package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gapwatch/gapwatch/internal/domain"
	"github.com/gapwatch/gapwatch/internal/service"
	"github.com/go-chi/chi/v5"
)

type DecisionHandler struct {
	svc *service.MonitorService
}

func NewDecisionHandler(svc *service.MonitorService) *DecisionHandler {
	return &DecisionHandler{svc: svc}
}

type recordDecisionRequest struct {
	ScenarioID string         `json:"scenario_id"`
	ModelName  string         `json:"model_name"`
	Mode       string         `json:"mode"`
	Choice     string         `json:"choice"`
	Reasoning  string         `json:"reasoning,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func (h *DecisionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := &domain.DecisionRecord{
		ScenarioID: req.ScenarioID,
		ModelName:  req.ModelName,
		Mode:       domain.DecisionMode(req.Mode),
		Choice:     req.Choice,
		Reasoning:  req.Reasoning,
		Confidence: req.Confidence,
		Metadata:   req.Metadata,
	}

	if err := h.svc.Record(rec); err != nil {
		switch {
		case errors.Is(err, service.ErrScenarioIDMissing),
			errors.Is(err, service.ErrModelNameMissing),
			errors.Is(err, service.ErrInvalidMode):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to record decision")
		}
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *DecisionHandler) List(w http.ResponseWriter, r *http.Request) {
	decisions := h.svc.Decisions()
	writeJSON(w, http.StatusOK, listResponse{
		Decisions: decisions,
		Count:     len(decisions),
	})
}

func (h *DecisionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := h.svc.Decision(id)
	if !ok {
		writeError(w, http.StatusNotFound, "decision not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Clear wipes all recorded decisions. Meant for test harness resets between
// scenario runs.
func (h *DecisionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type listResponse struct {
	Decisions []*domain.DecisionRecord `json:"decisions"`
	Count     int                      `json:"count"`
}
