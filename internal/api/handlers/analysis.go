package handlers

import (
	"net/http"

	"github.com/gapwatch/gapwatch/internal/domain"
	"github.com/gapwatch/gapwatch/internal/service"
	"github.com/go-chi/chi/v5"
)

// AnalysisHandler serves the reversal and consensus statistics. Absence of
// data is never an error here: empty scenarios produce zero rates and empty
// lists, mirroring the analyzers themselves.
type AnalysisHandler struct {
	svc *service.MonitorService
}

func NewAnalysisHandler(svc *service.MonitorService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

func (h *AnalysisHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"scenario_ids": h.svc.ScenarioIDs()})
}

func (h *AnalysisHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"model_names": h.svc.ModelNames()})
}

func (h *AnalysisHandler) ScenarioDecisions(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "id")

	var decisions []*domain.DecisionRecord
	if mode := r.URL.Query().Get("mode"); mode != "" {
		if !domain.ValidDecisionMode(mode) {
			writeError(w, http.StatusBadRequest, "mode must be THEORY or ACTION")
			return
		}
		decisions = h.svc.ScenarioDecisionsByMode(scenarioID, domain.DecisionMode(mode))
	} else {
		decisions = h.svc.ScenarioDecisions(scenarioID)
	}

	writeJSON(w, http.StatusOK, listResponse{
		Decisions: decisions,
		Count:     len(decisions),
	})
}

func (h *AnalysisHandler) ModelDecisions(w http.ResponseWriter, r *http.Request) {
	decisions := h.svc.ModelDecisions(chi.URLParam(r, "name"))
	writeJSON(w, http.StatusOK, listResponse{
		Decisions: decisions,
		Count:     len(decisions),
	})
}

type reversalsResponse struct {
	ScenarioID string                `json:"scenario_id"`
	Reversals  []domain.DecisionPair `json:"reversals"`
	Count      int                   `json:"count"`
}

func (h *AnalysisHandler) ScenarioReversals(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "id")
	reversals := h.svc.AnalyzeReversals(scenarioID)
	if reversals == nil {
		reversals = []domain.DecisionPair{}
	}

	writeJSON(w, http.StatusOK, reversalsResponse{
		ScenarioID: scenarioID,
		Reversals:  reversals,
		Count:      len(reversals),
	})
}

func (h *AnalysisHandler) ScenarioConsensus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CheckConsensus(chi.URLParam(r, "id")))
}

type scenarioStatsResponse struct {
	ScenarioID            string                           `json:"scenario_id"`
	ReversalRate          float64                          `json:"reversal_rate"`
	DirectionCounts       map[domain.ReversalDirection]int `json:"direction_counts"`
	AverageConfidenceDrop float64                          `json:"average_confidence_drop"`
}

func (h *AnalysisHandler) ScenarioStats(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "id")

	writeJSON(w, http.StatusOK, scenarioStatsResponse{
		ScenarioID:            scenarioID,
		ReversalRate:          h.svc.ReversalRate(scenarioID),
		DirectionCounts:       h.svc.ReversalDirectionCounts(scenarioID),
		AverageConfidenceDrop: h.svc.AverageConfidenceDrop(scenarioID),
	})
}

type modelStatsResponse struct {
	ModelName    string  `json:"model_name"`
	ReversalRate float64 `json:"reversal_rate"`
}

func (h *AnalysisHandler) ModelStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	writeJSON(w, http.StatusOK, modelStatsResponse{
		ModelName:    name,
		ReversalRate: h.svc.ModelReversalRate(name),
	})
}

type overallStatsResponse struct {
	DecisionCount         int     `json:"decision_count"`
	OverallReversalRate   float64 `json:"overall_reversal_rate"`
	AverageConfidenceDrop float64 `json:"average_confidence_drop"`
	ConsensusCollapseRate float64 `json:"consensus_collapse_rate"`
}

func (h *AnalysisHandler) OverallStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, overallStatsResponse{
		DecisionCount:         h.svc.Count(),
		OverallReversalRate:   h.svc.OverallReversalRate(),
		AverageConfidenceDrop: h.svc.OverallAverageConfidenceDrop(),
		ConsensusCollapseRate: h.svc.ConsensusCollapseRate(),
	})
}
