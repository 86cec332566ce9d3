package service

import (
	"errors"
	"time"

	"github.com/gapwatch/gapwatch/internal/analysis"
	"github.com/gapwatch/gapwatch/internal/domain"
	"github.com/gapwatch/gapwatch/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrScenarioIDMissing = errors.New("scenario_id is required")
	ErrModelNameMissing  = errors.New("model_name is required")
	ErrInvalidMode       = errors.New("mode must be THEORY or ACTION")
)

// MonitorService is the entry point for recording decisions and analyzing
// the judgment-action gap. Upstream collaborators derive a choice label and
// confidence score from the model's response before calling RecordDecision;
// the service never parses free text.
type MonitorService struct {
	store     domain.DecisionStore
	reversals *analysis.ReversalAnalyzer
	consensus *analysis.ConsensusAnalyzer
	logger    *zap.Logger
}

func NewMonitorService(store domain.DecisionStore, reversals *analysis.ReversalAnalyzer, consensus *analysis.ConsensusAnalyzer, logger *zap.Logger) *MonitorService {
	return &MonitorService{
		store:     store,
		reversals: reversals,
		consensus: consensus,
		logger:    logger,
	}
}

// RecordDecision stores one decision made by a model for a scenario in a
// mode. Confidence is optional (conventionally 0-10, not range-enforced);
// choice and reasoning are stored opaquely.
func (s *MonitorService) RecordDecision(scenarioID, modelName string, mode domain.DecisionMode, choice, reasoning string, confidence *float64) (*domain.DecisionRecord, error) {
	if scenarioID == "" {
		return nil, ErrScenarioIDMissing
	}
	if modelName == "" {
		return nil, ErrModelNameMissing
	}
	if !domain.ValidDecisionMode(string(mode)) {
		return nil, ErrInvalidMode
	}

	rec := &domain.DecisionRecord{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		ScenarioID: scenarioID,
		ModelName:  modelName,
		Mode:       mode,
		Choice:     choice,
		Reasoning:  reasoning,
		Confidence: confidence,
	}

	if err := s.store.Save(rec); err != nil {
		return nil, err
	}

	s.logger.Info("recorded decision",
		zap.String("decision_id", rec.ID),
		zap.String("scenario_id", scenarioID),
		zap.String("model_name", modelName),
		zap.String("mode", string(mode)),
		zap.String("choice", choice),
	)

	return rec, nil
}

// Record stores a pre-built record, e.g. one carrying metadata. An empty id
// is assigned; an empty timestamp is set to now.
func (s *MonitorService) Record(rec *domain.DecisionRecord) error {
	if rec == nil {
		return store.ErrInvalidRecord
	}
	if rec.ScenarioID == "" {
		return ErrScenarioIDMissing
	}
	if rec.ModelName == "" {
		return ErrModelNameMissing
	}
	if !domain.ValidDecisionMode(string(rec.Mode)) {
		return ErrInvalidMode
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return s.store.Save(rec)
}

// AnalyzeReversals returns the pairs whose choice flipped between theory and
// action mode for the scenario.
func (s *MonitorService) AnalyzeReversals(scenarioID string) []domain.DecisionPair {
	reversals := s.reversals.DetectReversals(scenarioID)

	if len(reversals) > 0 {
		s.logger.Info("reversals detected",
			zap.String("scenario_id", scenarioID),
			zap.Int("reversals", len(reversals)),
			zap.Float64("reversal_rate", s.reversals.ReversalRate(scenarioID)),
		)
	}

	return reversals
}

// CheckConsensus compares theory and action consensus for a scenario.
func (s *MonitorService) CheckConsensus(scenarioID string) domain.ConsensusComparison {
	comparison := s.consensus.CompareConsensus(scenarioID)

	if comparison.ConsensusCollapsed {
		s.logger.Warn("consensus collapse",
			zap.String("scenario_id", scenarioID),
			zap.Float64("theory_consensus", comparison.TheoryConsensus.ConsensusPercentage),
			zap.Float64("action_consensus", comparison.ActionConsensus.ConsensusPercentage),
		)
	}

	return comparison
}

func (s *MonitorService) ReversalRate(scenarioID string) float64 {
	return s.reversals.ReversalRate(scenarioID)
}

func (s *MonitorService) OverallReversalRate() float64 {
	return s.reversals.OverallReversalRate()
}

func (s *MonitorService) ModelReversalRate(modelName string) float64 {
	return s.reversals.ModelReversalRate(modelName)
}

func (s *MonitorService) ReversalDirectionCounts(scenarioID string) map[domain.ReversalDirection]int {
	return s.reversals.ReversalDirectionCounts(scenarioID)
}

func (s *MonitorService) AverageConfidenceDrop(scenarioID string) float64 {
	return s.reversals.AverageConfidenceDrop(scenarioID)
}

func (s *MonitorService) OverallAverageConfidenceDrop() float64 {
	return s.reversals.OverallAverageConfidenceDrop()
}

func (s *MonitorService) ConsensusCollapseRate() float64 {
	return s.consensus.CollapseRate()
}

func (s *MonitorService) Decision(id string) (*domain.DecisionRecord, bool) {
	return s.store.FindByID(id)
}

func (s *MonitorService) Decisions() []*domain.DecisionRecord {
	return s.store.FindAll()
}

func (s *MonitorService) ScenarioDecisions(scenarioID string) []*domain.DecisionRecord {
	return s.store.FindByScenario(scenarioID)
}

func (s *MonitorService) ScenarioDecisionsByMode(scenarioID string, mode domain.DecisionMode) []*domain.DecisionRecord {
	return s.store.FindByScenarioAndMode(scenarioID, mode)
}

func (s *MonitorService) ModelDecisions(modelName string) []*domain.DecisionRecord {
	return s.store.FindByModel(modelName)
}

func (s *MonitorService) ScenarioIDs() []string {
	return s.store.AllScenarioIDs()
}

func (s *MonitorService) ModelNames() []string {
	return s.store.AllModelNames()
}

func (s *MonitorService) Count() int {
	return s.store.Count()
}

// Clear wipes all recorded decisions.
func (s *MonitorService) Clear() {
	s.store.Clear()
	s.logger.Info("monitor cleared")
}
