package analysis

import (
	"github.com/gapwatch/gapwatch/internal/domain"
)

// PairingEngine joins each model's theory and action decision for a scenario
// into a DecisionPair.
type PairingEngine struct {
	store domain.DecisionStore
}

func NewPairingEngine(store domain.DecisionStore) *PairingEngine {
	return &PairingEngine{store: store}
}

// FindPairs returns one pair per model that recorded decisions in both modes
// for the scenario. A model with only a theory or only an action decision
// contributes no pair: partial data is silently dropped, not reported as
// missing, so such a model is invisible to every downstream statistic.
// Callers that need visibility into one-sided data must inspect the raw
// per-scenario decision lists themselves.
func (e *PairingEngine) FindPairs(scenarioID string) []domain.DecisionPair {
	models := make(map[string]struct{})
	for _, rec := range e.store.FindByScenario(scenarioID) {
		models[rec.ModelName] = struct{}{}
	}

	var pairs []domain.DecisionPair
	for model := range models {
		theory, okT := e.store.FindByScenarioModelMode(scenarioID, model, domain.ModeTheory)
		action, okA := e.store.FindByScenarioModelMode(scenarioID, model, domain.ModeAction)
		if !okT || !okA {
			continue
		}
		pairs = append(pairs, domain.DecisionPair{
			ScenarioID:     scenarioID,
			ModelName:      model,
			TheoryDecision: theory,
			ActionDecision: action,
		})
	}
	return pairs
}
