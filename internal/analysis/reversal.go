package analysis

import (
	"github.com/gapwatch/gapwatch/internal/domain"
)

// ReversalAnalyzer classifies decision pairs and aggregates reversal
// statistics. Every method is a pure function of currently stored data,
// recomputed per call.
type ReversalAnalyzer struct {
	store   domain.DecisionStore
	pairing *PairingEngine
	scorer  InterventionScorer
}

func NewReversalAnalyzer(store domain.DecisionStore, scorer InterventionScorer) *ReversalAnalyzer {
	return &ReversalAnalyzer{
		store:   store,
		pairing: NewPairingEngine(store),
		scorer:  scorer,
	}
}

// FindPairs exposes the underlying pairing for a scenario.
func (a *ReversalAnalyzer) FindPairs(scenarioID string) []domain.DecisionPair {
	return a.pairing.FindPairs(scenarioID)
}

// DetectReversals returns only the pairs whose choice changed between modes.
func (a *ReversalAnalyzer) DetectReversals(scenarioID string) []domain.DecisionPair {
	var reversals []domain.DecisionPair
	for _, pair := range a.pairing.FindPairs(scenarioID) {
		if pair.IsReversal() {
			reversals = append(reversals, pair)
		}
	}
	return reversals
}

// ReversalDirection classifies a reversed pair by comparing intervention
// scores of the two choices: action lower is CONSERVATIVE, higher is
// PERMISSIVE, equal is LATERAL. Non-reversals are NONE.
func (a *ReversalAnalyzer) ReversalDirection(pair domain.DecisionPair) domain.ReversalDirection {
	if !pair.IsReversal() {
		return domain.DirectionNone
	}

	theoryScore := a.scorer.Score(pair.TheoryDecision.Choice)
	actionScore := a.scorer.Score(pair.ActionDecision.Choice)

	switch {
	case actionScore < theoryScore:
		return domain.DirectionConservative
	case actionScore > theoryScore:
		return domain.DirectionPermissive
	default:
		return domain.DirectionLateral
	}
}

// ReversalRate is reversed pairs over total pairs for the scenario.
// 0.0 when the scenario has no pairs.
func (a *ReversalAnalyzer) ReversalRate(scenarioID string) float64 {
	pairs := a.pairing.FindPairs(scenarioID)
	if len(pairs) == 0 {
		return 0.0
	}
	reversals := 0
	for _, pair := range pairs {
		if pair.IsReversal() {
			reversals++
		}
	}
	return float64(reversals) / float64(len(pairs))
}

// OverallReversalRate pools pairs across every known scenario.
func (a *ReversalAnalyzer) OverallReversalRate() float64 {
	totalPairs := 0
	totalReversals := 0
	for _, scenarioID := range a.store.AllScenarioIDs() {
		for _, pair := range a.pairing.FindPairs(scenarioID) {
			totalPairs++
			if pair.IsReversal() {
				totalReversals++
			}
		}
	}
	if totalPairs == 0 {
		return 0.0
	}
	return float64(totalReversals) / float64(totalPairs)
}

// ModelReversalRate pools a single model's pairs across every scenario.
func (a *ReversalAnalyzer) ModelReversalRate(modelName string) float64 {
	totalPairs := 0
	totalReversals := 0
	for _, scenarioID := range a.store.AllScenarioIDs() {
		for _, pair := range a.pairing.FindPairs(scenarioID) {
			if pair.ModelName != modelName {
				continue
			}
			totalPairs++
			if pair.IsReversal() {
				totalReversals++
			}
		}
	}
	if totalPairs == 0 {
		return 0.0
	}
	return float64(totalReversals) / float64(totalPairs)
}

// ReversalDirectionCounts tallies reversed pairs by direction for a
// scenario. NONE never appears since only reversed pairs are counted.
func (a *ReversalAnalyzer) ReversalDirectionCounts(scenarioID string) map[domain.ReversalDirection]int {
	counts := make(map[domain.ReversalDirection]int)
	for _, pair := range a.DetectReversals(scenarioID) {
		counts[a.ReversalDirection(pair)]++
	}
	return counts
}

// AverageConfidenceDrop is the mean confidence drop over all pairs for the
// scenario, reversed or not. 0.0 when there are no pairs.
func (a *ReversalAnalyzer) AverageConfidenceDrop(scenarioID string) float64 {
	pairs := a.pairing.FindPairs(scenarioID)
	if len(pairs) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, pair := range pairs {
		sum += pair.ConfidenceDrop()
	}
	return sum / float64(len(pairs))
}

// OverallAverageConfidenceDrop is the mean over every pair in the store.
func (a *ReversalAnalyzer) OverallAverageConfidenceDrop() float64 {
	sum := 0.0
	count := 0
	for _, scenarioID := range a.store.AllScenarioIDs() {
		for _, pair := range a.pairing.FindPairs(scenarioID) {
			sum += pair.ConfidenceDrop()
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}
