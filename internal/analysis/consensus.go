package analysis

import (
	"github.com/gapwatch/gapwatch/internal/domain"
)

// DefaultSupermajorityThreshold approximates 7 of 9 models agreeing.
const DefaultSupermajorityThreshold = 0.78

// ConsensusAnalyzer measures cross-model agreement per scenario and mode,
// and whether theory-mode agreement survives the shift to action mode.
type ConsensusAnalyzer struct {
	store     domain.DecisionStore
	threshold float64
}

// NewConsensusAnalyzer creates an analyzer with the given supermajority
// threshold. A threshold <= 0 falls back to the default.
func NewConsensusAnalyzer(store domain.DecisionStore, threshold float64) *ConsensusAnalyzer {
	if threshold <= 0 {
		threshold = DefaultSupermajorityThreshold
	}
	return &ConsensusAnalyzer{store: store, threshold: threshold}
}

// AnalyzeConsensus groups all decisions for (scenario, mode) by choice and
// reports the majority choice and its share. Ties on the majority count go
// to the lexicographically smallest choice label. The tie-break is
// deliberate: vote grouping is unordered, and an iteration-order-dependent
// winner would make repeated calls disagree with each other.
func (a *ConsensusAnalyzer) AnalyzeConsensus(scenarioID string, mode domain.DecisionMode) domain.ConsensusResult {
	decisions := a.store.FindByScenarioAndMode(scenarioID, mode)

	if len(decisions) == 0 {
		return domain.ConsensusResult{
			ScenarioID:          scenarioID,
			Mode:                mode,
			TotalModels:         0,
			ConsensusPercentage: 0.0,
			HasSupermajority:    false,
		}
	}

	counts := make(map[string]int, len(decisions))
	for _, rec := range decisions {
		counts[rec.Choice]++
	}

	majorityChoice := ""
	majorityCount := 0
	for choice, count := range counts {
		if count > majorityCount || (count == majorityCount && choice < majorityChoice) {
			majorityChoice = choice
			majorityCount = count
		}
	}

	total := len(decisions)
	percentage := float64(majorityCount) / float64(total)

	return domain.ConsensusResult{
		ScenarioID:          scenarioID,
		Mode:                mode,
		TotalModels:         total,
		MajorityChoice:      majorityChoice,
		MajorityCount:       majorityCount,
		ConsensusPercentage: percentage,
		HasSupermajority:    percentage >= a.threshold,
		ChoiceDistribution:  counts,
	}
}

// CompareConsensus computes both modes for a scenario. Collapse fires only
// when theory mode holds a supermajority and action mode does not; a
// scenario that gains agreement in action mode is never flagged.
func (a *ConsensusAnalyzer) CompareConsensus(scenarioID string) domain.ConsensusComparison {
	theory := a.AnalyzeConsensus(scenarioID, domain.ModeTheory)
	action := a.AnalyzeConsensus(scenarioID, domain.ModeAction)

	return domain.ConsensusComparison{
		ScenarioID:         scenarioID,
		TheoryConsensus:    theory,
		ActionConsensus:    action,
		ConsensusCollapsed: theory.HasSupermajority && !action.HasSupermajority,
	}
}

// CollapseRate is the fraction of all known scenarios whose consensus
// collapsed. 0.0 when no scenarios exist.
func (a *ConsensusAnalyzer) CollapseRate() float64 {
	scenarios := a.store.AllScenarioIDs()
	if len(scenarios) == 0 {
		return 0.0
	}
	collapsed := 0
	for _, scenarioID := range scenarios {
		if a.CompareConsensus(scenarioID).ConsensusCollapsed {
			collapsed++
		}
	}
	return float64(collapsed) / float64(len(scenarios))
}
