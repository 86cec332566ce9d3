package domain

// ConsensusResult summarizes all decisions for one (scenario, mode).
// MajorityChoice is empty when no decisions exist.
type ConsensusResult struct {
	ScenarioID          string         `json:"scenario_id"`
	Mode                DecisionMode   `json:"mode"`
	TotalModels         int            `json:"total_models"`
	MajorityChoice      string         `json:"majority_choice,omitempty"`
	MajorityCount       int            `json:"majority_count"`
	ConsensusPercentage float64        `json:"consensus_percentage"`
	HasSupermajority    bool           `json:"has_supermajority"`
	ChoiceDistribution  map[string]int `json:"choice_distribution,omitempty"`
}

// ConsensusComparison pairs a scenario's theory and action consensus.
// ConsensusCollapsed is deliberately one-directional: it fires only when a
// theory-mode supermajority is lost in action mode, never when action mode
// gains one.
type ConsensusComparison struct {
	ScenarioID         string          `json:"scenario_id"`
	TheoryConsensus    ConsensusResult `json:"theory_consensus"`
	ActionConsensus    ConsensusResult `json:"action_consensus"`
	ConsensusCollapsed bool            `json:"consensus_collapsed"`
}
