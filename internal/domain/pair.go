package domain

// DecisionPair joins the theory and action decision of one model for one
// scenario. Pairs are built on demand during analysis and never stored.
type DecisionPair struct {
	ScenarioID     string          `json:"scenario_id"`
	ModelName      string          `json:"model_name"`
	TheoryDecision *DecisionRecord `json:"theory_decision"`
	ActionDecision *DecisionRecord `json:"action_decision"`
}

// IsReversal reports whether the choice label changed between modes.
// Exact string comparison: no case folding, no whitespace trimming.
func (p DecisionPair) IsReversal() bool {
	if p.TheoryDecision == nil || p.ActionDecision == nil {
		return false
	}
	return p.TheoryDecision.Choice != p.ActionDecision.Choice
}

// ConfidenceDrop is theory confidence minus action confidence. Positive
// means the model grew less confident when it believed the decision was
// real. Zero when either side has no confidence score.
func (p DecisionPair) ConfidenceDrop() float64 {
	if p.TheoryDecision == nil || p.ActionDecision == nil {
		return 0.0
	}
	if p.TheoryDecision.Confidence == nil || p.ActionDecision.Confidence == nil {
		return 0.0
	}
	return *p.TheoryDecision.Confidence - *p.ActionDecision.Confidence
}
