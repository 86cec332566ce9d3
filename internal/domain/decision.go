package domain

import (
	"time"
)

// DecisionMode is the framing under which a decision was elicited.
//
// THEORY is hypothetical reasoning ("what should be done?"). ACTION is a
// perceived-real execution ("you are doing this now"). The whole point of the
// system is measuring how the same model diverges between the two.
type DecisionMode string

const (
	ModeTheory DecisionMode = "THEORY"
	ModeAction DecisionMode = "ACTION"
)

func ValidDecisionMode(m string) bool {
	switch DecisionMode(m) {
	case ModeTheory, ModeAction:
		return true
	}
	return false
}

// ReversalDirection classifies how a reversed decision moved on the
// intervention axis between theory and action mode.
type ReversalDirection string

const (
	// DirectionConservative: the action-mode choice is less interventionist.
	DirectionConservative ReversalDirection = "CONSERVATIVE"
	// DirectionPermissive: the action-mode choice is more interventionist.
	DirectionPermissive ReversalDirection = "PERMISSIVE"
	// DirectionLateral: same intervention level, different choice.
	DirectionLateral ReversalDirection = "LATERAL"
	// DirectionNone: not a reversal.
	DirectionNone ReversalDirection = "NONE"
)

// DecisionRecord is one observed decision by one model for one scenario in
// one mode. Records are immutable once stored; choice labels are opaque
// strings compared by exact equality everywhere downstream.
type DecisionRecord struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	ScenarioID string         `json:"scenario_id"`
	ModelName  string         `json:"model_name"`
	Mode       DecisionMode   `json:"mode"`
	Choice     string         `json:"choice"`
	Reasoning  string         `json:"reasoning,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
