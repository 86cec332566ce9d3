package domain

import "testing"

func conf(v float64) *float64 {
	return &v
}

func TestIsReversal(t *testing.T) {
	theory := &DecisionRecord{Choice: "alert"}
	action := &DecisionRecord{Choice: "wait"}

	pair := DecisionPair{TheoryDecision: theory, ActionDecision: action}
	if !pair.IsReversal() {
		t.Fatal("different choices must be a reversal")
	}

	pair.ActionDecision = &DecisionRecord{Choice: "alert"}
	if pair.IsReversal() {
		t.Fatal("same choice must not be a reversal")
	}
}

func TestIsReversal_IncompletePair(t *testing.T) {
	pair := DecisionPair{TheoryDecision: &DecisionRecord{Choice: "alert"}}
	if pair.IsReversal() {
		t.Fatal("pair missing a side must not report a reversal")
	}
}

func TestConfidenceDrop(t *testing.T) {
	pair := DecisionPair{
		TheoryDecision: &DecisionRecord{Choice: "alert", Confidence: conf(9.0)},
		ActionDecision: &DecisionRecord{Choice: "wait", Confidence: conf(6.5)},
	}
	if drop := pair.ConfidenceDrop(); drop != 2.5 {
		t.Fatalf("expected drop 2.5, got %f", drop)
	}

	// Confidence can rise in action mode; the drop goes negative.
	pair.ActionDecision.Confidence = conf(9.5)
	if drop := pair.ConfidenceDrop(); drop != -0.5 {
		t.Fatalf("expected drop -0.5, got %f", drop)
	}
}

func TestConfidenceDrop_MissingConfidence(t *testing.T) {
	pair := DecisionPair{
		TheoryDecision: &DecisionRecord{Choice: "alert", Confidence: conf(9.0)},
		ActionDecision: &DecisionRecord{Choice: "wait"},
	}
	if drop := pair.ConfidenceDrop(); drop != 0.0 {
		t.Fatalf("expected drop 0.0 with missing confidence, got %f", drop)
	}
}

func TestValidDecisionMode(t *testing.T) {
	if !ValidDecisionMode("THEORY") || !ValidDecisionMode("ACTION") {
		t.Fatal("canonical modes must validate")
	}
	if ValidDecisionMode("theory") || ValidDecisionMode("") || ValidDecisionMode("BOTH") {
		t.Fatal("unknown modes must not validate")
	}
}
