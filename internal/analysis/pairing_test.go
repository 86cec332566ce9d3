package analysis

import (
	"testing"

	"github.com/gapwatch/gapwatch/internal/domain"
	"github.com/gapwatch/gapwatch/internal/store"
)

func conf(v float64) *float64 {
	return &v
}

func save(t *testing.T, s *store.DecisionStore, id, scenarioID, modelName string, mode domain.DecisionMode, choice string, confidence *float64) {
	t.Helper()
	err := s.Save(&domain.DecisionRecord{
		ID:         id,
		ScenarioID: scenarioID,
		ModelName:  modelName,
		Mode:       mode,
		Choice:     choice,
		Confidence: confidence,
	})
	if err != nil {
		t.Fatalf("save %s: %v", id, err)
	}
}

func TestFindPairs_BothModes(t *testing.T) {
	s := store.NewDecisionStore()
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "alert", nil)
	save(t, s, "d2", "s1", "m1", domain.ModeAction, "wait", nil)

	pairs := NewPairingEngine(s).FindPairs("s1")
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	p := pairs[0]
	if p.ScenarioID != "s1" || p.ModelName != "m1" {
		t.Fatalf("unexpected pair identity: %s/%s", p.ScenarioID, p.ModelName)
	}
	if p.TheoryDecision.Choice != "alert" || p.ActionDecision.Choice != "wait" {
		t.Fatalf("pair wired wrong: theory=%s action=%s", p.TheoryDecision.Choice, p.ActionDecision.Choice)
	}
}

func TestFindPairs_OneSidedModelsDropped(t *testing.T) {
	s := store.NewDecisionStore()
	save(t, s, "d1", "s1", "theorist", domain.ModeTheory, "alert", nil)
	save(t, s, "d2", "s1", "actor", domain.ModeAction, "wait", nil)
	save(t, s, "d3", "s1", "complete", domain.ModeTheory, "alert", nil)
	save(t, s, "d4", "s1", "complete", domain.ModeAction, "alert", nil)

	pairs := NewPairingEngine(s).FindPairs("s1")
	if len(pairs) != 1 {
		t.Fatalf("expected only the complete model to pair, got %d pairs", len(pairs))
	}
	if pairs[0].ModelName != "complete" {
		t.Fatalf("expected pair for model 'complete', got %q", pairs[0].ModelName)
	}
}

func TestFindPairs_EmptyScenario(t *testing.T) {
	s := store.NewDecisionStore()
	if pairs := NewPairingEngine(s).FindPairs("missing"); len(pairs) != 0 {
		t.Fatalf("expected no pairs for unknown scenario, got %d", len(pairs))
	}
}

func TestFindPairs_UsesLatestCompositeEntry(t *testing.T) {
	s := store.NewDecisionStore()
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "alert", nil)
	save(t, s, "d2", "s1", "m1", domain.ModeTheory, "wait", nil) // overwrites composite entry
	save(t, s, "d3", "s1", "m1", domain.ModeAction, "wait", nil)

	pairs := NewPairingEngine(s).FindPairs("s1")
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].TheoryDecision.ID != "d2" {
		t.Fatalf("expected latest theory record d2, got %s", pairs[0].TheoryDecision.ID)
	}
	if pairs[0].IsReversal() {
		t.Fatal("latest theory choice matches action choice, no reversal expected")
	}
}
