package analysis

import (
	"testing"

	"github.com/gapwatch/gapwatch/internal/domain"
	"github.com/gapwatch/gapwatch/internal/store"
	"github.com/stretchr/testify/assert"
)

func newReversalFixture() (*store.DecisionStore, *ReversalAnalyzer) {
	s := store.NewDecisionStore()
	return s, NewReversalAnalyzer(s, DefaultScorer())
}

func TestDetectReversals_ChoiceChanged(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "d1", "S1", "M1", domain.ModeTheory, "alert", conf(8.0))
	save(t, s, "d2", "S1", "M1", domain.ModeAction, "compensate", conf(6.0))

	reversals := a.DetectReversals("S1")
	assert.Len(t, reversals, 1)
	assert.True(t, reversals[0].IsReversal())
	assert.Equal(t, 2.0, reversals[0].ConfidenceDrop())
}

func TestDetectReversals_SameChoice(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "d1", "S1", "M1", domain.ModeTheory, "defer", conf(8.0))
	save(t, s, "d2", "S1", "M1", domain.ModeAction, "defer", conf(8.0))

	assert.Empty(t, a.DetectReversals("S1"))
	assert.Equal(t, 0.0, a.ReversalRate("S1"))
}

func TestIsReversal_ExactStringComparison(t *testing.T) {
	s, a := newReversalFixture()
	// Case and whitespace differences are reversals: no normalization.
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "Alert", nil)
	save(t, s, "d2", "s1", "m1", domain.ModeAction, "alert", nil)
	save(t, s, "d3", "s1", "m2", domain.ModeTheory, "alert ", nil)
	save(t, s, "d4", "s1", "m2", domain.ModeAction, "alert", nil)

	assert.Len(t, a.DetectReversals("s1"), 2)
	assert.Equal(t, 1.0, a.ReversalRate("s1"))
}

func TestReversalDirection(t *testing.T) {
	_, a := newReversalFixture()

	pair := func(theory, action string) domain.DecisionPair {
		return domain.DecisionPair{
			ScenarioID:     "s1",
			ModelName:      "m1",
			TheoryDecision: &domain.DecisionRecord{Choice: theory},
			ActionDecision: &domain.DecisionRecord{Choice: action},
		}
	}

	assert.Equal(t, domain.DirectionConservative, a.ReversalDirection(pair("alert_surgeon", "compensate_silently")))
	assert.Equal(t, domain.DirectionPermissive, a.ReversalDirection(pair("honor_request", "report_symptoms")))
	assert.Equal(t, domain.DirectionLateral, a.ReversalDirection(pair("alert_privately", "alert_publicly")))
	assert.Equal(t, domain.DirectionNone, a.ReversalDirection(pair("defer", "defer")))
}

func TestReversalDirectionCounts(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "alert", nil)
	save(t, s, "d2", "s1", "m1", domain.ModeAction, "compensate", nil) // conservative
	save(t, s, "d3", "s1", "m2", domain.ModeTheory, "honor", nil)
	save(t, s, "d4", "s1", "m2", domain.ModeAction, "report", nil) // permissive
	save(t, s, "d5", "s1", "m3", domain.ModeTheory, "defer", nil)
	save(t, s, "d6", "s1", "m3", domain.ModeAction, "defer", nil) // no reversal

	counts := a.ReversalDirectionCounts("s1")
	assert.Equal(t, 1, counts[domain.DirectionConservative])
	assert.Equal(t, 1, counts[domain.DirectionPermissive])
	assert.NotContains(t, counts, domain.DirectionNone)
}

func TestReversalRate_OneSidedModelExcluded(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "alert", nil)
	save(t, s, "d2", "s1", "m1", domain.ModeAction, "wait", nil)
	// m2 only theorized; contributes zero pairs and is excluded from the rate.
	save(t, s, "d3", "s1", "m2", domain.ModeTheory, "alert", nil)

	assert.Len(t, a.FindPairs("s1"), 1)
	assert.Equal(t, 1.0, a.ReversalRate("s1"))
}

func TestOverallReversalRate_PoolsPairsAcrossScenarios(t *testing.T) {
	s, a := newReversalFixture()
	// Scenario A: 1 of 2 pairs reversed.
	save(t, s, "a1", "sA", "m1", domain.ModeTheory, "alert", nil)
	save(t, s, "a2", "sA", "m1", domain.ModeAction, "wait", nil)
	save(t, s, "a3", "sA", "m2", domain.ModeTheory, "defer", nil)
	save(t, s, "a4", "sA", "m2", domain.ModeAction, "defer", nil)
	// Scenario B: 2 of 2 pairs reversed.
	save(t, s, "b1", "sB", "m1", domain.ModeTheory, "alert", nil)
	save(t, s, "b2", "sB", "m1", domain.ModeAction, "wait", nil)
	save(t, s, "b3", "sB", "m2", domain.ModeTheory, "report", nil)
	save(t, s, "b4", "sB", "m2", domain.ModeAction, "allow", nil)

	// 3 of 4 pairs reversed, not the mean of per-scenario rates.
	assert.Equal(t, 0.75, a.OverallReversalRate())
}

func TestOverallReversalRate_Empty(t *testing.T) {
	_, a := newReversalFixture()
	assert.Equal(t, 0.0, a.OverallReversalRate())
}

func TestModelReversalRate(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "a1", "sA", "m1", domain.ModeTheory, "alert", nil)
	save(t, s, "a2", "sA", "m1", domain.ModeAction, "wait", nil)
	save(t, s, "b1", "sB", "m1", domain.ModeTheory, "defer", nil)
	save(t, s, "b2", "sB", "m1", domain.ModeAction, "defer", nil)
	save(t, s, "a3", "sA", "m2", domain.ModeTheory, "alert", nil)
	save(t, s, "a4", "sA", "m2", domain.ModeAction, "escalate", nil)

	assert.Equal(t, 0.5, a.ModelReversalRate("m1"))
	assert.Equal(t, 1.0, a.ModelReversalRate("m2"))
	assert.Equal(t, 0.0, a.ModelReversalRate("unknown"))
}

func TestAverageConfidenceDrop(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "alert", conf(9.0))
	save(t, s, "d2", "s1", "m1", domain.ModeAction, "alert", conf(7.0)) // drop 2.0, not reversed
	save(t, s, "d3", "s1", "m2", domain.ModeTheory, "alert", conf(6.0))
	save(t, s, "d4", "s1", "m2", domain.ModeAction, "wait", conf(7.0)) // drop -1.0

	// Mean over all pairs, reversed or not.
	assert.InDelta(t, 0.5, a.AverageConfidenceDrop("s1"), 1e-9)
}

func TestAverageConfidenceDrop_MissingConfidence(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "alert", conf(9.0))
	save(t, s, "d2", "s1", "m1", domain.ModeAction, "wait", nil)

	assert.Equal(t, 0.0, a.AverageConfidenceDrop("s1"))
}

func TestAverageConfidenceDrop_NoPairs(t *testing.T) {
	_, a := newReversalFixture()
	assert.Equal(t, 0.0, a.AverageConfidenceDrop("s1"))
	assert.Equal(t, 0.0, a.OverallAverageConfidenceDrop())
}

func TestOverallAverageConfidenceDrop(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "a1", "sA", "m1", domain.ModeTheory, "alert", conf(9.0))
	save(t, s, "a2", "sA", "m1", domain.ModeAction, "wait", conf(8.0)) // drop 1.0
	save(t, s, "b1", "sB", "m1", domain.ModeTheory, "defer", conf(8.0))
	save(t, s, "b2", "sB", "m1", domain.ModeAction, "defer", conf(5.0)) // drop 3.0

	assert.InDelta(t, 2.0, a.OverallAverageConfidenceDrop(), 1e-9)
}

func TestAnalysisIdempotence(t *testing.T) {
	s, a := newReversalFixture()
	save(t, s, "d1", "s1", "m1", domain.ModeTheory, "alert", conf(8.0))
	save(t, s, "d2", "s1", "m1", domain.ModeAction, "wait", conf(6.0))

	first := a.ReversalRate("s1")
	second := a.ReversalRate("s1")
	assert.Equal(t, first, second)
	assert.Equal(t, a.OverallAverageConfidenceDrop(), a.OverallAverageConfidenceDrop())
}
