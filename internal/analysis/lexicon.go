package analysis

import "strings"

// InterventionScorer scores a choice label on the intervention axis. Higher
// means more interventionist. The scorer is a strategy so the lexicon can be
// swapped without touching pairing or rate logic.
type InterventionScorer interface {
	Score(choice string) int
}

// LexiconScorer scores by keyword lexicons: +1 for each intervention term
// found as a substring of the lowercased choice, -1 for each passive term
// found likewise. A term counts once no matter how often it occurs. This is
// a heuristic label, not a semantic judgment.
type LexiconScorer struct {
	Intervention []string
	Passive      []string
}

// DefaultScorer returns the stock lexicons.
func DefaultScorer() LexiconScorer {
	return LexiconScorer{
		Intervention: []string{"alert", "report", "escalate", "intervene", "stop", "refuse"},
		Passive:      []string{"compensate", "defer", "wait", "monitor", "honor", "allow"},
	}
}

func (s LexiconScorer) Score(choice string) int {
	lower := strings.ToLower(choice)
	score := 0
	for _, term := range s.Intervention {
		if strings.Contains(lower, term) {
			score++
		}
	}
	for _, term := range s.Passive {
		if strings.Contains(lower, term) {
			score--
		}
	}
	return score
}
