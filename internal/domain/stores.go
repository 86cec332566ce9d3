package domain

// DecisionStore holds recorded decisions and the lookup indices the analysis
// layer depends on. Implementations must be safe for concurrent writers and
// readers, but cross-index atomicity is not required: a reader racing a save
// may see the record in one index and not yet in another.
type DecisionStore interface {
	// Save inserts or overwrites the record. The composite
	// (scenario, model, mode) index is last-write-wins: a later save for the
	// same tuple replaces the earlier entry there, while the primary store
	// keeps both by id.
	Save(rec *DecisionRecord) error

	FindByID(id string) (*DecisionRecord, bool)
	FindByScenario(scenarioID string) []*DecisionRecord
	FindByModel(modelName string) []*DecisionRecord
	FindByScenarioAndMode(scenarioID string, mode DecisionMode) []*DecisionRecord
	FindByScenarioModelMode(scenarioID, modelName string, mode DecisionMode) (*DecisionRecord, bool)
	FindAll() []*DecisionRecord

	AllScenarioIDs() []string
	AllModelNames() []string

	Clear()
	Count() int
}
