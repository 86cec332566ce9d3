package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gapwatch/gapwatch/internal/domain"
)

// ErrInvalidRecord is returned by Save when the record or its id is missing.
var ErrInvalidRecord = errors.New("decision record and id must not be empty")

// recordMap is a mutex-guarded map of key -> single record.
type recordMap struct {
	mu sync.RWMutex
	m  map[string]*domain.DecisionRecord
}

func newRecordMap() *recordMap {
	return &recordMap{m: make(map[string]*domain.DecisionRecord)}
}

func (rm *recordMap) put(key string, rec *domain.DecisionRecord) {
	rm.mu.Lock()
	rm.m[key] = rec
	rm.mu.Unlock()
}

func (rm *recordMap) get(key string) (*domain.DecisionRecord, bool) {
	rm.mu.RLock()
	rec, ok := rm.m[key]
	rm.mu.RUnlock()
	return rec, ok
}

func (rm *recordMap) values() []*domain.DecisionRecord {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	out := make([]*domain.DecisionRecord, 0, len(rm.m))
	for _, rec := range rm.m {
		out = append(out, rec)
	}
	return out
}

func (rm *recordMap) len() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.m)
}

func (rm *recordMap) reset() {
	rm.mu.Lock()
	rm.m = make(map[string]*domain.DecisionRecord)
	rm.mu.Unlock()
}

// listMap is a mutex-guarded map of key -> append-only record list.
type listMap struct {
	mu sync.RWMutex
	m  map[string][]*domain.DecisionRecord
}

func newListMap() *listMap {
	return &listMap{m: make(map[string][]*domain.DecisionRecord)}
}

func (lm *listMap) append(key string, rec *domain.DecisionRecord) {
	lm.mu.Lock()
	lm.m[key] = append(lm.m[key], rec)
	lm.mu.Unlock()
}

// get returns a copy of the list so callers never share the backing array
// with concurrent appends.
func (lm *listMap) get(key string) []*domain.DecisionRecord {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	src := lm.m[key]
	out := make([]*domain.DecisionRecord, len(src))
	copy(out, src)
	return out
}

func (lm *listMap) keys() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	out := make([]string, 0, len(lm.m))
	for k := range lm.m {
		out = append(out, k)
	}
	return out
}

func (lm *listMap) reset() {
	lm.mu.Lock()
	lm.m = make(map[string][]*domain.DecisionRecord)
	lm.mu.Unlock()
}

// DecisionStore is the in-memory decision repository. Each index carries its
// own lock, so a save is not atomic across indices; readers may observe a
// record in the scenario index before it appears in the composite index.
// That trade is acceptable here: the store is advisory/diagnostic, not a
// source of truth.
type DecisionStore struct {
	byID       *recordMap
	byScenario *listMap
	byModel    *listMap
	byTuple    *recordMap
}

func NewDecisionStore() *DecisionStore {
	return &DecisionStore{
		byID:       newRecordMap(),
		byScenario: newListMap(),
		byModel:    newListMap(),
		byTuple:    newRecordMap(),
	}
}

func (s *DecisionStore) Save(rec *domain.DecisionRecord) error {
	if rec == nil || rec.ID == "" {
		return ErrInvalidRecord
	}

	s.byID.put(rec.ID, rec)
	s.byScenario.append(rec.ScenarioID, rec)
	s.byModel.append(rec.ModelName, rec)
	s.byTuple.put(tupleKey(rec.ScenarioID, rec.ModelName, rec.Mode), rec)

	return nil
}

func (s *DecisionStore) FindByID(id string) (*domain.DecisionRecord, bool) {
	return s.byID.get(id)
}

func (s *DecisionStore) FindByScenario(scenarioID string) []*domain.DecisionRecord {
	return s.byScenario.get(scenarioID)
}

func (s *DecisionStore) FindByModel(modelName string) []*domain.DecisionRecord {
	return s.byModel.get(modelName)
}

func (s *DecisionStore) FindByScenarioAndMode(scenarioID string, mode domain.DecisionMode) []*domain.DecisionRecord {
	all := s.byScenario.get(scenarioID)
	out := make([]*domain.DecisionRecord, 0, len(all))
	for _, rec := range all {
		if rec.Mode == mode {
			out = append(out, rec)
		}
	}
	return out
}

func (s *DecisionStore) FindByScenarioModelMode(scenarioID, modelName string, mode domain.DecisionMode) (*domain.DecisionRecord, bool) {
	return s.byTuple.get(tupleKey(scenarioID, modelName, mode))
}

func (s *DecisionStore) FindAll() []*domain.DecisionRecord {
	return s.byID.values()
}

func (s *DecisionStore) AllScenarioIDs() []string {
	ids := s.byScenario.keys()
	sort.Strings(ids)
	return ids
}

func (s *DecisionStore) AllModelNames() []string {
	names := s.byModel.keys()
	sort.Strings(names)
	return names
}

func (s *DecisionStore) Clear() {
	s.byID.reset()
	s.byScenario.reset()
	s.byModel.reset()
	s.byTuple.reset()
}

func (s *DecisionStore) Count() int {
	return s.byID.len()
}

func tupleKey(scenarioID, modelName string, mode domain.DecisionMode) string {
	return fmt.Sprintf("%s:%s:%s", scenarioID, modelName, mode)
}
