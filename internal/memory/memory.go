// Package memory implements Story Memory: the narrative-layer store that
// sits beside World rather than inside it, keeping World pure mechanics.
// It holds the entity registry, fact store,
// consequence store, scheduled events, and knowledge graph, and is
// mutated only by the orchestrator, between Rules Engine calls, from the
// five Effect kinds internal/apply treats as no-ops against World
// (KnowledgeShared, EventScheduled, EventCancelled, FactRemembered,
// ConsequenceRegistered).
//
// There is no mutex: Story Memory shares World's single-threaded,
// suspend-only-at-model-calls concurrency model, so there is exactly one
// owner at a time. Insertion order is tracked alongside each map (a
// parallel id slice) because iteration must be deterministic and Go map
// iteration order is not.
package memory

import (
	"strings"

	"github.com/dungeonkeeper/dm-engine/internal/id"
)

// Memory is the complete Story Memory for one session.
type Memory struct {
	entities         map[string]id.EntityID // lowercased name -> id
	entityNames      map[id.EntityID]string // id -> canonical (first-seen) name
	entityOrder      []id.EntityID
	facts            map[id.FactID]Fact
	factOrder        []id.FactID
	consequences     map[id.ConsequenceID]Consequence
	consequenceOrder []id.ConsequenceID
	events           map[id.EventID]ScheduledEvent
	eventOrder       []id.EventID
	eventsByName     map[string]id.EventID
	knowledge        map[id.EntityID][]Statement

	gen id.Generator
}

// New builds an empty Memory using gen to mint fresh ids.
func New(gen id.Generator) *Memory {
	return &Memory{
		entities:     make(map[string]id.EntityID),
		entityNames:  make(map[id.EntityID]string),
		facts:        make(map[id.FactID]Fact),
		consequences: make(map[id.ConsequenceID]Consequence),
		events:       make(map[id.EventID]ScheduledEvent),
		eventsByName: make(map[string]id.EventID),
		knowledge:    make(map[id.EntityID][]Statement),
		gen:          gen,
	}
}

// ResolveEntity looks up name case-insensitively, returning its EntityID
// if one has already been registered.
func (m *Memory) ResolveEntity(name string) (id.EntityID, bool) {
	eid, ok := m.entities[strings.ToLower(strings.TrimSpace(name))]
	return eid, ok
}

// RegisterEntity returns the existing EntityID for name (case-insensitive)
// or mints and stores a new one, preserving the first-seen spelling as
// the canonical name.
func (m *Memory) RegisterEntity(name string) id.EntityID {
	key := strings.ToLower(strings.TrimSpace(name))
	if eid, ok := m.entities[key]; ok {
		return eid
	}
	eid := id.NewEntityID(m.gen)
	m.entities[key] = eid
	m.entityNames[eid] = strings.TrimSpace(name)
	m.entityOrder = append(m.entityOrder, eid)
	return eid
}

// EntityName returns the canonical name registered for eid, if any.
func (m *Memory) EntityName(eid id.EntityID) (string, bool) {
	name, ok := m.entityNames[eid]
	return name, ok
}

// KnownEntityNames returns every registered entity's canonical name, in
// registration order — the `known_entity_names` input to the state
// inference call.
func (m *Memory) KnownEntityNames() []string {
	out := make([]string, 0, len(m.entityOrder))
	for _, eid := range m.entityOrder {
		out = append(out, m.entityNames[eid])
	}
	return out
}
