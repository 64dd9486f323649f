package memory

import "github.com/dungeonkeeper/dm-engine/internal/id"

// Snapshot is Memory's serializable form: every store flattened into an
// order-preserving slice: a bare map would round-trip fine through
// encoding/json but lose insertion order, and Go doesn't guarantee map
// key order on re-marshal, so re-serializing a loaded snapshot would
// shuffle. Field names are stable across versions.
type Snapshot struct {
	Entities     []EntitySnapshot           `json:"entities"`
	Facts        []Fact                     `json:"facts"`
	Consequences []Consequence              `json:"consequences"`
	Events       []ScheduledEvent           `json:"events"`
	Knowledge    []KnowledgeEntrySnapshot   `json:"knowledge"`
}

// EntitySnapshot is one entity-registry row.
type EntitySnapshot struct {
	ID   id.EntityID `json:"id"`
	Name string      `json:"name"`
}

// KnowledgeEntrySnapshot is one entity's full Statement list.
type KnowledgeEntrySnapshot struct {
	EntityID   id.EntityID `json:"entity_id"`
	Statements []Statement `json:"statements"`
}

// Snapshot renders the current Memory into its serializable form, in
// registration/insertion order throughout.
func (m *Memory) Snapshot() Snapshot {
	snap := Snapshot{
		Entities:     make([]EntitySnapshot, 0, len(m.entityOrder)),
		Facts:        m.Facts(),
		Consequences: make([]Consequence, 0, len(m.consequenceOrder)),
		Events:       m.Events(),
		Knowledge:    make([]KnowledgeEntrySnapshot, 0, len(m.entityOrder)),
	}
	for _, eid := range m.entityOrder {
		snap.Entities = append(snap.Entities, EntitySnapshot{ID: eid, Name: m.entityNames[eid]})
	}
	for _, cid := range m.consequenceOrder {
		snap.Consequences = append(snap.Consequences, m.consequences[cid])
	}
	for _, eid := range m.entityOrder {
		if stmts, ok := m.knowledge[eid]; ok && len(stmts) > 0 {
			snap.Knowledge = append(snap.Knowledge, KnowledgeEntrySnapshot{EntityID: eid, Statements: stmts})
		}
	}
	return snap
}

// Restore rebuilds a Memory from a Snapshot, using gen for any ids minted
// afterward (new entities registered mid-session continue from a fresh
// generator, not the snapshot's own, since ids are already fixed values).
func Restore(gen id.Generator, snap Snapshot) *Memory {
	m := New(gen)
	for _, es := range snap.Entities {
		key := lowerName(es.Name)
		m.entities[key] = es.ID
		m.entityNames[es.ID] = es.Name
		m.entityOrder = append(m.entityOrder, es.ID)
	}
	for _, f := range snap.Facts {
		m.facts[f.ID] = f
		m.factOrder = append(m.factOrder, f.ID)
	}
	for _, c := range snap.Consequences {
		m.consequences[c.ID] = c
		m.consequenceOrder = append(m.consequenceOrder, c.ID)
	}
	for _, e := range snap.Events {
		m.events[e.ID] = e
		m.eventOrder = append(m.eventOrder, e.ID)
		m.eventsByName[lowerName(e.Name)] = e.ID
	}
	for _, k := range snap.Knowledge {
		m.knowledge[k.EntityID] = k.Statements
	}
	return m
}
