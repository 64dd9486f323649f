package memory

import "github.com/dungeonkeeper/dm-engine/internal/id"

// Statement is one entry in an entity's knowledge-graph slot: something
// known about (or told to) that entity, with provenance: a source and a
// verified flag.
type Statement struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Verified bool   `json:"verified"`
}

// ShareKnowledge appends a Statement to entityName's knowledge list,
// registering the entity first if it hasn't been seen before. This is the
// Story-Memory-side analogue of NPC.KnownInformation, keyed by EntityID rather than an in-World NPC struct, for
// knowledge about entities that may not be NPCs at all (a faction, a
// rumor's subject, a place).
func (m *Memory) ShareKnowledge(entityName, text, source string, verified bool) {
	eid := m.RegisterEntity(entityName)
	for _, s := range m.knowledge[eid] {
		if s.Text == text {
			return
		}
	}
	m.knowledge[eid] = append(m.knowledge[eid], Statement{Text: text, Source: source, Verified: verified})
}

// KnowledgeOf returns every Statement recorded for the entity registered
// under name, if any.
func (m *Memory) KnowledgeOf(name string) ([]Statement, bool) {
	eid, ok := m.ResolveEntity(name)
	if !ok {
		return nil, false
	}
	return m.knowledge[eid], true
}

// KnowledgeByID returns every Statement recorded for eid.
func (m *Memory) KnowledgeByID(eid id.EntityID) []Statement {
	return m.knowledge[eid]
}
