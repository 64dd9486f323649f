package memory

import "github.com/dungeonkeeper/dm-engine/internal/id"

// Fact is one remembered piece of narrative truth. Facts are never
// mutated after creation — only appended.
type Fact struct {
	ID         id.FactID `json:"id"`
	Subject    string    `json:"subject"`
	Type       string    `json:"type"`
	Text       string    `json:"text"`
	Category   string    `json:"category"`
	Importance float32   `json:"importance"`
	Related    []string  `json:"related,omitempty"`
}

// RememberFact records a new Fact, registering Subject and every related
// entity name in the entity registry so they appear in KnownEntityNames for
// the next turn's state-inference call.
func (m *Memory) RememberFact(subject, factType, text, category string, importance float32, related []string) id.FactID {
	if subject != "" {
		m.RegisterEntity(subject)
	}
	for _, r := range related {
		if r != "" {
			m.RegisterEntity(r)
		}
	}

	fid := id.NewFactID(m.gen)
	m.facts[fid] = Fact{
		ID: fid, Subject: subject, Type: factType, Text: text,
		Category: category, Importance: importance, Related: related,
	}
	m.factOrder = append(m.factOrder, fid)
	return fid
}

// Facts returns every remembered Fact in insertion order, for
// deterministic iteration.
func (m *Memory) Facts() []Fact {
	out := make([]Fact, 0, len(m.factOrder))
	for _, fid := range m.factOrder {
		out = append(out, m.facts[fid])
	}
	return out
}

// Fact looks up one remembered Fact by id.
func (m *Memory) Fact(fid id.FactID) (Fact, bool) {
	f, ok := m.facts[fid]
	return f, ok
}
