// Package id provides the opaque 128-bit identifiers used across the
// engine (CharacterID, LocationID, ConsequenceID, FactID, EntityID,
// QuestID, EventID). Every identifier is a distinct named type wrapping
// uuid.UUID so the compiler catches a CharacterID passed where a QuestID
// is expected.
package id

import "github.com/google/uuid"

// CharacterID identifies a Character within a World.
type CharacterID uuid.UUID

// LocationID identifies a Location.
type LocationID uuid.UUID

// ConsequenceID identifies a registered Consequence in Story Memory.
type ConsequenceID uuid.UUID

// FactID identifies a remembered Fact in Story Memory.
type FactID uuid.UUID

// EntityID identifies an entry in the Story Memory entity registry.
type EntityID uuid.UUID

// QuestID identifies a Quest.
type QuestID uuid.UUID

// EventID identifies a scheduled event.
type EventID uuid.UUID

// NPCID identifies an NPC.
type NPCID uuid.UUID

func (i CharacterID) String() string   { return uuid.UUID(i).String() }
func (i LocationID) String() string    { return uuid.UUID(i).String() }
func (i ConsequenceID) String() string { return uuid.UUID(i).String() }
func (i FactID) String() string        { return uuid.UUID(i).String() }
func (i EntityID) String() string      { return uuid.UUID(i).String() }
func (i QuestID) String() string       { return uuid.UUID(i).String() }
func (i EventID) String() string       { return uuid.UUID(i).String() }
func (i NPCID) String() string         { return uuid.UUID(i).String() }

// MarshalText/UnmarshalText render every identifier as its canonical UUID
// string in JSON, including when used as a map key.
func (i CharacterID) MarshalText() ([]byte, error)   { return marshalID(uuid.UUID(i)) }
func (i LocationID) MarshalText() ([]byte, error)    { return marshalID(uuid.UUID(i)) }
func (i ConsequenceID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(i)) }
func (i FactID) MarshalText() ([]byte, error)        { return marshalID(uuid.UUID(i)) }
func (i EntityID) MarshalText() ([]byte, error)      { return marshalID(uuid.UUID(i)) }
func (i QuestID) MarshalText() ([]byte, error)       { return marshalID(uuid.UUID(i)) }
func (i EventID) MarshalText() ([]byte, error)       { return marshalID(uuid.UUID(i)) }
func (i NPCID) MarshalText() ([]byte, error)         { return marshalID(uuid.UUID(i)) }

func marshalID(u uuid.UUID) ([]byte, error) { return []byte(u.String()), nil }

func (i *CharacterID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = CharacterID(u)
	return err
}

func (i *LocationID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = LocationID(u)
	return err
}

func (i *ConsequenceID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = ConsequenceID(u)
	return err
}

func (i *FactID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = FactID(u)
	return err
}

func (i *EntityID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = EntityID(u)
	return err
}

func (i *QuestID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = QuestID(u)
	return err
}

func (i *EventID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = EventID(u)
	return err
}

func (i *NPCID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*i = NPCID(u)
	return err
}

func (i CharacterID) IsZero() bool   { return i == CharacterID{} }
func (i LocationID) IsZero() bool    { return i == LocationID{} }
func (i ConsequenceID) IsZero() bool { return i == ConsequenceID{} }
func (i FactID) IsZero() bool        { return i == FactID{} }
func (i EntityID) IsZero() bool      { return i == EntityID{} }
func (i QuestID) IsZero() bool       { return i == QuestID{} }
func (i EventID) IsZero() bool       { return i == EventID{} }
func (i NPCID) IsZero() bool         { return i == NPCID{} }

// Generator mints new identifiers, so tests can inject a deterministic
// generator instead of mocking uuid.New() globally.
type Generator interface {
	New() uuid.UUID
}

// GoogleUUIDGenerator implements Generator using google/uuid's random UUIDs.
type GoogleUUIDGenerator struct{}

// New generates a fresh random UUID.
func (GoogleUUIDGenerator) New() uuid.UUID { return uuid.New() }

// NewGoogleUUIDGenerator constructs the default, process-wide Generator.
func NewGoogleUUIDGenerator() Generator { return GoogleUUIDGenerator{} }

// ParseConsequenceID parses s (as produced by ConsequenceID.String) back
// into a ConsequenceID, for the orchestrator's relevance-check response
// handling, where triggered consequence ids come back as plain strings.
func ParseConsequenceID(s string) (ConsequenceID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ConsequenceID{}, err
	}
	return ConsequenceID(u), nil
}

func NewCharacterID(g Generator) CharacterID     { return CharacterID(g.New()) }
func NewLocationID(g Generator) LocationID       { return LocationID(g.New()) }
func NewConsequenceID(g Generator) ConsequenceID { return ConsequenceID(g.New()) }
func NewFactID(g Generator) FactID               { return FactID(g.New()) }
func NewEntityID(g Generator) EntityID           { return EntityID(g.New()) }
func NewQuestID(g Generator) QuestID             { return QuestID(g.New()) }
func NewEventID(g Generator) EventID             { return EventID(g.New()) }
func NewNPCID(g Generator) NPCID                 { return NPCID(g.New()) }
