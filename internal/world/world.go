// Package world holds the game's domain model: Character, NPC, Location,
// Quest, Combat, Conditions, Inventory, and Spellcasting, plus the
// invariants that must hold after every applied Effect batch. A pure
// domain model with no back-references: NPC -> Location is by id,
// resolved at read time.
package world

import (
	"github.com/dungeonkeeper/dm-engine/internal/id"
)

// Mode is the World's top-level scene mode.
type Mode string

const (
	ModeExploration Mode = "exploration"
	ModeCombat      Mode = "combat"
)

// World is exclusively owned by one Orchestrator; nothing else
// may mutate it.
type World struct {
	Character *Character
	NPCs      map[id.NPCID]*NPC
	Locations map[id.LocationID]*Location
	Quests    map[id.QuestID]*Quest

	Mode   Mode
	Combat *CombatState

	CurrentLocation id.LocationID
	GameTime        GameTime
}

// GameTime is the in-fiction clock, advanced by rests and the TimeAdvance
// Intent. It is plain elapsed game minutes so "+1 hour" / "+8 hours" rest
// durations are simple additions.
type GameTime struct {
	ElapsedMinutes int64
}

func (t *GameTime) AdvanceMinutes(n int64) { t.ElapsedMinutes += n }
func (t *GameTime) AdvanceHours(h int64)   { t.ElapsedMinutes += h * 60 }

// New constructs an empty World around the given Character, in Exploration
// mode, with no active combat.
func New(character *Character) *World {
	return &World{
		Character: character,
		NPCs:      make(map[id.NPCID]*NPC),
		Locations: make(map[id.LocationID]*Location),
		Quests:    make(map[id.QuestID]*Quest),
		Mode:      ModeExploration,
	}
}

// FindNPCByName does a case-insensitive lookup, used throughout the
// StateAsserted applier.
func (w *World) FindNPCByName(name string) *NPC {
	lower := lowerASCII(name)
	for _, n := range w.NPCs {
		if lowerASCII(n.Name) == lower {
			return n
		}
	}
	return nil
}

// FindLocationByName does a case-insensitive lookup.
func (w *World) FindLocationByName(name string) *Location {
	lower := lowerASCII(name)
	for _, l := range w.Locations {
		if lowerASCII(l.Name) == lower {
			return l
		}
	}
	return nil
}

// FindQuestByName does a case-insensitive exact match against the quest's
// name.
func (w *World) FindQuestByName(name string) *Quest {
	lower := lowerASCII(name)
	for _, q := range w.Quests {
		if lowerASCII(q.Name) == lower {
			return q
		}
	}
	return nil
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// containsFold reports whether s contains substr, ASCII case-insensitively.
// Used by the Applier for objective-completion substring matching
//.
func containsFold(s, substr string) bool {
	ls, lsub := lowerASCII(s), lowerASCII(substr)
	if lsub == "" {
		return true
	}
	for i := 0; i+len(lsub) <= len(ls); i++ {
		if ls[i:i+len(lsub)] == lsub {
			return true
		}
	}
	return false
}

// ContainsFold exports the case-insensitive substring test for the apply
// package.
func ContainsFold(s, substr string) bool { return containsFold(s, substr) }

// EqualFold exports a case-insensitive equality test.
func EqualFold(a, b string) bool { return lowerASCII(a) == lowerASCII(b) }
