package world

import "sort"

// Combatant is one participant in the active CombatState. The player
// Character does not duplicate its HP here in a separate struct — its HP
// lives on Character — but monsters/NPCs in combat are tracked as
// Combatants with their own HP copy.
type Combatant struct {
	ID          string
	Name        string
	IsPlayer    bool
	Initiative  int
	CurrentHP   int
	MaxHP       int
	TempHP      int
	AC          int
	Conditions  []*ActiveCondition
}

// CombatState exists iff World.Mode == ModeCombat.
type CombatState struct {
	Round              int
	TurnIndex          int
	Combatants         []*Combatant
	SneakAttackUsedThisTurn bool
	AttacksThisTurn         int
}

// NewCombatState creates an empty combat, round 1, turn 0.
func NewCombatState() *CombatState {
	return &CombatState{Round: 1, TurnIndex: 0}
}

// AddCombatant inserts a combatant and re-sorts by initiative descending,
// stable over insertion order.
func (cs *CombatState) AddCombatant(c *Combatant) {
	cs.Combatants = append(cs.Combatants, c)
	sort.SliceStable(cs.Combatants, func(i, j int) bool {
		return cs.Combatants[i].Initiative > cs.Combatants[j].Initiative
	})
}

// Current returns the combatant whose turn it currently is, or nil if
// combat has no combatants.
func (cs *CombatState) Current() *Combatant {
	if len(cs.Combatants) == 0 || cs.TurnIndex >= len(cs.Combatants) {
		return nil
	}
	return cs.Combatants[cs.TurnIndex]
}

// NextTurn advances TurnIndex, wrapping to the next round. Per-turn tracking
// (sneak-attack-used, attacks-this-turn) is cleared here; condition-round
// decrement happens separately in the Applier after all other effects for
// this tool call, so a same-turn "apply condition for 3 rounds" is not
// prematurely aged.
func (cs *CombatState) NextTurn() {
	cs.TurnIndex++
	if cs.TurnIndex >= len(cs.Combatants) {
		cs.TurnIndex = 0
		cs.Round++
	}
	cs.SneakAttackUsedThisTurn = false
	cs.AttacksThisTurn = 0
}

// DecrementConditions decrements every active condition's remaining-rounds
// counter by 1 across all combatants and the player Character, removing
// those that reach 0.
func DecrementConditions(w *World) {
	w.Character.Conditions = decrementConditionSlice(w.Character.Conditions)
	if w.Combat != nil {
		for _, c := range w.Combat.Combatants {
			c.Conditions = decrementConditionSlice(c.Conditions)
		}
	}
}

func decrementConditionSlice(conds []*ActiveCondition) []*ActiveCondition {
	out := conds[:0]
	for _, cond := range conds {
		if cond.RemainingRounds != nil {
			remaining := *cond.RemainingRounds - 1
			if remaining <= 0 {
				continue
			}
			cond.RemainingRounds = &remaining
		}
		out = append(out, cond)
	}
	return out
}

// StartCombat sets Mode to Combat and installs an empty CombatState.
func (w *World) StartCombat() {
	w.Mode = ModeCombat
	w.Combat = NewCombatState()
}

// EndCombat clears CombatState and returns to Exploration.
func (w *World) EndCombat() {
	w.Mode = ModeExploration
	w.Combat = nil
}
