package mechanics

import "github.com/dungeonkeeper/dm-engine/internal/world"

// AdvanceTurn moves combat to the next combatant's turn and then applies
// the condition-round decrement: decrement happens after all other
// effects of the TurnAdvanced tool call, never before or interleaved.
func AdvanceTurn(w *world.World) {
	if w.Combat == nil {
		return
	}
	w.Combat.NextTurn()
	world.DecrementConditions(w)
}

// UnconsciousCombatantsAutoFail reports the IDs of non-player combatants at
// or below 0 HP. Only CurrentHP is checked; combatant conditions are not
// consulted.
func UnconsciousCombatantsAutoFail(w *world.World) []string {
	if w.Combat == nil {
		return nil
	}
	var ids []string
	for _, c := range w.Combat.Combatants {
		if !c.IsPlayer && c.CurrentHP <= 0 {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
