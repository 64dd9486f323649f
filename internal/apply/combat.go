package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/mechanics"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func applyCombatantAdded(w *world.World, e effect.Effect) {
	if w.Combat == nil {
		return
	}
	w.Combat.AddCombatant(&world.Combatant{
		ID:         e.CombatantID,
		Name:       e.CombatantName,
		IsPlayer:   e.IsPlayerCombatant,
		Initiative: e.CombatantInitiative,
		CurrentHP:  e.CombatantMaxHP,
		MaxHP:      e.CombatantMaxHP,
		AC:         e.CombatantAC,
	})
}

// applyRestTaken runs the short/long rest recovery tables from
// internal/mechanics and advances the in-fiction clock (1 hour for a
// short rest, 8 hours for a long one).
func applyRestTaken(w *world.World, e effect.Effect) {
	switch e.RestKind {
	case "short":
		mechanics.ShortRest(w.Character)
		w.GameTime.AdvanceHours(1)
	case "long":
		mechanics.LongRest(w.Character)
		w.GameTime.AdvanceHours(8)
	}
}
