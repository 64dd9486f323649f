package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func resolveStartCombat(w *world.World, in intent.Intent) Resolution {
	if w.Mode == world.ModeCombat {
		return noEffect("Combat is already underway.")
	}
	return Resolution{
		Narrative: "Roll for initiative!",
		Effects:   []effect.Effect{{Kind: effect.KindCombatStarted}},
	}
}

func resolveEndCombat(w *world.World, in intent.Intent) Resolution {
	if w.Mode != world.ModeCombat {
		return noEffect("There is no combat to end.")
	}
	return Resolution{
		Narrative: "Combat ends.",
		Effects:   []effect.Effect{{Kind: effect.KindCombatEnded}},
	}
}

func resolveAddCombatant(w *world.World, in intent.Intent) Resolution {
	if w.Mode != world.ModeCombat {
		return noEffect("Cannot add a combatant outside of combat.")
	}
	narrative := fmt.Sprintf("%s joins the fight.", in.CombatantName)
	return Resolution{
		Narrative: narrative,
		Effects: []effect.Effect{{
			Kind:                effect.KindCombatantAdded,
			CombatantID:         in.CombatantID,
			CombatantName:       in.CombatantName,
			CombatantInitiative: in.CombatantInitiative,
			CombatantMaxHP:      in.CombatantMaxHP,
			CombatantAC:         in.CombatantAC,
			IsPlayerCombatant:   in.IsPlayerCombatant,
		}},
	}
}

// resolveNextTurn emits TurnAdvanced. By the applier's ordering rule,
// the condition-round decrement that accompanies a turn advance happens
// in the Applier after all other effects of this tool call, not here —
// TurnAdvanced is the only effect this Intent ever produces.
func resolveNextTurn(w *world.World, in intent.Intent) Resolution {
	if w.Mode != world.ModeCombat || w.Combat == nil {
		return noEffect("There is no combat in progress.")
	}
	next := w.Combat.TurnIndex + 1
	if next >= len(w.Combat.Combatants) {
		return Resolution{
			Narrative: "The round ends; initiative starts over.",
			Effects:   []effect.Effect{{Kind: effect.KindTurnAdvanced}},
		}
	}
	return Resolution{
		Narrative: fmt.Sprintf("It is now %s's turn.", w.Combat.Combatants[next].Name),
		Effects:   []effect.Effect{{Kind: effect.KindTurnAdvanced}},
	}
}

func resolveTimeAdvance(w *world.World, in intent.Intent) Resolution {
	return Resolution{
		Narrative: fmt.Sprintf("Time passes (%d minutes).", in.Minutes),
		Effects:   []effect.Effect{{Kind: effect.KindTimeAdvanced, Minutes: in.Minutes}},
	}
}
