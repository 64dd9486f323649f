package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func resolveRest(w *world.World, in intent.Intent) Resolution {
	switch in.RestKind {
	case "short", "long":
	default:
		return noEffect("The party doesn't have time for a rest right now.")
	}
	narrative := "The party takes a short rest."
	if in.RestKind == "long" {
		narrative = "The party settles in for a long rest."
	}
	return Resolution{
		Narrative: narrative,
		Effects:   []effect.Effect{{Kind: effect.KindRestTaken, RestKind: in.RestKind}},
	}
}

func resolveGainXP(w *world.World, in intent.Intent) Resolution {
	if in.Amount <= 0 {
		return noEffect("No experience was gained.")
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s gains %d experience.", w.Character.Name, in.Amount),
		Effects:   []effect.Effect{{Kind: effect.KindXPGained, Amount: in.Amount}},
	}
}

// resolveLevelUp emits LevelUp with the caller-supplied HitDieGain (at
// least 1) as the HP gain for the new level; it rolls nothing. The Open Question on
// whether HP gain is rolled or fixed is resolved by keeping that decision
// in the caller: HitDieGain already reflects it by the time it reaches
// Resolve.
func (e *Engine) resolveLevelUp(w *world.World, in intent.Intent) Resolution {
	gain := in.HitDieGain
	if gain < 1 {
		gain = 1
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s reaches level %d!", w.Character.Name, in.NewLevel),
		Effects:   []effect.Effect{{Kind: effect.KindLevelUp, NewLevel: in.NewLevel, HitDieGain: gain}},
	}
}

func resolveUseFeature(w *world.World, in intent.Intent) Resolution {
	f := w.Character.FindFeature(in.FeatureName)
	if f == nil {
		return noEffect(fmt.Sprintf("%s has no feature called %q.", w.Character.Name, in.FeatureName))
	}
	if f.Maximum > 0 && f.Current <= 0 {
		return noEffect(fmt.Sprintf("%s has no uses of %s left.", w.Character.Name, in.FeatureName))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s uses %s.", w.Character.Name, in.FeatureName),
		Effects:   []effect.Effect{{Kind: effect.KindFeatureUsed, FeatureName: in.FeatureName}},
	}
}

func resolveUseSpellSlot(w *world.World, in intent.Intent) Resolution {
	sc := w.Character.Spellcasting
	if sc == nil {
		return noEffect(fmt.Sprintf("%s is not a spellcaster.", w.Character.Name))
	}
	slot, ok := sc.Slots[in.SlotLevel]
	if !ok || slot.Used >= slot.Total {
		return noEffect(fmt.Sprintf("%s has no level %d spell slots remaining.", w.Character.Name, in.SlotLevel))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s expends a level %d spell slot.", w.Character.Name, in.SlotLevel),
		Effects:   []effect.Effect{{Kind: effect.KindSpellSlotUsed, SpellLevel: in.SlotLevel}},
	}
}

func resolveRestoreSpellSlot(w *world.World, in intent.Intent) Resolution {
	count := in.SlotCount
	if count < 1 {
		count = 1
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s recovers %d level %d spell slot(s).", w.Character.Name, count, in.SlotLevel),
		Effects:   []effect.Effect{{Kind: effect.KindSpellSlotRestored, SpellLevel: in.SlotLevel, SpellCount: count}},
	}
}
