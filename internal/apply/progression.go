package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/mechanics"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// applyDeathSaveRecorded classifies the already-rolled outcome and hands it to mechanics.RecordDeathSave, which owns
// the three-successes/three-failures bookkeeping and Character.Dead.
func applyDeathSaveRecorded(w *world.World, e effect.Effect) {
	natural20 := e.DeathSaveOutcome == "natural20"
	natural1 := e.DeathSaveOutcome == "natural1"
	success := e.DeathSaveOutcome == "success"
	mechanics.RecordDeathSave(w.Character, natural20, natural1, success)
}

func applySpellSlotUsed(w *world.World, e effect.Effect) {
	sc := w.Character.Spellcasting
	if sc == nil {
		return
	}
	if slot, ok := sc.Slots[e.SpellLevel]; ok {
		slot.Used++
		if slot.Used > slot.Total {
			slot.Used = slot.Total
		}
	}
}

func applySpellSlotRestored(w *world.World, e effect.Effect) {
	sc := w.Character.Spellcasting
	if sc == nil {
		return
	}
	if slot, ok := sc.Slots[e.SpellLevel]; ok {
		slot.Used -= e.SpellCount
		if slot.Used < 0 {
			slot.Used = 0
		}
	}
}

func applyFeatureUsed(w *world.World, e effect.Effect) {
	f := w.Character.FindFeature(e.FeatureName)
	if f == nil || f.Maximum == 0 {
		return
	}
	f.Current--
	if f.Current < 0 {
		f.Current = 0
	}
}

// applyClassResourceChanged dispatches on the resource-name strings the
// Rules Engine's class-feature resolvers emit (internal/rules/classfeatures.go).
func applyClassResourceChanged(w *world.World, e effect.Effect) {
	c := w.Character
	r := &c.Resources
	switch e.ResourceName {
	case "rage_uses":
		r.RageUses = clampNonNegative(r.RageUses + e.ResourceDelta)
	case "ki":
		r.Ki = clampNonNegative(r.Ki + e.ResourceDelta)
	case "lay_on_hands":
		r.LayOnHandsPool = clampNonNegative(r.LayOnHandsPool + e.ResourceDelta)
	case "sorcery_points":
		r.SorceryPoints = clampNonNegative(r.SorceryPoints + e.ResourceDelta)
	case "second_wind_used":
		r.SecondWindUsed = e.ResourceDelta > 0
	case "action_surge_used":
		r.ActionSurgeUsed = e.ResourceDelta > 0
	case "channel_divinity_used":
		r.ChannelDivinityUsed = e.ResourceDelta > 0
	case "wild_shape_form":
		r.WildShapeForm = e.FeatureName
	case "wild_shape_hours":
		r.WildShapeHoursLeft = clampNonNegative(r.WildShapeHoursLeft + e.ResourceDelta)
	case "sneak_attack_used":
		if w.Combat != nil {
			w.Combat.SneakAttackUsedThisTurn = true
		}
		c.SneakAttackUsedThisTurn = true
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
