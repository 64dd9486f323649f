package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// conditionsOf returns a pointer to the condition slice effect.Target
// owns — the player Character's when Target is empty, a live Combatant's
// when it names one in the active fight — so callers can append/filter
// in place.
func conditionsOf(w *world.World, target string) *[]*world.ActiveCondition {
	if cb := findCombatant(w, target); cb != nil {
		return &cb.Conditions
	}
	return &w.Character.Conditions
}

// applyConditionApplied installs a condition, keeping at most one
// condition of each discriminant per target: Exhaustion replaces its level in place,
// everything else replaces source/duration of an existing entry of the
// same kind rather than duplicating it.
func applyConditionApplied(w *world.World, e effect.Effect) {
	slice := conditionsOf(w, e.Target)
	kind := world.ConditionKind(e.ConditionKind)

	for _, cond := range *slice {
		if cond.Kind == kind {
			cond.Source = e.ConditionSource
			cond.RemainingRounds = e.DurationRounds
			if kind == world.CondExhaustion {
				level := e.ExhaustionLevel
				if level < 1 {
					level = 1
				}
				if level > 6 {
					level = 6
				}
				cond.Level = level
			}
			return
		}
	}

	level := e.ExhaustionLevel
	if kind == world.CondExhaustion && level < 1 {
		level = 1
	}
	*slice = append(*slice, &world.ActiveCondition{
		Kind: kind, Source: e.ConditionSource, Level: level, RemainingRounds: e.DurationRounds,
	})
}

func applyConditionRemoved(w *world.World, e effect.Effect) {
	slice := conditionsOf(w, e.Target)
	kind := world.ConditionKind(e.ConditionKind)
	out := (*slice)[:0]
	for _, cond := range *slice {
		if cond.Kind != kind {
			out = append(out, cond)
		}
	}
	*slice = out
}
