package world

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/errs"
)

// CheckInvariants verifies the Character/World invariants that must hold
// after every applied Effect batch. It returns an
// *errs.Error with CodeInvariantBreach on the first violation found;
// callers should treat a non-nil result as a fatal engine bug
// and panic rather than try to recover gameplay state.
func CheckInvariants(w *World) error {
	c := w.Character

	if c.HP.Current < 0 || c.HP.Current > c.HP.Maximum {
		return invariantErr("hit_points.current out of [0, maximum]: %d/%d", c.HP.Current, c.HP.Maximum)
	}
	if c.HP.Temporary < 0 {
		return invariantErr("hit_points.temporary is negative: %d", c.HP.Temporary)
	}

	if c.Spellcasting != nil {
		for level, slot := range c.Spellcasting.Slots {
			if slot.Used > slot.Total {
				return invariantErr("spell slot level %d used %d exceeds total %d", level, slot.Used, slot.Total)
			}
		}
	}

	for _, f := range c.Features {
		if f.Maximum > 0 && (f.Current < 0 || f.Current > f.Maximum) {
			return invariantErr("feature %q uses out of [0, maximum]: %d/%d", f.Name, f.Current, f.Maximum)
		}
	}

	if c.Inventory.Gold < 0 {
		return invariantErr("gold is negative: %d", c.Inventory.Gold)
	}
	if c.Inventory.Silver < 0 {
		return invariantErr("silver is negative: %d", c.Inventory.Silver)
	}

	seen := make(map[ConditionKind]bool)
	for _, cond := range c.Conditions {
		if seen[cond.Kind] {
			return invariantErr("duplicate condition discriminant: %s", cond.Kind)
		}
		seen[cond.Kind] = true
		if cond.Kind == CondExhaustion {
			if cond.Level <= 0 || cond.Level > 6 {
				return invariantErr("exhaustion level out of (0, 6]: %d", cond.Level)
			}
		}
		if cond.RemainingRounds != nil && *cond.RemainingRounds == 0 {
			return invariantErr("condition %s kept with remaining_rounds=0", cond.Kind)
		}
	}

	if w.Mode == ModeCombat {
		if w.Combat == nil {
			return invariantErr("mode is Combat but CombatState is nil")
		}
		if len(w.Combat.Combatants) > 0 && w.Combat.TurnIndex >= len(w.Combat.Combatants) {
			return invariantErr("turn_index %d out of range [0, %d)", w.Combat.TurnIndex, len(w.Combat.Combatants))
		}
		for i := 1; i < len(w.Combat.Combatants); i++ {
			if w.Combat.Combatants[i].Initiative > w.Combat.Combatants[i-1].Initiative {
				return invariantErr("combatants not sorted by initiative descending at index %d", i)
			}
		}
	} else if w.Combat != nil {
		return invariantErr("mode is not Combat but CombatState is non-nil")
	}

	return nil
}

func invariantErr(format string, args ...any) error {
	return errs.InvariantViolation(fmt.Sprintf(format, args...))
}
