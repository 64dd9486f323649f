package apply

import (
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/mechanics"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// findCombatant resolves an Effect.Target against the active combat's
// roster, case-insensitively. A nil result means the effect concerns the
// player Character.
func findCombatant(w *world.World, name string) *world.Combatant {
	if name == "" || w.Combat == nil {
		return nil
	}
	for _, c := range w.Combat.Combatants {
		if world.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// applyHPChanged mutates either the player Character's HitPoints or a
// Combatant's CurrentHP: temporary HP absorbs damage
// first, current HP clamps to [0, maximum], dropping to 0 applies
// Unconscious (player only — monsters just die), and damage taken while already unconscious runs through
// mechanics.ApplyDamageToDying instead of a second independent clamp.
func applyHPChanged(w *world.World, e effect.Effect) {
	if cb := findCombatant(w, e.Target); cb != nil {
		applyCombatantHP(cb, e.Amount)
		return
	}
	applyCharacterHP(w, e.Amount, e.Critical)
}

func applyCombatantHP(cb *world.Combatant, amount int) {
	if amount < 0 {
		dmg := -amount
		if cb.TempHP > 0 {
			absorbed := cb.TempHP
			if absorbed > dmg {
				absorbed = dmg
			}
			cb.TempHP -= absorbed
			dmg -= absorbed
		}
		cb.CurrentHP -= dmg
		if cb.CurrentHP < 0 {
			cb.CurrentHP = 0
		}
		return
	}
	cb.CurrentHP += amount
	if cb.CurrentHP > cb.MaxHP {
		cb.CurrentHP = cb.MaxHP
	}
}

func applyCharacterHP(w *world.World, amount int, critical bool) {
	c := w.Character
	if c.Dead {
		// Past three failures there is no coming back through plain
		// damage or healing; only revival effects touch a dead character.
		return
	}
	if amount < 0 {
		dmg := -amount
		if c.IsUnconscious() {
			mechanics.ApplyDamageToDying(c, dmg, critical)
			return
		}
		if c.HP.Temporary > 0 {
			absorbed := c.HP.Temporary
			if absorbed > dmg {
				absorbed = dmg
			}
			c.HP.Temporary -= absorbed
			dmg -= absorbed
		}
		c.HP.Current -= dmg
		if c.HP.Current <= 0 {
			c.HP.Current = 0
			if !c.HasCondition(world.CondUnconscious) {
				c.Conditions = append(c.Conditions, &world.ActiveCondition{Kind: world.CondUnconscious, Source: "hp_zero"})
			}
		}
		return
	}

	c.HP.Current += amount
	if c.HP.Current > c.HP.Maximum {
		c.HP.Current = c.HP.Maximum
	}
	if c.HP.Current > 0 && c.HasCondition(world.CondUnconscious) {
		removeConditionKind(c, world.CondUnconscious)
		c.DeathSaves.Reset()
	}
}

func removeConditionKind(c *world.Character, kind world.ConditionKind) {
	out := c.Conditions[:0]
	for _, cond := range c.Conditions {
		if cond.Kind != kind {
			out = append(out, cond)
		}
	}
	c.Conditions = out
}
