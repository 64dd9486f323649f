// Package mechanics implements the deterministic game-state transitions:
// rest recovery, level-up progression, and death saves. Plain functions
// over *world.Character/*world.World.
package mechanics

import "github.com/dungeonkeeper/dm-engine/internal/world"

// ShortRest recharges short-rest features, ki, Action Surge, Second Wind
// and warlock pact slots. It does not touch hit dice or HP: spending hit
// dice to heal is a separate Heal effect. Returns the names of features
// that recharged.
func ShortRest(c *world.Character) []string {
	var recharged []string
	for _, f := range c.Features {
		if f.Maximum == 0 {
			continue
		}
		if f.Recharge == world.RecoveryShortRest || f.Recharge == world.RecoveryShortOrLong {
			if f.Current < f.Maximum {
				f.Current = f.Maximum
				recharged = append(recharged, f.Name)
			}
		}
	}

	if c.Resources.Ki > 0 || c.Resources.KiMax > 0 {
		c.Resources.Ki = c.Resources.KiMax
	}
	c.Resources.ActionSurgeUsed = false
	c.Resources.SecondWindUsed = false

	if isWarlock(c) && c.Spellcasting != nil {
		for _, slot := range c.Spellcasting.Slots {
			slot.Used = 0
		}
	}

	return recharged
}

// LongRest fully restores HP, half of total hit dice (rounded up, capped
// at each die type's total), all spell slots, all recovery-eligible
// features, and clears one level of exhaustion. Returns the names of
// features that recharged.
func LongRest(c *world.Character) []string {
	c.HP.Current = c.HP.Maximum
	c.HP.Temporary = 0
	c.DeathSaves.Reset()
	removeCondition(c, world.CondUnconscious)

	for i := range c.HitDice {
		hd := &c.HitDice[i]
		recovered := (hd.Total + 1) / 2
		hd.Remaining += recovered
		if hd.Remaining > hd.Total {
			hd.Remaining = hd.Total
		}
	}

	var recharged []string
	for _, f := range c.Features {
		if f.Maximum == 0 || f.Recharge == world.RecoveryNone {
			continue
		}
		if f.Current < f.Maximum {
			f.Current = f.Maximum
			recharged = append(recharged, f.Name)
		}
	}

	if c.Spellcasting != nil {
		for _, slot := range c.Spellcasting.Slots {
			slot.Used = 0
		}
		c.Spellcasting.Concentrating = ""
	}

	c.Resources.RageUses = c.Resources.RageUsesMax
	c.Resources.SorceryPoints = c.Resources.SorceryPointsMax
	c.Resources.LayOnHandsPool = c.Resources.LayOnHandsMax
	c.Resources.ActionSurgeUsed = false
	c.Resources.SecondWindUsed = false
	c.Resources.ChannelDivinityUsed = false
	c.Resources.WildShapeForm = ""
	c.Resources.WildShapeHoursLeft = 0

	if exh := c.ConditionOf(world.CondExhaustion); exh != nil {
		exh.Level--
		if exh.Level <= 0 {
			removeCondition(c, world.CondExhaustion)
		}
	}

	return recharged
}

func removeCondition(c *world.Character, kind world.ConditionKind) {
	out := c.Conditions[:0]
	for _, cond := range c.Conditions {
		if cond.Kind != kind {
			out = append(out, cond)
		}
	}
	c.Conditions = out
}

func isWarlock(c *world.Character) bool {
	for _, cls := range c.Classes {
		if world.EqualFold(cls.Class, "warlock") {
			return true
		}
	}
	return false
}
