package mechanics

import "github.com/dungeonkeeper/dm-engine/internal/world"

// LevelUp advances a character's primary class by one level. hitDieGain is
// the HP increase for this level (caller supplies either a rolled value or
// the fixed average, per the Intent's request — rolling itself is the Roller's
// job, not this function's). Spell-slot and class-resource tables are
// recalculated from the step tables in world.FullCasterSlotTable/
// WarlockPactSlots/RageUsesForLevel/RageDamageBonusForLevel, preserving
// already-spent slot/resource usage where the new total still covers it.
func LevelUp(c *world.Character, hitDieGain int) {
	c.Level++
	c.HP.Maximum += hitDieGain
	c.HP.Current += hitDieGain

	if len(c.Classes) > 0 {
		c.Classes[0].Level++
	}

	if len(c.HitDice) > 0 {
		hd := &c.HitDice[len(c.HitDice)-1]
		hd.Total++
		hd.Remaining++
	}

	switch primaryClassName(c) {
	case "wizard", "sorcerer", "cleric", "druid", "bard":
		updateFullCasterSlots(c)
	case "warlock":
		updateWarlockSlots(c)
	case "barbarian":
		c.Resources.RageUsesMax = world.RageUsesForLevel(c.Level)
		if c.Resources.RageUses > c.Resources.RageUsesMax && c.Resources.RageUsesMax != 0 {
			c.Resources.RageUses = c.Resources.RageUsesMax
		}
		c.Resources.RageDamageBonus = world.RageDamageBonusForLevel(c.Level)
	case "monk":
		c.Resources.KiMax = c.Level
		if c.Resources.Ki > c.Resources.KiMax {
			c.Resources.Ki = c.Resources.KiMax
		}
	case "paladin":
		c.Resources.LayOnHandsMax = c.Level * 5
		if c.Resources.LayOnHandsPool > c.Resources.LayOnHandsMax {
			c.Resources.LayOnHandsPool = c.Resources.LayOnHandsMax
		}
	}

	if world.EqualFold(primaryClassName(c), "sorcerer") {
		c.Resources.SorceryPointsMax = c.Level
		if c.Resources.SorceryPoints > c.Resources.SorceryPointsMax {
			c.Resources.SorceryPoints = c.Resources.SorceryPointsMax
		}
	}
}

func primaryClassName(c *world.Character) string {
	if len(c.Classes) == 0 {
		return ""
	}
	return lowerClassName(c.Classes[0].Class)
}

func lowerClassName(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}

func updateFullCasterSlots(c *world.Character) {
	if c.Spellcasting == nil {
		return
	}
	table := world.FullCasterSlotTable(c.Level)
	newSlots := make(map[int]*world.SpellSlot, len(table))
	for level, total := range table {
		used := 0
		if old, ok := c.Spellcasting.Slots[level]; ok {
			used = old.Used
			if used > total {
				used = total
			}
		}
		newSlots[level] = &world.SpellSlot{Total: total, Used: used}
	}
	c.Spellcasting.Slots = newSlots
}

func updateWarlockSlots(c *world.Character) {
	if c.Spellcasting == nil {
		return
	}
	slotLevel, count := world.WarlockPactSlots(c.Level)
	used := 0
	for _, old := range c.Spellcasting.Slots {
		if old.Used > used {
			used = old.Used
		}
	}
	if used > count {
		used = count
	}
	c.Spellcasting.Slots = map[int]*world.SpellSlot{
		slotLevel: {Total: count, Used: used},
	}
}
