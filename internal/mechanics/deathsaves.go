package mechanics

import "github.com/dungeonkeeper/dm-engine/internal/world"

// DeathSaveOutcome is the result of recording one death saving throw.
type DeathSaveOutcome string

const (
	DeathSaveContinues DeathSaveOutcome = "continues"
	DeathSaveStabilized DeathSaveOutcome = "stabilized"
	DeathSaveDied       DeathSaveOutcome = "died"
)

// RecordDeathSave applies one death-save roll to a dying character: a raw
// d20 of 1 counts as two failures, 20 restores 1 HP and clears the
// unconscious/dying state entirely, and three failures kill the character.
// Success/failure for 2..=19 is the caller's job (roll >= 10 succeeds) —
// this function only applies the already-classified outcome.
func RecordDeathSave(c *world.Character, natural20, natural1, success bool) DeathSaveOutcome {
	if natural20 {
		c.DeathSaves.Reset()
		c.HP.Current = 1
		removeCondition(c, world.CondUnconscious)
		return DeathSaveStabilized
	}

	if natural1 {
		c.DeathSaves.Failures += 2
	} else if success {
		c.DeathSaves.Successes++
	} else {
		c.DeathSaves.Failures++
	}

	if c.DeathSaves.Failures >= 3 {
		c.Dead = true
		return DeathSaveDied
	}
	if c.DeathSaves.Successes >= 3 {
		// Stabilized, but still at 0 HP and unconscious until healed.
		c.DeathSaves.Reset()
		return DeathSaveStabilized
	}
	return DeathSaveContinues
}

// ApplyDamageToDying applies damage taken while unconscious: one death-save
// failure (two on a critical hit), or instant death if the amount meets or
// exceeds max HP. It returns true if the character dies.
func ApplyDamageToDying(c *world.Character, amount int, critical bool) (died bool) {
	if !c.IsUnconscious() {
		return false
	}
	if amount >= c.HP.Maximum {
		c.Dead = true
		return true
	}
	c.DeathSaves.Failures++
	if critical {
		c.DeathSaves.Failures++
	}
	if c.DeathSaves.Failures >= 3 {
		c.Dead = true
		return true
	}
	return false
}
