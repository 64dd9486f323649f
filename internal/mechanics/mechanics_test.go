package mechanics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func newTestCharacter() *world.Character {
	return &world.Character{
		Name:      "Test",
		Abilities: world.AbilityScores{world.Dexterity: 14},
		Level:     3,
		HP:        world.HitPoints{Current: 5, Maximum: 24},
		HitDice:   []world.HitDiceEntry{{Sides: 10, Total: 3, Remaining: 1}},
		Classes:   []world.ClassEntry{{Class: "Fighter", Level: 3}},
		Features: []*world.Feature{
			{Name: "Second Wind", Recharge: world.RecoveryShortOrLong, Current: 0, Maximum: 1},
			{Name: "Action Surge", Recharge: world.RecoveryShortRest, Current: 0, Maximum: 1},
		},
		Resources: world.ClassResources{ActionSurgeUsed: true, SecondWindUsed: true},
		Inventory: world.Inventory{},
	}
}

func TestShortRest_RechargesShortRestFeatures(t *testing.T) {
	c := newTestCharacter()
	recharged := ShortRest(c)
	assert.Contains(t, recharged, "Second Wind")
	assert.Contains(t, recharged, "Action Surge")
	assert.False(t, c.Resources.ActionSurgeUsed)
	assert.False(t, c.Resources.SecondWindUsed)
	assert.Equal(t, 5, c.HP.Current, "short rest alone does not heal HP")
}

func TestLongRest_FullyRestoresHPAndHitDiceAndFeatures(t *testing.T) {
	c := newTestCharacter()
	c.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}
	LongRest(c)
	assert.Equal(t, c.HP.Maximum, c.HP.Current)
	assert.Equal(t, 0, c.HP.Temporary)
	assert.Equal(t, 3, c.HitDice[0].Remaining, "half of 3 hit dice, rounded up, is 2 recovered")
	assert.Equal(t, 1, c.Features[0].Current)
	assert.Equal(t, 1, c.Features[1].Current)
	assert.Nil(t, c.ConditionOf(world.CondUnconscious))
}

func TestLongRest_ClearsOneLevelOfExhaustion(t *testing.T) {
	c := newTestCharacter()
	level := 2
	c.Conditions = []*world.ActiveCondition{{Kind: world.CondExhaustion, Level: level}}
	LongRest(c)
	cond := c.ConditionOf(world.CondExhaustion)
	if assert.NotNil(t, cond) {
		assert.Equal(t, 1, cond.Level)
	}
}

func TestLongRest_RemovesExhaustionAtLevelOne(t *testing.T) {
	c := newTestCharacter()
	c.Conditions = []*world.ActiveCondition{{Kind: world.CondExhaustion, Level: 1}}
	LongRest(c)
	assert.Nil(t, c.ConditionOf(world.CondExhaustion))
}

func TestLevelUp_FullCasterSlotsGrowAndPreserveUsage(t *testing.T) {
	c := newTestCharacter()
	c.Classes[0].Class = "Wizard"
	c.Level = 2
	c.Spellcasting = &world.Spellcasting{
		Slots: map[int]*world.SpellSlot{1: {Total: 3, Used: 2}},
	}
	LevelUp(c, 5)
	assert.Equal(t, 3, c.Level)
	assert.Equal(t, 4, c.Spellcasting.Slots[1].Total)
	assert.Equal(t, 2, c.Spellcasting.Slots[1].Used, "used count carries over across the level-up")
}

func TestLevelUp_BarbarianRageTableUpdates(t *testing.T) {
	c := newTestCharacter()
	c.Classes[0].Class = "Barbarian"
	c.Level = 2
	c.Resources.RageUses = 2
	c.Resources.RageUsesMax = 2
	LevelUp(c, 11)
	assert.Equal(t, 3, c.Resources.RageUsesMax)
	assert.Equal(t, 2, c.Resources.RageDamageBonus)
}

func TestRecordDeathSave_NaturalOneCountsTwoFailures(t *testing.T) {
	c := newTestCharacter()
	c.HP.Current = 0
	outcome := RecordDeathSave(c, false, true, false)
	assert.Equal(t, DeathSaveContinues, outcome)
	assert.Equal(t, 2, c.DeathSaves.Failures)
}

func TestRecordDeathSave_ThreeFailuresKills(t *testing.T) {
	c := newTestCharacter()
	c.DeathSaves.Failures = 2
	outcome := RecordDeathSave(c, false, false, false)
	assert.Equal(t, DeathSaveDied, outcome)
	assert.True(t, c.Dead)
}

func TestRecordDeathSave_NaturalTwentyStabilizesAndHeals(t *testing.T) {
	c := newTestCharacter()
	c.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}
	c.HP.Current = 0
	outcome := RecordDeathSave(c, true, false, true)
	assert.Equal(t, DeathSaveStabilized, outcome)
	assert.Equal(t, 1, c.HP.Current)
	assert.Nil(t, c.ConditionOf(world.CondUnconscious))
}

func TestRecordDeathSave_ThreeSuccessesStabilizeButStayUnconscious(t *testing.T) {
	c := newTestCharacter()
	c.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}
	c.HP.Current = 0
	c.DeathSaves.Successes = 2
	outcome := RecordDeathSave(c, false, false, true)
	assert.Equal(t, DeathSaveStabilized, outcome)
	assert.Equal(t, 0, c.HP.Current)
	assert.Equal(t, 0, c.DeathSaves.Successes, "saves reset on stabilization")
	assert.NotNil(t, c.ConditionOf(world.CondUnconscious), "stabilized is not conscious")
}

func TestApplyDamageToDying_OneFailureTwoIfCritical(t *testing.T) {
	c := newTestCharacter()
	c.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}
	c.HP.Current = 0

	died := ApplyDamageToDying(c, 3, false)
	assert.False(t, died)
	assert.Equal(t, 1, c.DeathSaves.Failures)

	died = ApplyDamageToDying(c, 3, true)
	assert.True(t, died, "two more failures from a critical reaches three")
	assert.True(t, c.Dead)
}

func TestApplyDamageToDying_MassiveDamageKillsOutright(t *testing.T) {
	c := newTestCharacter()
	c.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}
	died := ApplyDamageToDying(c, c.HP.Maximum, false)
	assert.True(t, died)
	assert.True(t, c.Dead)
}

func TestApplyDamageToDying_ConsciousCharacterUnaffected(t *testing.T) {
	c := newTestCharacter()
	died := ApplyDamageToDying(c, 999, false)
	assert.False(t, died)
	assert.False(t, c.Dead)
}

func TestAdvanceTurn_DecrementsConditionsAfterWrap(t *testing.T) {
	w := world.New(newTestCharacter())
	w.StartCombat()
	remaining := 1
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondPoisoned, RemainingRounds: &remaining}}
	w.Combat.AddCombatant(&world.Combatant{ID: "pc", IsPlayer: true, Initiative: 20})

	AdvanceTurn(w)

	assert.Nil(t, w.Character.ConditionOf(world.CondPoisoned), "condition should expire after the turn wraps")
}
