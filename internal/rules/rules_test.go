package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	mockcontent "github.com/dungeonkeeper/dm-engine/internal/mocks/content"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func testEngine(roller dice.Roller) *Engine {
	return &Engine{Roller: roller, Content: content.NewTableProvider()}
}

func testWorld() *world.World {
	return world.New(&world.Character{
		Name:      "Kira",
		Abilities: world.AbilityScores{world.Strength: 10, world.Dexterity: 14, world.Constitution: 12},
		Level:     5,
		HP:        world.HitPoints{Current: 30, Maximum: 30},
		Classes:   []world.ClassEntry{{Class: "rogue", Level: 5}},
		Inventory: world.Inventory{Gold: 5},
	})
}

func TestResolveCheck_SuccessAgainstDC(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller(14))
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindSkillCheck, Skill: "perception", Ability: "WIS", DC: 15, Modifier: 3})

	assert.Contains(t, res.Narrative, "succeeds")
	assert.Contains(t, res.Narrative, "rolled 17 vs DC 15")
	assert.Empty(t, res.Effects)
}

func TestResolveCheck_UnconsciousAutoFailsDexterity(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller(20))
	w := testWorld()
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindAbilityCheck, Ability: "DEX", DC: 5})

	assert.Contains(t, res.Narrative, "unconscious")
	assert.Contains(t, res.Narrative, "automatically fails")
	assert.Empty(t, res.Effects)
}

func TestResolveCheck_UnconsciousStillRollsMentalChecks(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller(12))
	w := testWorld()
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindAbilityCheck, Ability: "WIS", DC: 10})

	assert.Contains(t, res.Narrative, "succeeds")
}

func TestResolveCheck_StealthInNoisyArmorRollsDisadvantage(t *testing.T) {
	// Two queued rolls: disadvantage consumes both and keeps the lower.
	roller := dice.NewManualMockRoller(18, 4)
	e := testEngine(roller)
	w := testWorld()
	w.Character.Equipment.Armor = &world.ItemStack{
		Name: "Plate", Type: world.ItemArmor,
		Properties: map[string]string{"stealth_disadvantage": "true"},
	}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindSkillCheck, Skill: "stealth", Ability: "DEX", DC: 15, Modifier: 2, IsStealth: true})

	assert.Contains(t, res.Narrative, "[armor disadvantage]")
	assert.Contains(t, res.Narrative, "rolled 6 vs DC 15")
	assert.Contains(t, res.Narrative, "fails")
}

func TestResolveSave_UnconsciousAutoFailsStrength(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindSavingThrow, Ability: "STR", DC: 10})

	assert.Contains(t, res.Narrative, "automatically fails")
	assert.Empty(t, res.Effects)
}

func TestResolveDamage_EmitsNegativeHPChange(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindDamage, Amount: 10, DamageType: "slashing", Source: "sword", TargetName: "Kobold"})

	require.Len(t, res.Effects, 1)
	assert.Equal(t, effect.KindHPChanged, res.Effects[0].Kind)
	assert.Equal(t, -10, res.Effects[0].Amount)
	assert.Equal(t, "Kobold", res.Effects[0].Target)
}

func TestResolveDivineSmite_ConsumesSlotAndRollsThreeDiceAtSecondLevel(t *testing.T) {
	roller := dice.NewManualMockRoller(4, 5, 6)
	e := testEngine(roller)
	w := testWorld()
	w.Character.Spellcasting = &world.Spellcasting{
		Slots: map[int]*world.SpellSlot{2: {Total: 2, Used: 0}},
	}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindDivineSmite, SlotLevel: 2, TargetName: "Wight"})

	require.Len(t, res.Effects, 2)
	assert.Equal(t, effect.KindSpellSlotUsed, res.Effects[0].Kind)
	assert.Equal(t, 2, res.Effects[0].SpellLevel)
	assert.Equal(t, effect.KindHPChanged, res.Effects[1].Kind)
	assert.Equal(t, -15, res.Effects[1].Amount, "3d8 rolled as 4+5+6")
}

func TestResolveDivineSmite_UndeadTargetAddsADie(t *testing.T) {
	roller := dice.NewManualMockRoller(1, 1, 1, 1)
	e := testEngine(roller)
	w := testWorld()
	w.Character.Spellcasting = &world.Spellcasting{
		Slots: map[int]*world.SpellSlot{2: {Total: 1, Used: 0}},
	}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindDivineSmite, SlotLevel: 2, TargetName: "Wight", UndeadOrFiendTarget: true})

	require.Len(t, res.Effects, 2)
	assert.Equal(t, -4, res.Effects[1].Amount, "four dice against undead at slot level 2")
}

func TestResolveDivineSmite_NoSlotIsARuleViolation(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()
	w.Character.Spellcasting = &world.Spellcasting{
		Slots: map[int]*world.SpellSlot{2: {Total: 1, Used: 1}},
	}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindDivineSmite, SlotLevel: 2})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "no level 2 spell slot")
}

func TestSneakAttackDice_CeilOfHalfLevel(t *testing.T) {
	expected := map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 10: 5, 19: 10, 20: 10}
	for level, want := range expected {
		assert.Equal(t, want, SneakAttackDice(level), "level %d", level)
	}
}

func TestResolveSneakAttack_OncePerTurnInCombat(t *testing.T) {
	roller := dice.NewManualMockRoller(3, 4, 5)
	e := testEngine(roller)
	w := testWorld()
	w.StartCombat()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindSneakAttack, TargetName: "Guard"})
	require.Len(t, res.Effects, 2, "level 5 rogue rolls 3d6")
	assert.Equal(t, -12, res.Effects[1].Amount)

	w.Combat.SneakAttackUsedThisTurn = true
	res = e.Resolve(w, intent.Intent{Kind: intent.KindSneakAttack, TargetName: "Guard"})
	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "already used sneak attack")
}

func TestResolveItemEquip_RejectsItemNotInInventory(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindItemEquip, ItemName: "Greatsword", Slot: "main_hand"})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "doesn't have")
}

func TestResolveItemEquip_RejectsTypeSlotMismatch(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()
	w.Character.Inventory.Items = []*world.ItemStack{{Name: "Potion of Healing", Type: world.ItemPotion, Quantity: 1}}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindItemEquip, ItemName: "Potion of Healing", Slot: "main_hand"})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "can't be equipped")
}

func TestResolveItemEquip_TwoHandedWeaponConflictsWithShield(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockcontent.NewMockProvider(ctrl)
	provider.EXPECT().Weapon("Greatsword").Return(content.WeaponStats{DamageDice: "2d6", TwoHanded: true}, true).AnyTimes()

	e := &Engine{Roller: dice.NewManualMockRoller(), Content: provider}
	w := testWorld()
	w.Character.Inventory.Items = []*world.ItemStack{{Name: "Greatsword", Type: world.ItemWeapon, Quantity: 1}}
	w.Character.Equipment.Shield = &world.ItemStack{Name: "Shield", Type: world.ItemShield}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindItemEquip, ItemName: "Greatsword", Slot: "main_hand"})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "two-handed")
}

func TestResolveItemEquip_HeavyArmorBelowStrengthStillEquipsWithPenaltyNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockcontent.NewMockProvider(ctrl)
	provider.EXPECT().Weapon(gomock.Any()).Return(content.WeaponStats{}, false).AnyTimes()
	provider.EXPECT().Armor("Plate").Return(content.ArmorStats{BaseAC: 18, MaxDexBonus: 0, StrengthRequirement: 15, StealthDisadvantage: true}, true).AnyTimes()

	e := &Engine{Roller: dice.NewManualMockRoller(), Content: provider}
	w := testWorld()
	w.Character.Inventory.Items = []*world.ItemStack{{Name: "Plate", Type: world.ItemArmor, Quantity: 1}}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindItemEquip, ItemName: "Plate", Slot: "armor"})

	require.Len(t, res.Effects, 1, "the armor equips despite the strength shortfall")
	assert.Equal(t, effect.KindItemEquipped, res.Effects[0].Kind)
	assert.Contains(t, res.Narrative, "too heavy")
}

func TestResolveDeathSave_ClassifiesRolls(t *testing.T) {
	w := testWorld()
	w.Character.HP.Current = 0
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}

	cases := []struct {
		roll    int
		outcome string
	}{
		{8, "failure"},
		{14, "success"},
		{1, "natural1"},
		{20, "natural20"},
	}
	for _, tc := range cases {
		e := testEngine(dice.NewManualMockRoller(tc.roll))
		res := e.Resolve(w, intent.Intent{Kind: intent.KindDeathSave})
		require.Len(t, res.Effects, 1, "roll %d", tc.roll)
		assert.Equal(t, tc.outcome, res.Effects[0].DeathSaveOutcome, "roll %d", tc.roll)
	}
}

func TestResolveDeathSave_ConsciousCharacterIsARuleViolation(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller(10))
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindDeathSave})

	assert.Empty(t, res.Effects)
}

func TestResolveAttack_MissProducesNoEffects(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller(5))
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindAttack, TargetName: "Bandit", DC: 15, Modifier: 4, ItemName: "Shortsword"})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "misses")
}

func TestResolveAttack_CriticalDoublesDamageDice(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockcontent.NewMockProvider(ctrl)
	provider.EXPECT().Weapon("Shortsword").Return(content.WeaponStats{DamageDice: "1d6", DamageType: "piercing"}, true).AnyTimes()

	// Attack d20 then two d6 for the doubled critical damage.
	e := &Engine{Roller: dice.NewManualMockRoller(20, 4, 6), Content: provider}
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindAttack, TargetName: "Bandit", DC: 15, Modifier: 2, ItemName: "Shortsword", Amount: 3})

	require.Len(t, res.Effects, 1)
	assert.Equal(t, -13, res.Effects[0].Amount, "4+6 rolled plus 3 flat")
	assert.Contains(t, res.Narrative, "critical")
}

func TestResolveRage_NoUsesLeftIsARuleViolation(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()
	w.Character.Resources.RageUsesMax = 3
	w.Character.Resources.RageUses = 0

	res := e.Resolve(w, intent.Intent{Kind: intent.KindRage})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "no rages left")
}

func TestResolveSecondWind_RollsD10PlusLevel(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller(7))
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindSecondWind})

	require.Len(t, res.Effects, 2)
	assert.Equal(t, effect.KindHPChanged, res.Effects[1].Kind)
	assert.Equal(t, 12, res.Effects[1].Amount, "1d10 rolled as 7 plus level 5")

	w.Character.Resources.SecondWindUsed = true
	res = e.Resolve(w, intent.Intent{Kind: intent.KindSecondWind})
	assert.Empty(t, res.Effects)
}

func TestResolveGoldDelta_InsufficientGoldIsARuleViolation(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindGoldDelta, GoldDelta: -20})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "enough gold")
}

func TestResolveUseSpellSlot_ExhaustedSlotIsARuleViolation(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()
	w.Character.Spellcasting = &world.Spellcasting{
		Slots: map[int]*world.SpellSlot{3: {Total: 2, Used: 2}},
	}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindUseSpellSlot, SlotLevel: 3})

	assert.Empty(t, res.Effects)
	assert.Contains(t, res.Narrative, "no level 3 spell slots")
}

func TestResolveWildShape_DurationScalesWithLevel(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()
	w.Character.Level = 8
	w.Character.Classes = []world.ClassEntry{{Class: "druid", Level: 8}}
	w.Character.Features = []*world.Feature{{Name: "Wild Shape", Recharge: world.RecoveryShortOrLong, Current: 2, Maximum: 2}}

	res := e.Resolve(w, intent.Intent{Kind: intent.KindWildShape, ConditionSource: "dire wolf"})

	require.Len(t, res.Effects, 3)
	assert.Equal(t, effect.KindFeatureUsed, res.Effects[0].Kind)
	assert.Equal(t, 4, res.Effects[2].ResourceDelta, "level 8 druid holds the form for 4 hours")
}

func TestResolveEndWildShape_ExcessDamageCarriesOver(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	w := testWorld()

	res := e.Resolve(w, intent.Intent{Kind: intent.KindEndWildShape, ConditionSource: "HpZero", Amount: 6})

	require.Len(t, res.Effects, 2)
	assert.Equal(t, effect.KindHPChanged, res.Effects[1].Kind)
	assert.Equal(t, -6, res.Effects[1].Amount)
}

func TestResolve_UnknownKindHasNoEffects(t *testing.T) {
	e := testEngine(dice.NewManualMockRoller())
	res := e.Resolve(testWorld(), intent.Intent{Kind: "polymorph_the_dm"})
	assert.Empty(t, res.Effects)
}
