package apply

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

type sequentialGen struct{ n int }

func (g *sequentialGen) New() uuid.UUID {
	g.n++
	var u uuid.UUID
	u[15] = byte(g.n)
	return u
}

func newTestWorld() *world.World {
	c := &world.Character{
		Name:      "Aria",
		Abilities: world.AbilityScores{world.Dexterity: 14, world.Strength: 10},
		Level:     3,
		HP:        world.HitPoints{Current: 20, Maximum: 20},
		Resources: world.ClassResources{RageUsesMax: 3},
		Classes:   []world.ClassEntry{{Class: "Fighter", Level: 3}},
	}
	return world.New(c)
}

func newTestApplier() *Applier {
	return &Applier{Gen: &sequentialGen{}, Content: nil}
}

func TestApply_HPChangedDamageDropsToUnconsciousAtZero(t *testing.T) {
	w := newTestWorld()
	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{{Kind: effect.KindHPChanged, Amount: -20, Reason: "fall"}})
	require.NoError(t, err)
	assert.Equal(t, 0, w.Character.HP.Current)
	assert.True(t, w.Character.IsUnconscious())
}

func TestApply_HPChangedHealingClearsUnconsciousAndResetsDeathSaves(t *testing.T) {
	w := newTestWorld()
	w.Character.HP.Current = 0
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}
	w.Character.DeathSaves.Successes = 2

	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{{Kind: effect.KindHPChanged, Amount: 8, Reason: "heal"}})
	require.NoError(t, err)
	assert.Equal(t, 8, w.Character.HP.Current)
	assert.False(t, w.Character.IsUnconscious())
	assert.Equal(t, 0, w.Character.DeathSaves.Successes)
}

func TestApply_ConditionAppliedReplacesExhaustionLevelNotStacks(t *testing.T) {
	w := newTestWorld()
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondExhaustion, Level: 2}}
	a := newTestApplier()

	err := a.Apply(w, []effect.Effect{{Kind: effect.KindConditionApplied, ConditionKind: "exhaustion", ExhaustionLevel: 3}})
	require.NoError(t, err)

	cond := w.Character.ConditionOf(world.CondExhaustion)
	require.NotNil(t, cond)
	assert.Equal(t, 3, cond.Level)
	assert.Len(t, w.Character.Conditions, 1, "exhaustion never duplicates")
}

func TestApply_CombatStartedThenCombatantAdded(t *testing.T) {
	w := newTestWorld()
	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{
		{Kind: effect.KindCombatStarted},
		{Kind: effect.KindCombatantAdded, CombatantName: "Goblin", CombatantInitiative: 15, CombatantMaxHP: 7, CombatantAC: 13},
	})
	require.NoError(t, err)
	require.NotNil(t, w.Combat)
	require.Len(t, w.Combat.Combatants, 1)
	assert.Equal(t, "Goblin", w.Combat.Combatants[0].Name)
	assert.Equal(t, 7, w.Combat.Combatants[0].CurrentHP)
}

func TestApply_RestTakenLongRestFullyHeals(t *testing.T) {
	w := newTestWorld()
	w.Character.HP.Current = 1
	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{{Kind: effect.KindRestTaken, RestKind: "long"}})
	require.NoError(t, err)
	assert.Equal(t, w.Character.HP.Maximum, w.Character.HP.Current)
	assert.Equal(t, int64(480), w.GameTime.ElapsedMinutes)
}

func TestApply_ItemAddedStacksPotionsByName(t *testing.T) {
	w := newTestWorld()
	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{
		{Kind: effect.KindItemAdded, ItemName: "Potion of Healing", ItemType: string(world.ItemPotion), Quantity: 2},
		{Kind: effect.KindItemAdded, ItemName: "Potion of Healing", ItemType: string(world.ItemPotion), Quantity: 1},
	})
	require.NoError(t, err)
	stack := w.Character.Inventory.FindStack("potion of healing")
	require.NotNil(t, stack)
	assert.Equal(t, 3, stack.Quantity)
}

func TestApply_ItemEquippedTwoHandedWeaponDropsShield(t *testing.T) {
	w := newTestWorld()
	w.Character.Inventory.Items = []*world.ItemStack{
		{Name: "Greatsword", Type: world.ItemWeapon, Quantity: 1, TwoHanded: true},
	}
	w.Character.Equipment.Shield = &world.ItemStack{Name: "Shield", Type: world.ItemShield, Quantity: 1}

	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{{Kind: effect.KindItemEquipped, ItemName: "Greatsword", Slot: string(world.SlotMainHand)}})
	require.NoError(t, err)
	assert.NotNil(t, w.Character.Equipment.MainHand)
	assert.Nil(t, w.Character.Equipment.Shield)
	assert.Nil(t, w.Character.Inventory.FindStack("Greatsword"), "the equipped weapon left the inventory")
	assert.NotNil(t, w.Character.Inventory.FindStack("Shield"), "the bumped shield returned to the inventory")
}

func TestApply_ItemEquipUnequipRoundTripsThroughInventory(t *testing.T) {
	w := newTestWorld()
	w.Character.Inventory.Items = []*world.ItemStack{
		{Name: "Longsword", Type: world.ItemWeapon, Quantity: 1},
	}

	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{{Kind: effect.KindItemEquipped, ItemName: "Longsword", Slot: string(world.SlotMainHand)}})
	require.NoError(t, err)
	assert.NotNil(t, w.Character.Equipment.MainHand)
	assert.Empty(t, w.Character.Inventory.Items, "equipping moves the item, not copies it")

	err = a.Apply(w, []effect.Effect{{Kind: effect.KindItemUnequipped, Slot: string(world.SlotMainHand)}})
	require.NoError(t, err)
	assert.Nil(t, w.Character.Equipment.MainHand)
	stack := w.Character.Inventory.FindStack("Longsword")
	require.NotNil(t, stack, "unequipping returns the item to the inventory")
	assert.Equal(t, 1, stack.Quantity)
}

func TestApply_QuestCreatedThenObjectiveCompletedBySubstring(t *testing.T) {
	w := newTestWorld()
	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{
		{Kind: effect.KindQuestCreated, QuestName: "Clear the Cellar"},
	})
	require.NoError(t, err)
	var qID string
	for id := range w.Quests {
		qID = id.String()
	}
	require.NotEmpty(t, qID)

	err = a.Apply(w, []effect.Effect{
		{Kind: effect.KindQuestObjectiveAdded, QuestName: "Clear the Cellar", ObjectiveText: "Defeat the giant rats"},
		{Kind: effect.KindQuestObjectiveCompleted, QuestName: "Clear the Cellar", ObjectiveText: "giant rats"},
	})
	require.NoError(t, err)

	q := w.FindQuestByName("Clear the Cellar")
	require.NotNil(t, q)
	require.Len(t, q.Objectives, 1)
	assert.True(t, q.Objectives[0].Completed)
}

func TestApply_NpcCreatedThenStateAssertedSetsDisposition(t *testing.T) {
	w := newTestWorld()
	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{{Kind: effect.KindNpcCreated, NPCName: "Borin", Description: "a gruff blacksmith"}})
	require.NoError(t, err)

	err = a.Apply(w, []effect.Effect{{Kind: effect.KindStateAsserted, EntityName: "Borin", StateType: "disposition", NewValue: "friendly"}})
	require.NoError(t, err)

	npc := w.FindNPCByName("borin")
	require.NotNil(t, npc)
	assert.Equal(t, world.DispositionFriendly, npc.Disposition)
}

func TestApply_DeathSaveRecordedThreeFailuresKillsCharacter(t *testing.T) {
	w := newTestWorld()
	w.Character.HP.Current = 0
	w.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious}}
	w.Character.DeathSaves.Failures = 2

	a := newTestApplier()
	err := a.Apply(w, []effect.Effect{{Kind: effect.KindDeathSaveRecorded, DeathSaveOutcome: "failure"}})
	require.NoError(t, err)
	assert.True(t, w.Character.Dead)
}
