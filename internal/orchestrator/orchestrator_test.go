package orchestrator

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonkeeper/dm-engine/internal/apply"
	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/memory"
	"github.com/dungeonkeeper/dm-engine/internal/modelclient"
	"github.com/dungeonkeeper/dm-engine/internal/rules"
	"github.com/dungeonkeeper/dm-engine/internal/tools"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func newTestSession(client modelclient.ModelClient, roller dice.Roller) *Session {
	gen := id.NewGoogleUUIDGenerator()
	w := world.New(&world.Character{
		Name:      "Vex",
		Abilities: world.AbilityScores{world.Strength: 10, world.Dexterity: 14, world.Constitution: 12, world.Charisma: 16},
		Level:     5,
		HP:        world.HitPoints{Current: 20, Maximum: 20},
		Classes:   []world.ClassEntry{{Class: "sorcerer", Level: 5}},
		Inventory: world.Inventory{Gold: 10},
	})
	mem := memory.New(gen)

	engine := &rules.Engine{Roller: roller, Content: content.NewTableProvider()}
	applier := &apply.Applier{Gen: gen, Content: content.NewTableProvider()}

	cfg := DefaultConfig()
	cfg.NarrativeModel = "test-model"
	cfg.FastModel = "test-model"
	return New(w, mem, client, tools.NewRegistry(), engine, applier, gen, cfg)
}

func textResponse(text string) modelclient.Response {
	return modelclient.Response{
		StopReason: modelclient.StopEndTurn,
		Content:    []modelclient.ContentBlock{{Kind: modelclient.BlockText, Text: text}},
	}
}

func toolUse(callID, name, input string) modelclient.ContentBlock {
	return modelclient.ContentBlock{Kind: modelclient.BlockToolUse, ToolUseID: callID, ToolName: name, ToolInput: input}
}

func emptyInference() modelclient.Response {
	return textResponse(`{"inferred_changes":[]}`)
}

func TestPlayerAction_ToolLoopAppliesEffectsAndConcatenatesNarrative(t *testing.T) {
	client := modelclient.NewScriptedClient(
		modelclient.Response{
			StopReason: modelclient.StopToolUse,
			Content: []modelclient.ContentBlock{
				{Kind: modelclient.BlockText, Text: "A goblin lunges! "},
				toolUse("t1", "apply_damage", `{"amount":5,"damage_type":"slashing","source":"goblin"}`),
			},
		},
		textResponse("You stagger, but hold your ground."),
		emptyInference(),
	)
	s := newTestSession(client, dice.NewManualMockRoller())

	resp, err := s.PlayerAction(context.Background(), "I charge the goblin")

	require.NoError(t, err)
	assert.Equal(t, "A goblin lunges! You stagger, but hold your ground.", resp.Narrative)
	require.Len(t, resp.Effects, 1)
	assert.Equal(t, effect.KindHPChanged, resp.Effects[0].Kind)
	assert.Equal(t, 15, s.World.Character.HP.Current)

	// The second model call carries the tool result back.
	require.GreaterOrEqual(t, len(client.Calls), 2)
	secondCall := client.Calls[1]
	last := secondCall.Messages[len(secondCall.Messages)-1]
	require.Len(t, last.Content, 1)
	assert.Equal(t, modelclient.BlockToolResult, last.Content[0].Kind)
	assert.Equal(t, "t1", last.Content[0].ToolResultForID)
}

func TestPlayerAction_InvalidToolArgumentsBecomeANoOpResult(t *testing.T) {
	client := modelclient.NewScriptedClient(
		modelclient.Response{
			StopReason: modelclient.StopToolUse,
			Content:    []modelclient.ContentBlock{toolUse("t1", "apply_damage", `{"amount":0}`)},
		},
		textResponse("Nothing happens."),
		emptyInference(),
	)
	s := newTestSession(client, dice.NewManualMockRoller())

	resp, err := s.PlayerAction(context.Background(), "poke the wall")

	require.NoError(t, err)
	assert.Empty(t, resp.Effects)
	assert.Equal(t, 20, s.World.Character.HP.Current, "zero damage is dropped at the parser")
}

func TestPlayerAction_ModelErrorLeavesWorldUntouched(t *testing.T) {
	client := modelclient.NewScriptedClient() // exhausted immediately
	s := newTestSession(client, dice.NewManualMockRoller())

	_, err := s.PlayerAction(context.Background(), "hello?")

	require.Error(t, err)
	assert.Equal(t, 20, s.World.Character.HP.Current)
	assert.Empty(t, s.Memory.Facts())
}

func TestPlayerAction_FireballBurnsASlotAndTheKobolds(t *testing.T) {
	client := modelclient.NewScriptedClient(
		modelclient.Response{
			StopReason: modelclient.StopToolUse,
			Content: []modelclient.ContentBlock{
				{Kind: modelclient.BlockText, Text: "Flame blossoms across the cavern. "},
				toolUse("t1", "use_spell_slot", `{"slot_level":3}`),
				toolUse("t2", "saving_throw", `{"ability":"DEX","dc":15,"modifier":2,"target_name":"Kobold A"}`),
				toolUse("t3", "saving_throw", `{"ability":"DEX","dc":15,"modifier":2,"target_name":"Kobold B"}`),
				toolUse("t4", "saving_throw", `{"ability":"DEX","dc":15,"modifier":2,"target_name":"Kobold C"}`),
				toolUse("t5", "apply_damage", `{"amount":14,"damage_type":"fire","source":"fireball","target_name":"Kobold B"}`),
				toolUse("t6", "apply_damage", `{"amount":14,"damage_type":"fire","source":"fireball","target_name":"Kobold C"}`),
				toolUse("t7", "apply_damage", `{"amount":7,"damage_type":"fire","source":"fireball","target_name":"Kobold A"}`),
			},
		},
		textResponse("Only smoke and silence remain."),
		emptyInference(),
	)

	// Save rolls: 18 (passes), 4 (fails), 9 (fails).
	s := newTestSession(client, dice.NewManualMockRoller(18, 4, 9))
	s.World.Character.Spellcasting = &world.Spellcasting{
		Ability: world.Charisma,
		Slots:   map[int]*world.SpellSlot{1: {Total: 4}, 2: {Total: 3}, 3: {Total: 2}},
		Known:   []string{"Fireball"},
	}
	s.World.StartCombat()
	for _, name := range []string{"Kobold A", "Kobold B", "Kobold C"} {
		s.World.Combat.AddCombatant(&world.Combatant{ID: name, Name: name, Initiative: 10, CurrentHP: 7, MaxHP: 7, AC: 12})
	}

	resp, err := s.PlayerAction(context.Background(), "I hurl a fireball at the kobolds")

	require.NoError(t, err)
	assert.Equal(t, 1, s.World.Character.Spellcasting.Slots[3].Used)
	assert.Equal(t, 0, s.World.Character.Spellcasting.Slots[1].Used, "unrelated slots untouched")
	assert.Equal(t, 0, s.World.Character.Spellcasting.Slots[2].Used, "unrelated slots untouched")
	byName := map[string]*world.Combatant{}
	for _, cb := range s.World.Combat.Combatants {
		byName[cb.Name] = cb
	}
	assert.Equal(t, 0, byName["Kobold B"].CurrentHP)
	assert.Equal(t, 0, byName["Kobold C"].CurrentHP)
	assert.Equal(t, 0, byName["Kobold A"].CurrentHP, "7 damage on a successful save still drops a 7 HP kobold")
	assert.Contains(t, resp.Narrative, "Flame blossoms")
}

func TestPlayerAction_DeathSaveChainEndsInDeath(t *testing.T) {
	client := modelclient.NewScriptedClient(
		modelclient.Response{
			StopReason: modelclient.StopToolUse,
			Content: []modelclient.ContentBlock{
				toolUse("t1", "death_save", `{}`),
				toolUse("t2", "death_save", `{}`),
				toolUse("t3", "death_save", `{}`),
			},
		},
		textResponse("The darkness takes you."),
		emptyInference(),
	)
	s := newTestSession(client, dice.NewManualMockRoller(8, 8, 8))
	s.World.Character.HP.Current = 0
	s.World.Character.Conditions = []*world.ActiveCondition{{Kind: world.CondUnconscious, Source: "hp_zero"}}

	resp, err := s.PlayerAction(context.Background(), "...")

	require.NoError(t, err)
	assert.Equal(t, 3, s.World.Character.DeathSaves.Failures)
	assert.True(t, s.World.Character.Dead)

	var died bool
	for _, e := range resp.Effects {
		if e.Kind == effect.KindCharacterDied {
			died = true
		}
	}
	assert.True(t, died, "a CharacterDied effect accompanies the third failure")

	// Healing a dead character does nothing.
	client2 := modelclient.NewScriptedClient(
		modelclient.Response{
			StopReason: modelclient.StopToolUse,
			Content:    []modelclient.ContentBlock{toolUse("t1", "apply_healing", `{"amount":10}`)},
		},
		textResponse("Nothing stirs."),
		emptyInference(),
	)
	s.client = client2
	_, err = s.PlayerAction(context.Background(), "I pour a potion into their mouth")
	require.NoError(t, err)
	assert.Equal(t, 0, s.World.Character.HP.Current)
	assert.True(t, s.World.Character.Dead)
}

func TestPlayerAction_InferenceAppliesOnlyConfidentChanges(t *testing.T) {
	inference := `{"inferred_changes":[` +
		`{"entity_name":"Bram","state_type":"disposition","new_value":"Hostile","evidence":"he glowers and draws steel","confidence":0.9},` +
		`{"entity_name":"Bram","state_type":"disposition","new_value":"Friendly","evidence":"a stray smile, maybe","confidence":0.2}]}`
	client := modelclient.NewScriptedClient(
		textResponse("Bram glowers at you and draws his blade."),
		textResponse(inference),
	)
	s := newTestSession(client, dice.NewManualMockRoller())
	require.NoError(t, s.applier.Apply(s.World, []effect.Effect{{Kind: effect.KindNpcCreated, NPCName: "Bram", Description: "a dockworker"}}))

	_, err := s.PlayerAction(context.Background(), "I accuse Bram of the theft")

	require.NoError(t, err)
	npc := s.World.FindNPCByName("Bram")
	require.NotNil(t, npc)
	assert.Equal(t, world.DispositionHostile, npc.Disposition, "only the 0.9-confidence change clears the 0.6 threshold")
}

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	client := modelclient.NewScriptedClient()
	s := newTestSession(client, dice.NewManualMockRoller())
	s.World.Character.HP.Current = 13
	s.Memory.RememberFact("Bram", "person", "Bram hates the harbormaster", "relationship", 0.8, []string{"harbormaster"})
	s.history = append(s.history, "Player: hello", "DM: well met")
	s.turn = 2

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, s.Save(path))

	loaded := newTestSession(modelclient.NewScriptedClient(), dice.NewManualMockRoller())
	require.NoError(t, loaded.Load(path))

	origWorld, err := json.Marshal(s.World)
	require.NoError(t, err)
	loadedWorld, err := json.Marshal(loaded.World)
	require.NoError(t, err)
	assert.JSONEq(t, string(origWorld), string(loadedWorld))

	assert.Equal(t, s.history, loaded.history)
	assert.Equal(t, 2, loaded.turn)

	origMem, err := json.Marshal(s.Memory.Snapshot())
	require.NoError(t, err)
	loadedMem, err := json.Marshal(loaded.Memory.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, string(origMem), string(loadedMem), "re-serializing a loaded Story Memory yields identical bytes")
}
