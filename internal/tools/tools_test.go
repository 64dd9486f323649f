package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func testWorld() *world.World {
	return world.New(&world.Character{Name: "Aria", HP: world.HitPoints{Current: 10, Maximum: 10}})
}

func TestRegistry_UnknownToolNameReturnsNoIntent(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Parse("not_a_real_tool", `{}`, testWorld())
	assert.False(t, ok)
}

func TestRegistry_MissingRequiredFieldReturnsNoIntent(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Parse("ability_check", `{"ability":"STR"}`, testWorld())
	assert.False(t, ok, "dc is required and absent")
}

func TestRegistry_OutOfRangeDamageReturnsNoIntent(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Parse("apply_damage", `{"amount":0}`, testWorld())
	assert.False(t, ok, "zero damage is out of range")
}

func TestRegistry_ValidAbilityCheckParses(t *testing.T) {
	r := NewRegistry()
	in, ok := r.Parse("ability_check", `{"ability":"DEX","dc":15,"modifier":3,"advantage":true}`, testWorld())
	require.True(t, ok)
	assert.Equal(t, intent.KindAbilityCheck, in.Kind)
	assert.Equal(t, "DEX", in.Ability)
	assert.Equal(t, 15, in.DC)
	assert.Equal(t, 3, in.Modifier)
}

func TestRegistry_ParseRunsArgsThroughJSONRepairFirst(t *testing.T) {
	r := NewRegistry()
	wrapped := "```json\n{\"item_name\":\"Rope\",\"item_type\":\"adventuring\",\"quantity\":1}\n```"
	in, ok := r.Parse("item_add", wrapped, testWorld())
	require.True(t, ok)
	assert.Equal(t, intent.KindItemAdd, in.Kind)
	assert.Equal(t, "Rope", in.ItemName)
}

func TestRegistry_EveryToolHasNonEmptyDomainAndSchema(t *testing.T) {
	r := NewRegistry()
	for _, spec := range r.Specs() {
		assert.NotEmpty(t, spec.Domain, spec.Name)
		assert.NotNil(t, spec.Schema, spec.Name)
	}
	assert.GreaterOrEqual(t, len(r.Specs()), 40)
}

func TestRegistry_DivineSmiteRequiresTargetAndSlotLevel(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Parse("divine_smite", `{"slot_level":2}`, testWorld())
	assert.False(t, ok, "target_name is required")

	in, ok := r.Parse("divine_smite", `{"slot_level":2,"target_name":"Wraith","undead_or_fiend_target":true}`, testWorld())
	require.True(t, ok)
	assert.Equal(t, 2, in.SlotLevel)
	assert.True(t, in.UndeadOrFiendTarget)
}

func TestRegistry_StateAssertRoundTrips(t *testing.T) {
	r := NewRegistry()
	in, ok := r.Parse("state_assert", `{"entity_name":"Borin","state_type":"disposition","new_value":"friendly"}`, testWorld())
	require.True(t, ok)
	assert.Equal(t, intent.StateDisposition, in.StateType)
	assert.Equal(t, "Borin", in.EntityName)
}
