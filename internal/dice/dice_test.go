package dice_test

import (
	"testing"

	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleComponent(t *testing.T) {
	components, err := dice.Parse("2d6+3")
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, 2, components[0].Count)
	assert.Equal(t, 6, components[0].Sides)
	assert.Equal(t, 3, components[0].Modifier)
}

func TestParse_MultipleComponents(t *testing.T) {
	components, err := dice.Parse("1d8+1d6+2")
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, 8, components[0].Sides)
	assert.Equal(t, 6, components[1].Sides)
	assert.Equal(t, 0, components[0].Modifier)
	assert.Equal(t, 2, components[1].Modifier)
}

func TestParse_KeepHighest(t *testing.T) {
	components, err := dice.Parse("4d6kh3")
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, dice.KeepHighest, components[0].Keep)
	assert.Equal(t, 3, components[0].KeepN)
}

func TestParse_KeepLowest(t *testing.T) {
	components, err := dice.Parse("2d20kl1")
	require.NoError(t, err)
	assert.Equal(t, dice.KeepLowest, components[0].Keep)
	assert.Equal(t, 1, components[0].KeepN)
}

func TestParse_Malformed(t *testing.T) {
	_, err := dice.Parse("not-dice")
	assert.Error(t, err)

	_, err = dice.Parse("")
	assert.Error(t, err)

	_, err = dice.Parse("3d6kh5") // keep exceeds count
	assert.Error(t, err)
}

func TestRoll_KeepHighestPicksTopDice(t *testing.T) {
	dice.Seed(42)
	result, err := dice.Roll("4d6kh3")
	require.NoError(t, err)
	require.Len(t, result.ComponentResults, 1)
	assert.Len(t, result.ComponentResults[0].Kept, 3)
	assert.Len(t, result.ComponentResults[0].Rolls, 4)
}

func TestRoll_NaturalTwentyAndOne(t *testing.T) {
	roller := dice.NewManualMockRoller(20)
	result := roller.RollD20(5, dice.Normal)
	assert.True(t, result.Natural20)
	assert.Equal(t, 25, result.Total)

	roller = dice.NewManualMockRoller(1)
	result = roller.RollD20(5, dice.Normal)
	assert.True(t, result.Natural1)
}

func TestRollD20_Advantage(t *testing.T) {
	roller := dice.NewManualMockRoller(8, 17)
	result := roller.RollD20(2, dice.Advantage)
	assert.Equal(t, 19, result.Total) // 17+2
}

func TestRollD20_Disadvantage(t *testing.T) {
	roller := dice.NewManualMockRoller(17, 8)
	result := roller.RollD20(2, dice.Disadvantage)
	assert.Equal(t, 10, result.Total) // 8+2
}

func TestResolve_AdvantageAndDisadvantageCancel(t *testing.T) {
	assert.Equal(t, dice.Normal, dice.Resolve(true, true))
	assert.Equal(t, dice.Advantage, dice.Resolve(true, false))
	assert.Equal(t, dice.Disadvantage, dice.Resolve(false, true))
	assert.Equal(t, dice.Normal, dice.Resolve(false, false))
}

func TestRollWithFallback_UsesSecondaryThenCanonical(t *testing.T) {
	result := dice.RollWithFallback("2d6", "1d4")
	assert.Equal(t, "2d6", result.Expression)

	result = dice.RollWithFallback("not-dice", "1d4")
	assert.Equal(t, "1d4", result.Expression)

	result = dice.RollWithFallback("not-dice", "also-not-dice")
	assert.Equal(t, 1, result.Total)
}

func TestManualMockRoller_Sequential(t *testing.T) {
	roller := dice.NewManualMockRoller(4, 5, 3)
	result, err := roller.Roll("2d6+3")
	require.NoError(t, err)
	assert.Equal(t, 12, result.Total) // 4+5+3
}
