package rules

import (
	"fmt"
	"math"

	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func resolveRage(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	if c.Resources.RageUsesMax != 0 && c.Resources.RageUses <= 0 {
		return noEffect(fmt.Sprintf("%s has no rages left today.", c.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s flies into a rage!", c.Name),
		Effects: []effect.Effect{
			{Kind: effect.KindClassResourceChanged, ResourceName: "rage_uses", ResourceDelta: -1},
			{Kind: effect.KindConditionApplied, ConditionKind: "raging", ConditionSource: "rage"},
		},
	}
}

func resolveKi(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	cost := in.Amount
	if cost < 1 {
		cost = 1
	}
	if c.Resources.Ki < cost {
		return noEffect(fmt.Sprintf("%s doesn't have enough ki.", c.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s spends %d ki point(s).", c.Name, cost),
		Effects:   []effect.Effect{{Kind: effect.KindClassResourceChanged, ResourceName: "ki", ResourceDelta: -cost}},
	}
}

func resolveLayOnHands(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	amount := in.Amount
	if amount < 1 {
		amount = 1
	}
	if c.Resources.LayOnHandsPool < amount {
		return noEffect(fmt.Sprintf("%s's lay on hands pool is too depleted.", c.Name))
	}
	target := in.TargetName
	name := targetLabel(w, target)
	return Resolution{
		Narrative: fmt.Sprintf("%s lays hands on %s, healing %d.", c.Name, name, amount),
		Effects: []effect.Effect{
			{Kind: effect.KindClassResourceChanged, ResourceName: "lay_on_hands", ResourceDelta: -amount},
			{Kind: effect.KindHPChanged, Target: target, Amount: amount, Reason: "lay on hands"},
		},
	}
}

// resolveDivineSmite computes dice = 2 + min(3, slot_level-1), capped at 5
// (one more, capped at 6, vs undead/fiend). Fails with a rule-violation
// empty-effect Resolution if the slot isn't available.
func (e *Engine) resolveDivineSmite(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	sc := c.Spellcasting
	if sc == nil {
		return noEffect(fmt.Sprintf("%s cannot cast Divine Smite.", c.Name))
	}
	slot, ok := sc.Slots[in.SlotLevel]
	if !ok || slot.Used >= slot.Total {
		return noEffect(fmt.Sprintf("%s has no level %d spell slot for Divine Smite.", c.Name, in.SlotLevel))
	}

	diceCount := 2 + minInt(3, in.SlotLevel-1)
	maxDice := 5
	if in.UndeadOrFiendTarget {
		diceCount++
		maxDice = 6
	}
	if diceCount > maxDice {
		diceCount = maxDice
	}

	result, err := e.Roller.Roll(fmt.Sprintf("%dd8", diceCount))
	amount := 0
	if err == nil {
		amount = result.Total
	}

	return Resolution{
		Narrative: fmt.Sprintf("%s channels divine energy into the strike for %d radiant damage!", c.Name, amount),
		Effects: []effect.Effect{
			{Kind: effect.KindSpellSlotUsed, SpellLevel: in.SlotLevel},
			{Kind: effect.KindHPChanged, Target: in.TargetName, Amount: -amount, Reason: "divine smite"},
		},
	}
}

// resolveWildShape: duration hours = druid_level/2 (integer division),
// consumes one feature charge.
func resolveWildShape(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	f := c.FindFeature("Wild Shape")
	if f != nil && f.Maximum > 0 && f.Current <= 0 {
		return noEffect(fmt.Sprintf("%s has no wild shape uses left.", c.Name))
	}
	hours := c.Level / 2
	if hours < 1 {
		hours = 1
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s transforms into a %s.", c.Name, in.ConditionSource),
		Effects: []effect.Effect{
			{Kind: effect.KindFeatureUsed, FeatureName: "Wild Shape"},
			{Kind: effect.KindClassResourceChanged, ResourceName: "wild_shape_form", ResourceDelta: 0, FeatureName: in.ConditionSource},
			{Kind: effect.KindClassResourceChanged, ResourceName: "wild_shape_hours", ResourceDelta: hours},
		},
	}
}

// resolveEndWildShape: when reason is HpZero and excess damage carried
// over, the druid takes that excess as real damage.
func resolveEndWildShape(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	effects := []effect.Effect{{Kind: effect.KindClassResourceChanged, ResourceName: "wild_shape_form", FeatureName: ""}}
	narrative := fmt.Sprintf("%s reverts to their normal form.", c.Name)
	if in.ConditionSource == "HpZero" && in.Amount > 0 {
		effects = append(effects, effect.Effect{Kind: effect.KindHPChanged, Amount: -in.Amount, Reason: "wild shape excess damage"})
		narrative = fmt.Sprintf("%s's beast form collapses, and the excess damage carries over!", c.Name)
	}
	return Resolution{Narrative: narrative, Effects: effects}
}

func resolveChannelDivinity(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	if c.Resources.ChannelDivinityUsed {
		return noEffect(fmt.Sprintf("%s has already used Channel Divinity since their last rest.", c.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s channels divine power.", c.Name),
		Effects:   []effect.Effect{{Kind: effect.KindClassResourceChanged, ResourceName: "channel_divinity_used", ResourceDelta: 1}},
	}
}

// resolveBardicInspiration consumes one use and grants a d-whatever
// inspiration die to the named ally, tracked as a condition the recipient
// can later consume on a check/save/attack (Applier models it as a
// condition named "bardic_inspiration" carrying the die in Source; there
// is no dedicated buff-stack subsystem).
func (e *Engine) resolveBardicInspiration(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	f := c.FindFeature("Bardic Inspiration")
	if f != nil && f.Maximum > 0 && f.Current <= 0 {
		return noEffect(fmt.Sprintf("%s has no bardic inspiration uses left.", c.Name))
	}
	die := "1d6"
	switch {
	case c.Level >= 15:
		die = "1d12"
	case c.Level >= 10:
		die = "1d10"
	case c.Level >= 5:
		die = "1d8"
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s inspires %s with a stirring word (%s).", c.Name, in.TargetName, die),
		Effects: []effect.Effect{
			{Kind: effect.KindFeatureUsed, FeatureName: "Bardic Inspiration"},
			{Kind: effect.KindConditionApplied, Target: in.TargetName, ConditionKind: "bardic_inspiration", ConditionSource: die},
		},
	}
}

func resolveActionSurge(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	if c.Resources.ActionSurgeUsed {
		return noEffect(fmt.Sprintf("%s has already used Action Surge since their last rest.", c.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s surges into action, gaining an additional action!", c.Name),
		Effects:   []effect.Effect{{Kind: effect.KindClassResourceChanged, ResourceName: "action_surge_used", ResourceDelta: 1}},
	}
}

func (e *Engine) resolveSecondWind(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	if c.Resources.SecondWindUsed {
		return noEffect(fmt.Sprintf("%s has already used Second Wind since their last rest.", c.Name))
	}
	result, err := e.Roller.Roll(fmt.Sprintf("1d10+%d", c.Level))
	amount := c.Level + 1
	if err == nil {
		amount = result.Total
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s catches their second wind, healing %d.", c.Name, amount),
		Effects: []effect.Effect{
			{Kind: effect.KindClassResourceChanged, ResourceName: "second_wind_used", ResourceDelta: 1},
			{Kind: effect.KindHPChanged, Amount: amount, Reason: "second wind"},
		},
	}
}

func resolveSorceryPoints(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	cost := in.Amount
	if cost < 1 {
		cost = 1
	}
	if c.Resources.SorceryPoints < cost {
		return noEffect(fmt.Sprintf("%s doesn't have enough sorcery points.", c.Name))
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s spends %d sorcery point(s).", c.Name, cost),
		Effects:   []effect.Effect{{Kind: effect.KindClassResourceChanged, ResourceName: "sorcery_points", ResourceDelta: -cost}},
	}
}

// resolveSneakAttack: dice count = ceil(rogue_level/2), usable at most
// once per turn, tracked in CombatState.SneakAttackUsedThisTurn.
func (e *Engine) resolveSneakAttack(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	alreadyUsed := c.SneakAttackUsedThisTurn
	if w.Combat != nil {
		alreadyUsed = w.Combat.SneakAttackUsedThisTurn
	}
	if alreadyUsed {
		return noEffect(fmt.Sprintf("%s has already used sneak attack this turn.", c.Name))
	}

	diceCount := SneakAttackDice(c.Level)
	result, err := e.Roller.Roll(fmt.Sprintf("%dd6", diceCount))
	amount := 0
	if err == nil {
		amount = result.Total
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s strikes from the shadows for an extra %d sneak attack damage!", c.Name, amount),
		Effects: []effect.Effect{
			{Kind: effect.KindClassResourceChanged, ResourceName: "sneak_attack_used", ResourceDelta: 1},
			{Kind: effect.KindHPChanged, Target: in.TargetName, Amount: -amount, Reason: "sneak attack"},
		},
	}
}

// SneakAttackDice computes ceil(level/2) for level 1..=20.
func SneakAttackDice(level int) int {
	return int(math.Ceil(float64(level) / 2))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
