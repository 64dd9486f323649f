package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// resolveCheck handles both ability and skill checks: roll 1d20 + modifier
// with advantage, compared to DC. Unconscious characters auto-fail
// Strength/Dexterity checks. Stealth checks automatically
// gain disadvantage if the equipped armor has stealth_disadvantage.
func (e *Engine) resolveCheck(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	ability := world.Ability(in.Ability)

	if c.IsUnconscious() && (ability == world.Strength || ability == world.Dexterity) {
		return Resolution{Narrative: fmt.Sprintf("%s is unconscious and automatically fails the check.", c.Name)}
	}

	adv := in.Advantage
	narrativeSuffix := ""
	if in.IsStealth {
		armor := c.Equipment.Armor
		if armor != nil {
			if disStr, ok := armor.Properties["stealth_disadvantage"]; ok && disStr == "true" {
				adv = dice.Resolve(adv == dice.Advantage, true)
				narrativeSuffix = " [armor disadvantage]"
			}
		}
	}

	result := e.Roller.RollD20(in.Modifier, adv)
	success := result.Total >= in.DC

	label := in.Skill
	if label == "" {
		label = in.Ability
	}
	verb := "succeeds"
	if !success {
		verb = "fails"
	}
	narrative := fmt.Sprintf("%s %s the %s check (rolled %d vs DC %d).%s", c.Name, verb, label, result.Total, in.DC, narrativeSuffix)

	return Resolution{Narrative: narrative}
}

// resolveSave handles saving throws the same way as checks; Unconscious
// auto-fails STR/DEX saves too.
func (e *Engine) resolveSave(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	ability := world.Ability(in.Ability)

	// A named non-player target rolls its own save; monsters carry no
	// condition tracking here, so no auto-fail path applies.
	if in.TargetName != "" && !world.EqualFold(in.TargetName, c.Name) {
		result := e.Roller.RollD20(in.Modifier, in.Advantage)
		verb := "succeeds on"
		if result.Total < in.DC {
			verb = "fails"
		}
		return Resolution{Narrative: fmt.Sprintf("%s %s the %s save (rolled %d vs DC %d).", in.TargetName, verb, in.Ability, result.Total, in.DC)}
	}

	if c.IsUnconscious() && (ability == world.Strength || ability == world.Dexterity) {
		return Resolution{Narrative: fmt.Sprintf("%s is unconscious and automatically fails the save.", c.Name)}
	}

	result := e.Roller.RollD20(in.Modifier, in.Advantage)
	success := result.Total >= in.DC

	verb := "succeeds on"
	if !success {
		verb = "fails"
	}
	narrative := fmt.Sprintf("%s %s the %s save (rolled %d vs DC %d).", c.Name, verb, in.Ability, result.Total, in.DC)

	return Resolution{Narrative: narrative}
}
