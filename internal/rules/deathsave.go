package rules

import (
	"fmt"

	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// resolveDeathSave rolls 1d20: >=10 succeeds (20 restores
// 1 HP and resets saves), <10 fails (1 counts as two failures). The
// Applier (internal/apply) is responsible for the three-successes/
// three-failures bookkeeping against world.Character.DeathSaves; Resolve
// only classifies this single roll.
func (e *Engine) resolveDeathSave(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	if !c.IsUnconscious() {
		return noEffect(fmt.Sprintf("%s is not at death's door.", c.Name))
	}

	result := e.Roller.RollD20(0, dice.Normal)
	success := result.Total >= 10

	narrative := fmt.Sprintf("%s rolls a death save: %d.", c.Name, result.Total)
	switch {
	case result.Natural20:
		narrative = fmt.Sprintf("%s rolls a natural 20 on their death save and sputters back to 1 HP!", c.Name)
	case result.Natural1:
		narrative = fmt.Sprintf("%s rolls a natural 1 on their death save — two failures.", c.Name)
	case success:
		narrative += " Success."
	default:
		narrative += " Failure."
	}

	effects := []effect.Effect{{
		Kind:             effect.KindDeathSaveRecorded,
		DeathSaveOutcome: deathSaveOutcome(result.Natural20, result.Natural1, success),
	}}

	failuresAdded := 0
	switch {
	case result.Natural1:
		failuresAdded = 2
	case !success:
		failuresAdded = 1
	}
	if failuresAdded > 0 && c.DeathSaves.Failures+failuresAdded >= 3 {
		effects = append(effects, effect.Effect{Kind: effect.KindCharacterDied})
		narrative = fmt.Sprintf("%s's eyes close for the last time. They are dead.", c.Name)
	}

	return Resolution{Narrative: narrative, Effects: effects}
}

func deathSaveOutcome(natural20, natural1, success bool) string {
	switch {
	case natural20:
		return "natural20"
	case natural1:
		return "natural1"
	case success:
		return "success"
	default:
		return "failure"
	}
}

func (e *Engine) resolveConcentration(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	if c.Spellcasting == nil || c.Spellcasting.Concentrating == "" {
		return noEffect(fmt.Sprintf("%s isn't concentrating on anything.", c.Name))
	}
	result := e.Roller.RollD20(in.Modifier, in.Advantage)
	if result.Total >= in.DC {
		return Resolution{Narrative: fmt.Sprintf("%s maintains concentration on %s (rolled %d vs DC %d).", c.Name, c.Spellcasting.Concentrating, result.Total, in.DC)}
	}
	return Resolution{
		Narrative: fmt.Sprintf("%s loses concentration on %s (rolled %d vs DC %d).", c.Name, c.Spellcasting.Concentrating, result.Total, in.DC),
		Effects:   []effect.Effect{{Kind: effect.KindConcentrationBroken}},
	}
}

// resolveAttack rolls a d20 attack roll against the target's AC (taken
// from in.DC — the caller resolves the target's AC) and, on a hit, a
// damage roll against the weapon's canonical stats, falling back to
// content's sensible default.
func (e *Engine) resolveAttack(w *world.World, in intent.Intent) Resolution {
	c := w.Character
	attackRoll := e.Roller.RollD20(in.Modifier, in.Advantage)
	hit := attackRoll.Total >= in.DC || attackRoll.Natural20

	if !hit && !attackRoll.Natural20 {
		return Resolution{Narrative: fmt.Sprintf("%s's attack misses %s (rolled %d vs AC %d).", c.Name, in.TargetName, attackRoll.Total, in.DC)}
	}

	weapon := content.LookupWeapon(e.Content, in.ItemName)
	dmgExpr := weapon.DamageDice
	if attackRoll.Natural20 {
		dmgExpr = dmgExpr + "+" + dmgExpr
	}
	dmgResult, err := e.Roller.Roll(dmgExpr)
	amount := 0
	if err == nil {
		amount = dmgResult.Total
	}
	amount += in.Amount // additional flat damage modifier (ability bonus etc.), supplied by the caller

	narrative := fmt.Sprintf("%s's attack hits %s for %d %s damage.", c.Name, in.TargetName, amount, weapon.DamageType)
	if attackRoll.Natural20 {
		narrative = fmt.Sprintf("%s lands a critical hit on %s for %d %s damage!", c.Name, in.TargetName, amount, weapon.DamageType)
	}

	return Resolution{
		Narrative: narrative,
		Effects: []effect.Effect{{
			Kind:   effect.KindHPChanged,
			Target: in.TargetName,
			Amount: -amount,
			Reason: in.ItemName,
		}},
	}
}
