package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func advantageFrom(args gjson.Result) dice.AdvantageMode {
	return dice.Resolve(optionalBool(args, "advantage"), optionalBool(args, "disadvantage"))
}

func registerChecks(r *Registry) {
	r.add(Spec{
		Name: "ability_check", Domain: DomainChecks,
		Description: "Roll an ability check against a DC.",
		Schema: BuildSchema(
			Field{Name: "ability", Type: "string", Description: "STR, DEX, CON, INT, WIS, or CHA", Required: true},
			Field{Name: "dc", Type: "integer", Description: "Difficulty class to beat", Required: true},
			Field{Name: "modifier", Type: "integer", Description: "Total modifier to add to the roll"},
			Field{Name: "advantage", Type: "boolean", Description: "Roll twice, keep the higher"},
			Field{Name: "disadvantage", Type: "boolean", Description: "Roll twice, keep the lower"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			ability, ok := requireString(args, "ability")
			if !ok {
				return intent.Intent{}, false
			}
			dc, ok := requireInt(args, "dc")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindAbilityCheck, Ability: ability, DC: dc,
				Modifier: optionalInt(args, "modifier", 0), Advantage: advantageFrom(args),
			}, true
		},
	})

	r.add(Spec{
		Name: "skill_check", Domain: DomainChecks,
		Description: "Roll a named skill check against a DC.",
		Schema: BuildSchema(
			Field{Name: "skill", Type: "string", Description: "Skill name, e.g. Stealth or Persuasion", Required: true},
			Field{Name: "ability", Type: "string", Description: "Governing ability, for unconscious auto-fail checks"},
			Field{Name: "dc", Type: "integer", Description: "Difficulty class to beat", Required: true},
			Field{Name: "modifier", Type: "integer", Description: "Total modifier to add to the roll"},
			Field{Name: "advantage", Type: "boolean", Description: "Roll twice, keep the higher"},
			Field{Name: "disadvantage", Type: "boolean", Description: "Roll twice, keep the lower"},
			Field{Name: "is_stealth", Type: "boolean", Description: "Apply armor stealth disadvantage automatically"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			skill, ok := requireString(args, "skill")
			if !ok {
				return intent.Intent{}, false
			}
			dc, ok := requireInt(args, "dc")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindSkillCheck, Skill: skill, Ability: optionalString(args, "ability"), DC: dc,
				Modifier: optionalInt(args, "modifier", 0), Advantage: advantageFrom(args),
				IsStealth: optionalBool(args, "is_stealth"),
			}, true
		},
	})

	r.add(Spec{
		Name: "saving_throw", Domain: DomainChecks,
		Description: "Roll a saving throw against a DC.",
		Schema: BuildSchema(
			Field{Name: "ability", Type: "string", Description: "STR, DEX, CON, INT, WIS, or CHA", Required: true},
			Field{Name: "dc", Type: "integer", Description: "Difficulty class to beat", Required: true},
			Field{Name: "modifier", Type: "integer", Description: "Total modifier to add to the roll"},
			Field{Name: "advantage", Type: "boolean", Description: "Roll twice, keep the higher"},
			Field{Name: "disadvantage", Type: "boolean", Description: "Roll twice, keep the lower"},
			Field{Name: "target_name", Type: "string", Description: "Who rolls the save; empty means the player character"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			ability, ok := requireString(args, "ability")
			if !ok {
				return intent.Intent{}, false
			}
			dc, ok := requireInt(args, "dc")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindSavingThrow, Ability: ability, DC: dc,
				Modifier: optionalInt(args, "modifier", 0), Advantage: advantageFrom(args),
				TargetName: optionalString(args, "target_name"),
			}, true
		},
	})

	r.add(Spec{
		Name: "concentration_check", Domain: DomainChecks,
		Description: "Roll a concentration check to maintain an active spell.",
		Schema: BuildSchema(
			Field{Name: "dc", Type: "integer", Description: "Difficulty class to beat", Required: true},
			Field{Name: "modifier", Type: "integer", Description: "Total modifier to add to the roll"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			dc, ok := requireInt(args, "dc")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindConcentration, DC: dc, Modifier: optionalInt(args, "modifier", 0)}, true
		},
	})

	r.add(Spec{
		Name: "death_save", Domain: DomainChecks,
		Description: "Roll a death saving throw for an unconscious character.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindDeathSave}, true
		},
	})
}
