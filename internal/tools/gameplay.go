package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerGameplay(r *Registry) {
	r.add(Spec{
		Name: "apply_damage", Domain: DomainGameplay,
		Description: "Deal damage to the player or a named combatant.",
		Schema: BuildSchema(
			Field{Name: "amount", Type: "integer", Description: "Damage amount, must be positive", Required: true},
			Field{Name: "damage_type", Type: "string", Description: "Damage type, e.g. fire or slashing"},
			Field{Name: "source", Type: "string", Description: "What caused the damage"},
			Field{Name: "target_name", Type: "string", Description: "Who takes the damage; empty means the player character"},
			Field{Name: "critical", Type: "boolean", Description: "True if the damage came from a critical hit"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			amount, ok := requireInt(args, "amount")
			if !ok || amount <= 0 {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindDamage, Amount: amount, DamageType: optionalString(args, "damage_type"),
				Source: optionalString(args, "source"), TargetName: optionalString(args, "target_name"),
				Critical: optionalBool(args, "critical"),
			}, true
		},
	})

	r.add(Spec{
		Name: "apply_healing", Domain: DomainGameplay,
		Description: "Restore hit points to the player or a named combatant.",
		Schema: BuildSchema(
			Field{Name: "amount", Type: "integer", Description: "Hit points restored, must be positive", Required: true},
			Field{Name: "source", Type: "string", Description: "What caused the healing"},
			Field{Name: "target_name", Type: "string", Description: "Who is healed; empty means the player character"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			amount, ok := requireInt(args, "amount")
			if !ok || amount <= 0 {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindHeal, Amount: amount, Source: optionalString(args, "source"),
				TargetName: optionalString(args, "target_name"),
			}, true
		},
	})
}
