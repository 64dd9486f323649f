package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerCombat(r *Registry) {
	r.add(Spec{
		Name: "start_combat", Domain: DomainCombat,
		Description: "Begin combat and roll for initiative.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindStartCombat}, true
		},
	})

	r.add(Spec{
		Name: "end_combat", Domain: DomainCombat,
		Description: "End the current combat encounter.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindEndCombat}, true
		},
	})

	r.add(Spec{
		Name: "add_combatant", Domain: DomainCombat,
		Description: "Add a combatant to the active initiative order.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Combatant's display name", Required: true},
			Field{Name: "initiative", Type: "integer", Description: "Initiative roll result", Required: true},
			Field{Name: "max_hp", Type: "integer", Description: "Maximum hit points", Required: true},
			Field{Name: "ac", Type: "integer", Description: "Armor class", Required: true},
			Field{Name: "is_player", Type: "boolean", Description: "True if this combatant is a player character"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			initiative, ok := requireInt(args, "initiative")
			if !ok {
				return intent.Intent{}, false
			}
			maxHP, ok := requireInt(args, "max_hp")
			if !ok || maxHP <= 0 {
				return intent.Intent{}, false
			}
			ac, ok := requireInt(args, "ac")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindAddCombatant, CombatantName: name, CombatantInitiative: initiative,
				CombatantMaxHP: maxHP, CombatantAC: ac, IsPlayerCombatant: optionalBool(args, "is_player"),
			}, true
		},
	})

	r.add(Spec{
		Name: "next_turn", Domain: DomainCombat,
		Description: "Advance to the next combatant's turn.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindNextTurn}, true
		},
	})

	r.add(Spec{
		Name: "attack", Domain: DomainCombat,
		Description: "Roll an attack against a target's armor class and, on a hit, roll weapon damage.",
		Schema: BuildSchema(
			Field{Name: "target_name", Type: "string", Description: "Name of the combatant being attacked", Required: true},
			Field{Name: "target_ac", Type: "integer", Description: "Target's armor class", Required: true},
			Field{Name: "modifier", Type: "integer", Description: "Attack roll modifier"},
			Field{Name: "advantage", Type: "boolean", Description: "Roll twice, keep the higher"},
			Field{Name: "disadvantage", Type: "boolean", Description: "Roll twice, keep the lower"},
			Field{Name: "weapon_name", Type: "string", Description: "Weapon used, for canonical damage lookup"},
			Field{Name: "bonus_damage", Type: "integer", Description: "Flat damage added on a hit (ability modifier, etc.)"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			target, ok := requireString(args, "target_name")
			if !ok {
				return intent.Intent{}, false
			}
			ac, ok := requireInt(args, "target_ac")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindAttack, TargetName: target, DC: ac, Modifier: optionalInt(args, "modifier", 0),
				Advantage: advantageFrom(args), ItemName: optionalString(args, "weapon_name"),
				Amount: optionalInt(args, "bonus_damage", 0),
			}, true
		},
	})

	r.add(Spec{
		Name: "apply_condition", Domain: DomainCombat,
		Description: "Apply a condition to the player or a named combatant.",
		Schema: BuildSchema(
			Field{Name: "condition", Type: "string", Description: "Condition name, e.g. poisoned or exhaustion", Required: true},
			Field{Name: "target_name", Type: "string", Description: "Combatant to affect; empty means the player character"},
			Field{Name: "source", Type: "string", Description: "What caused the condition"},
			Field{Name: "duration_rounds", Type: "integer", Description: "Rounds until the condition expires on its own"},
			Field{Name: "exhaustion_level", Type: "integer", Description: "Exhaustion level 1-6, only for the exhaustion condition"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			kind, ok := requireString(args, "condition")
			if !ok {
				return intent.Intent{}, false
			}
			in := intent.Intent{
				Kind: intent.KindApplyCondition, ConditionKind: kind, TargetName: optionalString(args, "target_name"),
				ConditionSource: optionalString(args, "source"), ExhaustionLevel: optionalInt(args, "exhaustion_level", 0),
			}
			if d := args.Get("duration_rounds"); d.Exists() {
				n := int(d.Int())
				in.DurationRounds = &n
			}
			return in, true
		},
	})

	r.add(Spec{
		Name: "remove_condition", Domain: DomainCombat,
		Description: "Remove a condition from the player or a named combatant.",
		Schema: BuildSchema(
			Field{Name: "condition", Type: "string", Description: "Condition name to remove", Required: true},
			Field{Name: "target_name", Type: "string", Description: "Combatant to affect; empty means the player character"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			kind, ok := requireString(args, "condition")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindRemoveCondition, ConditionKind: kind, TargetName: optionalString(args, "target_name")}, true
		},
	})

	r.add(Spec{
		Name: "sneak_attack", Domain: DomainCombat,
		Description: "Apply sneak attack extra damage to a target, once per turn.",
		Schema: BuildSchema(
			Field{Name: "target_name", Type: "string", Description: "Target taking the extra damage", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			target, ok := requireString(args, "target_name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindSneakAttack, TargetName: target}, true
		},
	})
}
