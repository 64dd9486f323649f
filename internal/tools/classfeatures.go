package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerClassFeatures(r *Registry) {
	r.add(Spec{
		Name: "rage", Domain: DomainClassFeatures,
		Description: "Fly into a barbarian rage.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindRage}, true
		},
	})

	r.add(Spec{
		Name: "ki", Domain: DomainClassFeatures,
		Description: "Spend ki points on a monk feature.",
		Schema: BuildSchema(
			Field{Name: "amount", Type: "integer", Description: "Ki points to spend (defaults to 1)"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindKi, Amount: optionalInt(args, "amount", 1)}, true
		},
	})

	r.add(Spec{
		Name: "lay_on_hands", Domain: DomainClassFeatures,
		Description: "Draw from the paladin's lay on hands pool to heal a target.",
		Schema: BuildSchema(
			Field{Name: "amount", Type: "integer", Description: "Hit points to heal (defaults to 1)"},
			Field{Name: "target_name", Type: "string", Description: "Who is healed; empty means the player character"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{
				Kind: intent.KindLayOnHands, Amount: optionalInt(args, "amount", 1),
				TargetName: optionalString(args, "target_name"),
			}, true
		},
	})

	r.add(Spec{
		Name: "divine_smite", Domain: DomainClassFeatures,
		Description: "Expend a spell slot to smite a melee target with radiant damage.",
		Schema: BuildSchema(
			Field{Name: "slot_level", Type: "integer", Description: "Spell slot level to expend", Required: true},
			Field{Name: "target_name", Type: "string", Description: "Target of the smite", Required: true},
			Field{Name: "undead_or_fiend_target", Type: "boolean", Description: "True raises the damage-die cap to 6"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			slotLevel, ok := requireInt(args, "slot_level")
			if !ok || slotLevel < 1 {
				return intent.Intent{}, false
			}
			target, ok := requireString(args, "target_name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindDivineSmite, SlotLevel: slotLevel, TargetName: target,
				UndeadOrFiendTarget: optionalBool(args, "undead_or_fiend_target"),
			}, true
		},
	})

	r.add(Spec{
		Name: "wild_shape", Domain: DomainClassFeatures,
		Description: "Transform into a beast form.",
		Schema: BuildSchema(
			Field{Name: "form", Type: "string", Description: "Name of the beast form taken", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			form, ok := requireString(args, "form")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindWildShape, ConditionSource: form}, true
		},
	})

	r.add(Spec{
		Name: "end_wild_shape", Domain: DomainClassFeatures,
		Description: "Revert from a beast form back to normal shape.",
		Schema: BuildSchema(
			Field{Name: "reason", Type: "string", Description: "Why the form ended, e.g. HpZero"},
			Field{Name: "excess_damage", Type: "integer", Description: "Damage exceeding the beast form's HP, carried to the druid"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{
				Kind: intent.KindEndWildShape, ConditionSource: optionalString(args, "reason"),
				Amount: optionalInt(args, "excess_damage", 0),
			}, true
		},
	})

	r.add(Spec{
		Name: "channel_divinity", Domain: DomainClassFeatures,
		Description: "Invoke a channel divinity effect.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindChannelDivinity}, true
		},
	})

	r.add(Spec{
		Name: "bardic_inspiration", Domain: DomainClassFeatures,
		Description: "Grant a bardic inspiration die to an ally.",
		Schema: BuildSchema(
			Field{Name: "target_name", Type: "string", Description: "Ally receiving the inspiration die", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			target, ok := requireString(args, "target_name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindBardicInspiration, TargetName: target}, true
		},
	})

	r.add(Spec{
		Name: "action_surge", Domain: DomainClassFeatures,
		Description: "Take an additional action this turn.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindActionSurge}, true
		},
	})

	r.add(Spec{
		Name: "second_wind", Domain: DomainClassFeatures,
		Description: "Catch a second wind, healing the fighter.",
		Schema:      BuildSchema(),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindSecondWind}, true
		},
	})

	r.add(Spec{
		Name: "sorcery_points", Domain: DomainClassFeatures,
		Description: "Spend sorcery points on metamagic.",
		Schema: BuildSchema(
			Field{Name: "amount", Type: "integer", Description: "Sorcery points to spend (defaults to 1)"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			return intent.Intent{Kind: intent.KindSorceryPoints, Amount: optionalInt(args, "amount", 1)}, true
		},
	})

	r.add(Spec{
		Name: "use_feature", Domain: DomainClassFeatures,
		Description: "Expend a use of a named class feature.",
		Schema: BuildSchema(
			Field{Name: "feature_name", Type: "string", Description: "Feature name as it appears on the character sheet", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "feature_name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindUseFeature, FeatureName: name}, true
		},
	})

	r.add(Spec{
		Name: "use_spell_slot", Domain: DomainClassFeatures,
		Description: "Expend a spell slot to cast a spell.",
		Schema: BuildSchema(
			Field{Name: "slot_level", Type: "integer", Description: "Spell slot level to expend", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			slotLevel, ok := requireInt(args, "slot_level")
			if !ok || slotLevel < 1 {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindUseSpellSlot, SlotLevel: slotLevel}, true
		},
	})

	r.add(Spec{
		Name: "restore_spell_slot", Domain: DomainClassFeatures,
		Description: "Restore one or more spell slots of a level.",
		Schema: BuildSchema(
			Field{Name: "slot_level", Type: "integer", Description: "Spell slot level restored", Required: true},
			Field{Name: "count", Type: "integer", Description: "Number of slots restored (defaults to 1)"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			slotLevel, ok := requireInt(args, "slot_level")
			if !ok || slotLevel < 1 {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindRestoreSpellSlot, SlotLevel: slotLevel, SlotCount: optionalInt(args, "count", 1)}, true
		},
	})
}
