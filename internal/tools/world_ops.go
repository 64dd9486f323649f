package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerWorld(r *Registry) {
	r.add(Spec{
		Name: "time_advance", Domain: DomainWorld,
		Description: "Advance game time without a rest.",
		Schema: BuildSchema(
			Field{Name: "minutes", Type: "integer", Description: "Minutes of game time that pass", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			minutes, ok := requireInt(args, "minutes")
			if !ok || minutes <= 0 {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindTimeAdvance, Minutes: int64(minutes)}, true
		},
	})

	r.add(Spec{
		Name: "rest", Domain: DomainWorld,
		Description: "Take a short or long rest.",
		Schema: BuildSchema(
			Field{Name: "rest_kind", Type: "string", Description: "short or long", Enum: []string{"short", "long"}, Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			kind, ok := requireString(args, "rest_kind")
			if !ok || (kind != "short" && kind != "long") {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindRest, RestKind: kind}, true
		},
	})

	r.add(Spec{
		Name: "gain_xp", Domain: DomainWorld,
		Description: "Award experience points.",
		Schema: BuildSchema(
			Field{Name: "amount", Type: "integer", Description: "Experience points gained", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			amount, ok := requireInt(args, "amount")
			if !ok || amount <= 0 {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindGainXP, Amount: amount}, true
		},
	})

	r.add(Spec{
		Name: "level_up", Domain: DomainWorld,
		Description: "Advance the character to a new level.",
		Schema: BuildSchema(
			Field{Name: "new_level", Type: "integer", Description: "Level being reached", Required: true},
			Field{Name: "hit_die_gain", Type: "integer", Description: "Hit points gained this level"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			newLevel, ok := requireInt(args, "new_level")
			if !ok || newLevel <= 0 {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindLevelUp, NewLevel: newLevel, HitDieGain: optionalInt(args, "hit_die_gain", 1)}, true
		},
	})

	r.add(Spec{
		Name: "ability_score_modify", Domain: DomainWorld,
		Description: "Permanently change an ability score.",
		Schema: BuildSchema(
			Field{Name: "ability", Type: "string", Description: "STR, DEX, CON, INT, WIS, or CHA", Required: true},
			Field{Name: "delta", Type: "integer", Description: "Amount to add (negative to subtract)", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			ability, ok := requireString(args, "ability")
			if !ok {
				return intent.Intent{}, false
			}
			delta, ok := requireInt(args, "delta")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindAbilityScoreModify, Ability: ability, AbilityDelta: delta}, true
		},
	})

	r.add(Spec{
		Name: "gold_delta", Domain: DomainWorld,
		Description: "Gain or spend gold.",
		Schema: BuildSchema(
			Field{Name: "delta", Type: "integer", Description: "Gold change; negative to spend", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			delta, ok := requireInt(args, "delta")
			if !ok || delta == 0 {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindGoldDelta, GoldDelta: delta}, true
		},
	})

	r.add(Spec{
		Name: "silver_delta", Domain: DomainWorld,
		Description: "Gain or spend silver.",
		Schema: BuildSchema(
			Field{Name: "delta", Type: "integer", Description: "Silver change; negative to spend", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			delta, ok := requireInt(args, "delta")
			if !ok || delta == 0 {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindSilverDelta, SilverDelta: delta}, true
		},
	})
}
