package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerNpc(r *Registry) {
	r.add(Spec{
		Name: "npc_create", Domain: DomainNpc,
		Description: "Introduce a new NPC.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "NPC name", Required: true},
			Field{Name: "description", Type: "string", Description: "Physical description"},
			Field{Name: "personality", Type: "string", Description: "Personality notes"},
			Field{Name: "occupation", Type: "string", Description: "Occupation or role"},
			Field{Name: "location_name", Type: "string", Description: "Where the NPC is introduced"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindNpcCreate, NPCName: name, Description: optionalString(args, "description"),
				Personality: optionalString(args, "personality"), Occupation: optionalString(args, "occupation"),
				LocationName: optionalString(args, "location_name"),
			}, true
		},
	})

	r.add(Spec{
		Name: "npc_update", Domain: DomainNpc,
		Description: "Update an existing NPC's description or personality.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "NPC name", Required: true},
			Field{Name: "description", Type: "string", Description: "New description"},
			Field{Name: "personality", Type: "string", Description: "New personality notes"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindNpcUpdate, NPCName: name, Description: optionalString(args, "description"),
				Personality: optionalString(args, "personality"),
			}, true
		},
	})

	r.add(Spec{
		Name: "npc_move", Domain: DomainNpc,
		Description: "Move an NPC to a different known location.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "NPC name", Required: true},
			Field{Name: "location_name", Type: "string", Description: "Destination location name", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			location, ok := requireString(args, "location_name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindNpcMove, NPCName: name, LocationName: location}, true
		},
	})

	r.add(Spec{
		Name: "npc_remove", Domain: DomainNpc,
		Description: "Remove an NPC from the world.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "NPC name", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindNpcRemove, NPCName: name}, true
		},
	})
}
