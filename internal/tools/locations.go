package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerLocations(r *Registry) {
	r.add(Spec{
		Name: "location_create", Domain: DomainLocations,
		Description: "Reveal a new location.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Location name", Required: true},
			Field{Name: "description", Type: "string", Description: "Location description"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindLocationCreate, LocationName: name, Description: optionalString(args, "description")}, true
		},
	})

	r.add(Spec{
		Name: "location_update", Domain: DomainLocations,
		Description: "Update a known location's description.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Location name", Required: true},
			Field{Name: "description", Type: "string", Description: "New description"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindLocationUpdate, LocationName: name, Description: optionalString(args, "description")}, true
		},
	})
}
