package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerState(r *Registry) {
	r.add(Spec{
		Name: "state_assert", Domain: DomainState,
		Description: "Declare a free-text fact about an NPC's disposition, location, status, or knowledge.",
		Schema: BuildSchema(
			Field{Name: "entity_name", Type: "string", Description: "NPC name", Required: true},
			Field{Name: "state_type", Type: "string", Description: "Which kind of state this is",
				Enum: []string{
					string(intent.StateDisposition), string(intent.StateLocation), string(intent.StateStatus),
					string(intent.StateKnowledge), string(intent.StateRelationship),
				}, Required: true},
			Field{Name: "new_value", Type: "string", Description: "New value for the state", Required: true},
			Field{Name: "target_entity", Type: "string", Description: "Other entity involved, for relationship assertions"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			entity, ok := requireString(args, "entity_name")
			if !ok {
				return intent.Intent{}, false
			}
			stateType, ok := requireString(args, "state_type")
			if !ok {
				return intent.Intent{}, false
			}
			newValue, ok := requireString(args, "new_value")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindStateAssert, EntityName: entity, StateType: intent.StateType(stateType),
				NewValue: newValue, TargetEntity: optionalString(args, "target_entity"),
			}, true
		},
	})
}
