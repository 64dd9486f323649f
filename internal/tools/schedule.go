package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerSchedule(r *Registry) {
	r.add(Spec{
		Name: "schedule_event", Domain: DomainSchedule,
		Description: "Schedule a future story event.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Event name", Required: true},
			Field{Name: "when", Type: "string", Description: "Free-text description of when it happens", Required: true},
			Field{Name: "description", Type: "string", Description: "What the event entails"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			when, ok := requireString(args, "when")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindScheduleEvent, EventName: name, EventWhen: when,
				Description: optionalString(args, "description"),
			}, true
		},
	})

	r.add(Spec{
		Name: "cancel_event", Domain: DomainSchedule,
		Description: "Cancel a previously scheduled event.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Event name", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindCancelEvent, EventName: name}, true
		},
	})
}
