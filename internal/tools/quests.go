package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func registerQuests(r *Registry) {
	r.add(Spec{
		Name: "quest_create", Domain: DomainQuests,
		Description: "Start a new quest.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Quest name", Required: true},
			Field{Name: "description", Type: "string", Description: "Quest description"},
			Field{Name: "giver", Type: "string", Description: "NPC who gave the quest"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindQuestCreate, QuestName: name, QuestDescription: optionalString(args, "description"),
				Giver: optionalString(args, "giver"),
			}, true
		},
	})

	r.add(Spec{
		Name: "quest_complete", Domain: DomainQuests,
		Description: "Mark a quest complete.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Quest name", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindQuestComplete, QuestName: name}, true
		},
	})

	r.add(Spec{
		Name: "quest_fail", Domain: DomainQuests,
		Description: "Mark a quest failed.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Quest name", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindQuestFail, QuestName: name}, true
		},
	})

	r.add(Spec{
		Name: "quest_abandon", Domain: DomainQuests,
		Description: "Mark a quest abandoned.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Quest name", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindQuestAbandon, QuestName: name}, true
		},
	})

	r.add(Spec{
		Name: "quest_objective_add", Domain: DomainQuests,
		Description: "Add an objective to an existing quest.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Quest name", Required: true},
			Field{Name: "objective_text", Type: "string", Description: "Objective text", Required: true},
			Field{Name: "optional", Type: "boolean", Description: "True if the objective is optional"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			text, ok := requireString(args, "objective_text")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindQuestObjectiveAdd, QuestName: name, ObjectiveText: text,
				Optional: optionalBool(args, "optional"),
			}, true
		},
	})

	r.add(Spec{
		Name: "quest_objective_complete", Domain: DomainQuests,
		Description: "Mark an objective complete by a case-insensitive substring of its text.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Quest name", Required: true},
			Field{Name: "objective_text", Type: "string", Description: "Substring identifying the objective", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			text, ok := requireString(args, "objective_text")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindQuestObjectiveComplete, QuestName: name, ObjectiveText: text}, true
		},
	})

	r.add(Spec{
		Name: "quest_update", Domain: DomainQuests,
		Description: "Update a quest's description or rewards.",
		Schema: BuildSchema(
			Field{Name: "name", Type: "string", Description: "Quest name", Required: true},
			Field{Name: "description", Type: "string", Description: "New description"},
			Field{Name: "rewards", Type: "string", Description: "New rewards text"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			name, ok := requireString(args, "name")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindQuestUpdate, QuestName: name, QuestDescription: optionalString(args, "description"),
				Rewards: optionalString(args, "rewards"),
			}, true
		},
	})
}
