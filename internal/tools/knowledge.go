package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func stringArray(args gjson.Result, field string) []string {
	arr := args.Get(field).Array()
	if len(arr) == 0 {
		return nil
	}
	out := make([]string, len(arr))
	for i, v := range arr {
		out[i] = v.String()
	}
	return out
}

func registerKnowledge(r *Registry) {
	r.add(Spec{
		Name: "knowledge_share", Domain: DomainKnowledge,
		Description: "Record that an NPC now knows a fact.",
		Schema: BuildSchema(
			Field{Name: "entity_name", Type: "string", Description: "NPC name", Required: true},
			Field{Name: "statement", Type: "string", Description: "What the NPC now knows", Required: true},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			entity, ok := requireString(args, "entity_name")
			if !ok {
				return intent.Intent{}, false
			}
			statement, ok := requireString(args, "statement")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{Kind: intent.KindKnowledgeShare, EntityName: entity, Statement: statement}, true
		},
	})

	r.add(Spec{
		Name: "remember_fact", Domain: DomainKnowledge,
		Description: "Persist a fact about an entity into story memory for later relevance checks.",
		Schema: BuildSchema(
			Field{Name: "entity_name", Type: "string", Description: "Entity the fact concerns", Required: true},
			Field{Name: "fact_text", Type: "string", Description: "The fact itself", Required: true},
			Field{Name: "fact_category", Type: "string", Description: "Free-text category"},
			Field{Name: "importance", Type: "number", Description: "Importance from 0 to 1, used for recall ranking"},
			Field{Name: "related_entities", Type: "array", Description: "Other entity names this fact touches"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			entity, ok := requireString(args, "entity_name")
			if !ok {
				return intent.Intent{}, false
			}
			text, ok := requireString(args, "fact_text")
			if !ok {
				return intent.Intent{}, false
			}
			return intent.Intent{
				Kind: intent.KindRememberFact, EntityName: entity, FactText: text,
				FactCategory: optionalString(args, "fact_category"),
				Importance:   float32(optionalFloat(args, "importance", 0.5)),
				RelatedEntities: stringArray(args, "related_entities"),
			}, true
		},
	})

	r.add(Spec{
		Name: "register_consequence", Domain: DomainKnowledge,
		Description: "Register a consequence that may trigger on a future turn.",
		Schema: BuildSchema(
			Field{Name: "trigger", Type: "string", Description: "Condition that triggers the consequence", Required: true},
			Field{Name: "effect", Type: "string", Description: "What happens when triggered", Required: true},
			Field{Name: "severity", Type: "string", Description: "Free-text severity label"},
			Field{Name: "importance", Type: "number", Description: "Importance from 0 to 1, used for recall ranking"},
			Field{Name: "expires_in_turns", Type: "integer", Description: "Turns until the consequence expires unused"},
		),
		Parse: func(args gjson.Result, w *world.World) (intent.Intent, bool) {
			trigger, ok := requireString(args, "trigger")
			if !ok {
				return intent.Intent{}, false
			}
			effectText, ok := requireString(args, "effect")
			if !ok {
				return intent.Intent{}, false
			}
			in := intent.Intent{
				Kind: intent.KindRegisterConsequence, ConsequenceTrigger: trigger, ConsequenceEffect: effectText,
				Severity: optionalString(args, "severity"), Importance: float32(optionalFloat(args, "importance", 0.5)),
			}
			if e := args.Get("expires_in_turns"); e.Exists() {
				n := int(e.Int())
				in.ExpiresInTurns = &n
			}
			return in, true
		},
	})
}
