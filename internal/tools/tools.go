// Package tools implements the Tool Registry and Parser: a closed mapping
// from a model-facing tool name to a Domain and a parser that turns the
// model's raw JSON arguments into an Intent. Unknown tool
// names, missing required fields, and obviously out-of-range values all
// return "no Intent" rather than an error — a model mistake becomes a
// silent skip, never a crash.
//
// Field extraction goes through the same
// tidwall/gjson reader used throughout internal/jsonrepair, since tool-call
// arguments come from the same unreliable-model-JSON source the repair
// utilities exist for; Parse runs every payload through jsonrepair first.
package tools

import (
	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/jsonrepair"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// Domain groups tools by the area of the engine they touch.
type Domain string

const (
	DomainChecks        Domain = "checks"
	DomainCombat        Domain = "combat"
	DomainInventory     Domain = "inventory"
	DomainClassFeatures Domain = "class_features"
	DomainWorld         Domain = "world"
	DomainQuests        Domain = "quests"
	DomainNpc           Domain = "npc"
	DomainLocations     Domain = "locations"
	DomainGameplay      Domain = "gameplay"
	DomainState         Domain = "state"
	DomainKnowledge     Domain = "knowledge"
	DomainSchedule      Domain = "schedule"
)

// Parser turns a tool call's already-cleaned JSON arguments into an Intent,
// consulting w only to validate references (an item is actually held, an
// NPC actually exists) — never to mutate it. ok is false for "no Intent":
// a required field was absent or a value was out of range.
type Parser func(args gjson.Result, w *world.World) (intent.Intent, bool)

// Spec is one registered tool: its name, domain, description, input schema,
// and parser.
type Spec struct {
	Name        string
	Domain      Domain
	Description string
	Schema      *Schema
	Parse       Parser
}

// Registry is the closed name -> Spec map. Lookup is O(1).
type Registry struct {
	specs map[string]Spec
}

// NewRegistry builds the registry every domain file's register* function
// contributes to. There is exactly one Registry shape; it is built once at
// startup and treated as read-only afterward.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]Spec, 64)}
	registerChecks(r)
	registerCombat(r)
	registerInventory(r)
	registerClassFeatures(r)
	registerWorld(r)
	registerGameplay(r)
	registerQuests(r)
	registerNpc(r)
	registerLocations(r)
	registerState(r)
	registerKnowledge(r)
	registerSchedule(r)
	return r
}

func (r *Registry) add(s Spec) {
	r.specs[s.Name] = s
}

// Lookup returns the Spec registered under name, if any.
func (r *Registry) Lookup(name string) (Spec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Specs returns every registered tool, for mechanical schema export
//.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	return out
}

// Parse looks up name and, if found, runs rawArgs through the JSON-repair
// pipeline before handing the cleaned JSON to the domain parser. Returns
// ok=false for an unknown tool name, malformed-beyond-repair JSON, or a
// domain parser's own "no Intent" verdict.
func (r *Registry) Parse(name string, rawArgs string, w *world.World) (intent.Intent, bool) {
	spec, ok := r.Lookup(name)
	if !ok {
		return intent.Intent{}, false
	}

	cleaned := rawArgs
	if extracted, err := jsonrepair.ExtractJSON(rawArgs); err == nil {
		cleaned = extracted
	}
	if sanitized, err := jsonrepair.SanitizeJSON(cleaned); err == nil {
		cleaned = sanitized
	}
	if !gjson.Valid(cleaned) {
		return intent.Intent{}, false
	}

	return spec.Parse(gjson.Parse(cleaned), w)
}

// requireString fetches a required string field; ok is false when absent or
// empty, so a missing required field becomes "no Intent".
func requireString(args gjson.Result, field string) (string, bool) {
	v := args.Get(field)
	if !v.Exists() || v.String() == "" {
		return "", false
	}
	return v.String(), true
}

func optionalString(args gjson.Result, field string) string {
	return args.Get(field).String()
}

func optionalBool(args gjson.Result, field string) bool {
	return args.Get(field).Bool()
}

func optionalInt(args gjson.Result, field string, fallback int) int {
	v := args.Get(field)
	if !v.Exists() {
		return fallback
	}
	return int(v.Int())
}

// requireInt fetches a required integer field; ok is false when absent.
func requireInt(args gjson.Result, field string) (int, bool) {
	v := args.Get(field)
	if !v.Exists() {
		return 0, false
	}
	return int(v.Int()), true
}

func optionalFloat(args gjson.Result, field string, fallback float64) float64 {
	v := args.Get(field)
	if !v.Exists() {
		return fallback
	}
	return v.Float()
}
