package orchestrator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/intent"
	"github.com/dungeonkeeper/dm-engine/internal/modelclient"
	"github.com/dungeonkeeper/dm-engine/internal/relevance"
	"github.com/dungeonkeeper/dm-engine/internal/tools"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// dmPersonaPrompt is the fixed half of the system prompt: persona and
// tool-use rules. The variable half — world
// snapshot, recent narrative, relevance-filtered memory — is appended by
// buildSystemPrompt per turn.
const dmPersonaPrompt = `You are the dungeon master for a solo D&D 5e session. Narrate vividly but ` +
	`concisely, in second person, addressing the player directly. Whenever the player's action would ` +
	`change the game's mechanical state — damage, healing, conditions, inventory, checks and saves, ` +
	`combat, quests, NPC disposition, or anything else with a corresponding tool — call the matching tool ` +
	`rather than narrating a mechanical effect without one. Never invent dice results in prose; let a tool ` +
	`roll them. Keep narration grounded in what the tools actually returned.`

// buildSystemPrompt assembles the full system prompt for one turn: persona,
// the current world snapshot, and the relevance check's surfaced
// consequences/entities.
func (s *Session) buildSystemPrompt(check relevance.CheckResult) string {
	var b strings.Builder
	b.WriteString(dmPersonaPrompt)
	b.WriteString("\n\n")
	b.WriteString(s.buildWorldSnapshot())

	if mem := s.buildMemoryContext(check); mem != "" {
		b.WriteString("\n\n")
		b.WriteString(mem)
	}
	return b.String()
}

// buildWorldSnapshot renders HP, AC, location, combat (if any), inventory
// summary, and prepared spells.
func (s *Session) buildWorldSnapshot() string {
	c := s.World.Character
	var b strings.Builder
	fmt.Fprintf(&b, "Character: %s (level %d)\n", c.Name, c.Level)
	fmt.Fprintf(&b, "HP: %d/%d", c.HP.Current, c.HP.Maximum)
	if c.HP.Temporary > 0 {
		fmt.Fprintf(&b, " (+%d temp)", c.HP.Temporary)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "AC: %d\n", c.CurrentAC())
	fmt.Fprintf(&b, "Location: %s\n", s.currentLocationName())

	if len(c.Conditions) > 0 {
		names := make([]string, 0, len(c.Conditions))
		for _, cond := range c.Conditions {
			names = append(names, string(cond.Kind))
		}
		fmt.Fprintf(&b, "Conditions: %s\n", strings.Join(names, ", "))
	}

	if s.World.Mode == world.ModeCombat && s.World.Combat != nil {
		fmt.Fprintf(&b, "Combat: round %d, %d combatants, current turn: %s\n",
			s.World.Combat.Round, len(s.World.Combat.Combatants), currentCombatantName(s.World.Combat))
	}

	if len(c.Inventory.Items) > 0 {
		names := make([]string, 0, len(c.Inventory.Items))
		for _, it := range c.Inventory.Items {
			if it.Quantity > 1 {
				names = append(names, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
			} else {
				names = append(names, it.Name)
			}
		}
		fmt.Fprintf(&b, "Inventory: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "Gold: %d, Silver: %d\n", c.Inventory.Gold, c.Inventory.Silver)

	if c.Spellcasting != nil && len(c.Spellcasting.Prepared) > 0 {
		fmt.Fprintf(&b, "Prepared spells: %s\n", strings.Join(c.Spellcasting.Prepared, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func currentCombatantName(cs *world.CombatState) string {
	if cur := cs.Current(); cur != nil {
		return cur.Name
	}
	return "(none)"
}

// buildMemoryContext renders the relevance-filtered memory block: the
// triggered consequences and the known facts about entities the
// relevance check surfaced.
func (s *Session) buildMemoryContext(check relevance.CheckResult) string {
	var b strings.Builder

	if len(check.TriggeredConsequences) > 0 {
		b.WriteString("Triggered consequences this turn:\n")
		for _, raw := range check.TriggeredConsequences {
			line := raw
			if cid, err := id.ParseConsequenceID(raw); err == nil {
				if c, ok := s.Memory.Consequence(cid); ok {
					line = c.EffectText
				}
			}
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	if len(check.RelevantEntities) > 0 {
		facts := s.factsAbout(check.RelevantEntities)
		if len(facts) > 0 {
			b.WriteString("Known facts about entities mentioned:\n")
			for _, f := range facts {
				fmt.Fprintf(&b, "- %s\n", f)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// factsAbout returns the text of every remembered Fact whose Subject or
// Related list names one of entities (case-insensitive), capped to keep
// the prompt small.
func (s *Session) factsAbout(entities []string) []string {
	const maxFacts = 10
	want := make(map[string]bool, len(entities))
	for _, e := range entities {
		want[strings.ToLower(strings.TrimSpace(e))] = true
	}

	var out []string
	for _, f := range s.Memory.Facts() {
		if !(want[strings.ToLower(f.Subject)] || anyWanted(want, f.Related)) {
			continue
		}
		out = append(out, f.Text)
		if len(out) >= maxFacts {
			break
		}
	}
	return out
}

func anyWanted(want map[string]bool, related []string) bool {
	for _, r := range related {
		if want[strings.ToLower(r)] {
			return true
		}
	}
	return false
}

// buildMessages renders the recent narrative history (the last
// MaxHistoryEntries lines) plus the current turn's player line as the
// single opening user message.
func (s *Session) buildMessages() []modelclient.Message {
	start := 0
	if len(s.history) > s.cfg.MaxHistoryEntries {
		start = len(s.history) - s.cfg.MaxHistoryEntries
	}
	recent := s.history[start:]

	return []modelclient.Message{{
		Role:    modelclient.RoleUser,
		Content: []modelclient.ContentBlock{{Kind: modelclient.BlockText, Text: strings.Join(recent, "\n")}},
	}}
}

// buildTools renders the Tool Registry's specs into the wire schema shape
// the model client sends with each request.
func (s *Session) buildTools() []modelclient.Tool {
	specs := s.registry.Specs()
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

	out := make([]modelclient.Tool, 0, len(specs))
	for _, spec := range specs {
		out = append(out, modelclient.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: schemaToMap(spec.Schema),
		})
	}
	return out
}

// schemaToMap round-trips a *tools.Schema through JSON into a
// map[string]any, the shape modelclient.Tool.InputSchema (and the
// Anthropic SDK binding beneath it) expects.
func schemaToMap(schema *tools.Schema) map[string]any {
	data, err := json.Marshal(schema)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"type": "object"}
	}
	return m
}

// inferredChangeToIntent maps one relevance.InferredChange
// onto the StateAssert Intent the Rules Engine already knows how to
// resolve, so inferred and tool-driven state assertions
// share the exact same resolve/apply path.
func inferredChangeToIntent(change relevance.InferredChange) intent.Intent {
	return intent.Intent{
		Kind:         intent.KindStateAssert,
		EntityName:   change.EntityName,
		StateType:    intent.StateType(change.StateType),
		NewValue:     change.NewValue,
		TargetEntity: change.TargetEntity,
	}
}
