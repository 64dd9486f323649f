// Package orchestrator runs the per-turn session loop: player input ->
// prompt -> model -> tool loop -> effects -> memory update -> response.
//
// World and Story Memory are owned exclusively by the Session; no other
// party may mutate either.
package orchestrator

import (
	"context"
	"sync"

	"github.com/dungeonkeeper/dm-engine/internal/apply"
	"github.com/dungeonkeeper/dm-engine/internal/effect"
	"github.com/dungeonkeeper/dm-engine/internal/errs"
	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/memory"
	"github.com/dungeonkeeper/dm-engine/internal/modelclient"
	"github.com/dungeonkeeper/dm-engine/internal/relevance"
	"github.com/dungeonkeeper/dm-engine/internal/rules"
	"github.com/dungeonkeeper/dm-engine/internal/tools"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

// Config tunes the turn contract's knobs: how much conversation history
// feeds the prompt, which model names back the narrative vs. the fast
// relevance/inference calls, and the confidence floor an inferred change
// must clear before it is applied.
type Config struct {
	NarrativeModel      string
	FastModel           string
	MaxHistoryEntries   int     // "last ~20 entries".
	MaxTokens           int
	ConfidenceThreshold float64 // floor below which inferred changes are dropped
}

// DefaultConfig keeps a 20-entry history window and a
// conservative 0.6 confidence floor for silently-applied inferred changes.
func DefaultConfig() Config {
	return Config{
		MaxHistoryEntries:   20,
		MaxTokens:           2048,
		ConfidenceThreshold: 0.6,
	}
}

// Session is one player's single local session: it
// exclusively owns one World and one Story Memory, and is the only thing
// that calls the Rules Engine. Turns are serialized by mu: a second
// PlayerAction, or a Snapshot from another goroutine, waits until the
// current turn, including any outstanding ModelClient call, has finished.
type Session struct {
	// mu serializes turns with snapshots taken by the autosave timer.
	// Within a turn the core is single-threaded; the lock is the one
	// boundary where another goroutine may observe the session.
	mu sync.Mutex

	World  *world.World
	Memory *memory.Memory

	client   modelclient.ModelClient
	registry *tools.Registry
	engine   *rules.Engine
	applier  *apply.Applier
	relev    *relevance.Checker
	gen      id.Generator

	cfg Config

	history []string
	turn    int
}

// New builds a Session around an already-constructed World and Memory,
// wiring the Rules Engine, Effect Applier, Tool Registry, and Relevance
// Checker the turn contract needs. cfg's zero value is usable but
// DefaultConfig is the recommended starting point.
func New(
	w *world.World,
	mem *memory.Memory,
	client modelclient.ModelClient,
	registry *tools.Registry,
	engine *rules.Engine,
	applier *apply.Applier,
	gen id.Generator,
	cfg Config,
) *Session {
	return &Session{
		World:    w,
		Memory:   mem,
		client:   client,
		registry: registry,
		engine:   engine,
		applier:  applier,
		gen:      gen,
		cfg:      cfg,
		relev:    relevance.NewChecker(client, cfg.FastModel),
	}
}

// Response is the turn's result: the narrative text
// presented to the player, plus the full ordered list of mechanical
// Effects applied this turn, across every tool call and inferred change.
type Response struct {
	Narrative string
	Effects   []effect.Effect
}

// PlayerAction runs exactly one player turn. A model transport error from the underlying client aborts the turn with
// no state change: narrative history has already recorded the
// player's input by the time the call is made, but no World or Memory
// mutation happens until a complete Resolution exists to apply.
func (s *Session) PlayerAction(ctx context.Context, text string) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Step 1: append player input to narrative history.
	s.turn++
	s.history = append(s.history, "Player: "+text)

	expired := s.Memory.ExpireDue(s.turn)
	_ = expired // expiry is silent bookkeeping; nothing narrates an expired consequence firing.

	// Step 2: build the prompt (system persona, world snapshot, recent
	// narrative, relevance-filtered memory).
	checkResult, err := s.relev.Check(ctx, relevance.CheckRequest{
		PlayerInput:             text,
		CurrentLocation:         s.currentLocationName(),
		PendingConsequencesText: s.Memory.BuildConsequencesForRelevance(),
	})
	if err != nil {
		// A relevance parse failure is recoverable; the turn continues
		// without triggered-consequence context.
		checkResult = relevance.CheckResult{}
	}
	for _, raw := range checkResult.TriggeredConsequences {
		if cid, perr := id.ParseConsequenceID(raw); perr == nil {
			s.Memory.Trigger(cid)
		}
	}

	req := modelclient.Request{
		Model:     s.cfg.NarrativeModel,
		MaxTokens: s.cfg.MaxTokens,
		System:    s.buildSystemPrompt(checkResult),
		Messages:  s.buildMessages(),
		Tools:     s.buildTools(),
		ToolChoice: modelclient.ToolChoice{Mode: "auto"},
	}

	var allEffects []effect.Effect
	var narrative string

	// Step 3/4: call the model, then loop while it keeps calling tools.
	for iterations := 0; iterations < maxOrchestratorIterations; iterations++ {
		resp, cerr := s.client.Complete(ctx, req)
		if cerr != nil {
			return Response{}, errs.Wrap(cerr, "model completion failed")
		}

		narrative += concatText(resp)

		if resp.StopReason != modelclient.StopToolUse {
			break
		}

		assistantMsg := modelclient.Message{Role: modelclient.RoleAssistant, Content: resp.Content}
		var results []modelclient.ContentBlock
		for _, block := range resp.Content {
			if block.Kind != modelclient.BlockToolUse {
				continue
			}
			result, effects := s.dispatchTool(block)
			allEffects = append(allEffects, effects...)
			results = append(results, result)
		}

		req.Messages = append(req.Messages, assistantMsg, modelclient.Message{Role: modelclient.RoleUser, Content: results})
	}

	s.history = append(s.history, "DM: "+narrative)

	// Step 5: post-turn relevance & inference.
	s.runInference(ctx, narrative, &allEffects)

	// Step 6: return {narrative, effects}.
	return Response{Narrative: narrative, Effects: allEffects}, nil
}

// maxOrchestratorIterations bounds the same "model keeps calling tools
// forever" failure mode modelclient.runToolLoop guards against, since the
// orchestrator runs its own loop here (it needs World/Memory access per
// tool call that a plain ToolExecutor closure would have to smuggle in
// anyway).
const maxOrchestratorIterations = 32

// dispatchTool parses one ToolUse block into an Intent, resolves it through
// the Rules Engine, applies the resulting Effects, and returns the
// ToolResult block to send back plus the Effects applied, in order.
func (s *Session) dispatchTool(call modelclient.ContentBlock) (modelclient.ContentBlock, []effect.Effect) {
	in, ok := s.registry.Parse(call.ToolName, call.ToolInput, s.World)
	if !ok {
		// Bad tool arguments are silently dropped at the parser: a
		// no-op tool result rather than an error.
		return toolResult(call.ToolUseID, "(no effect: the tool call could not be understood)", false), nil
	}

	res := s.engine.Resolve(s.World, in)
	if len(res.Effects) > 0 {
		if aerr := s.applier.Apply(s.World, res.Effects); aerr != nil {
			// An invariant violation is unreachable in principle —
			// a fatal engine bug, not a recoverable turn failure.
			panic(aerr)
		}
	}
	for _, e := range res.Effects {
		s.Memory.ApplyEffect(e, s.turn)
	}

	return toolResult(call.ToolUseID, res.Narrative, false), res.Effects
}

// runInference runs the post-turn state-inference call against
// the turn's final narrative, applying only the changes whose confidence
// clears cfg.ConfidenceThreshold as StateAsserted Intents.
func (s *Session) runInference(ctx context.Context, narrative string, allEffects *[]effect.Effect) {
	result, err := s.relev.Infer(ctx, relevance.InferenceRequest{
		Narrative:        narrative,
		KnownEntityNames: s.Memory.KnownEntityNames(),
	})
	if err != nil {
		// A parse failure here is recoverable; the narrative
		// still returns, inference is simply skipped for the turn.
		return
	}

	for _, change := range relevance.FilterByConfidence(result.InferredChanges, s.cfg.ConfidenceThreshold) {
		in := inferredChangeToIntent(change)
		res := s.engine.Resolve(s.World, in)
		if len(res.Effects) == 0 {
			continue
		}
		if aerr := s.applier.Apply(s.World, res.Effects); aerr != nil {
			panic(aerr)
		}
		for _, e := range res.Effects {
			s.Memory.ApplyEffect(e, s.turn)
		}
		*allEffects = append(*allEffects, res.Effects...)
	}
}

func (s *Session) currentLocationName() string {
	if loc, ok := s.World.Locations[s.World.CurrentLocation]; ok {
		return loc.Name
	}
	return ""
}

func toolResult(toolUseID, text string, isError bool) modelclient.ContentBlock {
	return modelclient.ContentBlock{
		Kind:            modelclient.BlockToolResult,
		ToolResultForID: toolUseID,
		ToolResultText:  text,
		ToolResultError: isError,
	}
}

func concatText(resp modelclient.Response) string {
	var out string
	for _, block := range resp.Content {
		if block.Kind == modelclient.BlockText {
			out += block.Text
		}
	}
	return out
}
