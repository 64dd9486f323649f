// Package relevance implements the relevance-check and state-inference
// model calls: two small, temperature-0 LLM calls the
// orchestrator makes around the main completion — one before it, asking
// which pending consequences the player's input triggers, and one after
// it, asking what the narrative implies changed in the world. Both return JSON the model might mangle,
// so both go through internal/jsonrepair before parsing.
//
// The request/response shaping follows internal/modelclient's flat
// Request/Response convention.
package relevance

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dungeonkeeper/dm-engine/internal/errs"
	"github.com/dungeonkeeper/dm-engine/internal/jsonrepair"
	"github.com/dungeonkeeper/dm-engine/internal/modelclient"
)

// fastModelTemperature pins both calls to temperature 0: deterministic,
// not narrative, calls.
var fastModelTemperature = 0.0

// Checker bundles the ModelClient and model name used for both the
// relevance check and state-inference calls — both run against the same
// fast model at temperature 0, so they share one collaborator.
type Checker struct {
	Client modelclient.ModelClient
	Model  string
}

// NewChecker builds a Checker against client, using model for both calls.
func NewChecker(client modelclient.ModelClient, model string) *Checker {
	return &Checker{Client: client, Model: model}
}

// CheckRequest is the relevance check's input.
type CheckRequest struct {
	PlayerInput             string
	CurrentLocation         string
	PendingConsequencesText string
}

// CheckResult is the relevance check's parsed output.
type CheckResult struct {
	TriggeredConsequences []string
	RelevantEntities      []string
	Explanation           string
}

const relevanceSystemPrompt = `You are the relevance filter for a tabletop RPG engine. Given the player's ` +
	`input, their current location, and a list of pending consequences, decide which consequences (if any) ` +
	`this input triggers and which named entities it concerns. Respond with ONLY a JSON object of the shape ` +
	`{"triggered_consequences": ["<consequence id>", ...], "relevant_entities": ["<name>", ...], "explanation": "<one sentence>"}.`

// Check runs the relevance check. If req.PendingConsequencesText
// is empty, it short-circuits to an empty CheckResult without calling the
// model at all — "If no pending consequences, short-circuit to empty."
func (c *Checker) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	if req.PendingConsequencesText == "" {
		return CheckResult{}, nil
	}

	userText := fmt.Sprintf(
		"Player input: %s\nCurrent location: %s\nPending consequences:\n%s",
		req.PlayerInput, req.CurrentLocation, req.PendingConsequencesText,
	)

	resp, err := c.Client.Complete(ctx, modelclient.Request{
		Model:       c.Model,
		MaxTokens:   512,
		System:      relevanceSystemPrompt,
		Temperature: &fastModelTemperature,
		Messages: []modelclient.Message{
			{Role: modelclient.RoleUser, Content: []modelclient.ContentBlock{{Kind: modelclient.BlockText, Text: userText}}},
		},
	})
	if err != nil {
		return CheckResult{}, err
	}

	cleaned, err := repair(responseText(resp))
	if err != nil {
		// A parse failure here is a recoverable warning —
		// the main narrative still returns, this step is simply skipped.
		return CheckResult{}, errs.ParseError("relevance check returned unparseable JSON", err)
	}

	parsed := gjson.Parse(cleaned)
	result := CheckResult{Explanation: parsed.Get("explanation").String()}
	for _, v := range parsed.Get("triggered_consequences").Array() {
		result.TriggeredConsequences = append(result.TriggeredConsequences, v.String())
	}
	for _, v := range parsed.Get("relevant_entities").Array() {
		result.RelevantEntities = append(result.RelevantEntities, v.String())
	}
	return result, nil
}

// InferenceRequest is the state-inference call's input.
type InferenceRequest struct {
	Narrative        string
	KnownEntityNames []string
}

// InferredChange is one state change the model believes the narrative
// implies.
type InferredChange struct {
	EntityName   string
	StateType    string
	NewValue     string
	Evidence     string
	Confidence   float64
	TargetEntity string
}

// InferenceResult is the state-inference call's parsed output.
type InferenceResult struct {
	InferredChanges []InferredChange
}

const inferenceSystemPrompt = `You are the state-inference filter for a tabletop RPG engine. Given the ` +
	`narrative the dungeon master just produced and the list of entities already known to the engine, identify ` +
	`any state changes (disposition, location, status, knowledge, relationship) the narrative implies but no ` +
	`tool call made explicit. Respond with ONLY a JSON object of the shape {"inferred_changes": ` +
	`[{"entity_name": "<name>", "state_type": "<disposition|location|status|knowledge|relationship>", ` +
	`"new_value": "<value>", "evidence": "<quoted or paraphrased narrative fragment>", "confidence": <0..1>, ` +
	`"target_entity": "<name or null>"}]}. Only known entities may be named; omit anything you are unsure of.`

// Infer runs the state-inference call unconditionally — there
// is no "nothing to infer from" short-circuit the way Check has, since
// narrative is produced on every turn.
func (c *Checker) Infer(ctx context.Context, req InferenceRequest) (InferenceResult, error) {
	resp, err := c.Client.Complete(ctx, modelclient.Request{
		Model:       c.Model,
		MaxTokens:   1024,
		System:      inferenceSystemPrompt,
		Temperature: &fastModelTemperature,
		Messages: []modelclient.Message{{
			Role: modelclient.RoleUser,
			Content: []modelclient.ContentBlock{{
				Kind: modelclient.BlockText,
				Text: fmt.Sprintf("Narrative:\n%s\n\nKnown entities: %v", req.Narrative, req.KnownEntityNames),
			}},
		}},
	})
	if err != nil {
		return InferenceResult{}, err
	}

	cleaned, err := repair(responseText(resp))
	if err != nil {
		return InferenceResult{}, errs.ParseError("state inference returned unparseable JSON", err)
	}

	var result InferenceResult
	for _, v := range gjson.Parse(cleaned).Get("inferred_changes").Array() {
		result.InferredChanges = append(result.InferredChanges, InferredChange{
			EntityName:   v.Get("entity_name").String(),
			StateType:    v.Get("state_type").String(),
			NewValue:     v.Get("new_value").String(),
			Evidence:     v.Get("evidence").String(),
			Confidence:   v.Get("confidence").Float(),
			TargetEntity: v.Get("target_entity").String(),
		})
	}
	return result, nil
}

// FilterByConfidence returns only the changes whose Confidence is at
// least threshold, preserving order; the orchestrator applies only these
// as StateAsserted intents.
func FilterByConfidence(changes []InferredChange, threshold float64) []InferredChange {
	out := make([]InferredChange, 0, len(changes))
	for _, c := range changes {
		if c.Confidence >= threshold {
			out = append(out, c)
		}
	}
	return out
}

// responseText concatenates every text block of a Response, since a model
// may split its JSON reply across more than one block.
func responseText(resp modelclient.Response) string {
	var out string
	for _, block := range resp.Content {
		if block.Kind == modelclient.BlockText {
			out += block.Text
		}
	}
	return out
}

// repair runs the shared extract-then-sanitize pipeline every piece of
// model JSON goes through before it's parsed.
func repair(raw string) (string, error) {
	extracted, err := jsonrepair.ExtractJSON(raw)
	if err != nil {
		return "", err
	}
	sanitized, err := jsonrepair.SanitizeJSON(extracted)
	if err != nil {
		return "", err
	}
	if !gjson.Valid(sanitized) {
		return "", errs.ParseError("repaired JSON still invalid", nil)
	}
	return sanitized, nil
}
