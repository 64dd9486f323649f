package modelclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dungeonkeeper/dm-engine/internal/errs"
)

// DefaultModel is used whenever a Request leaves Model empty. Relevance and
// inference calls (internal/relevance) want a fast, cheap model; the main
// narrative call typically overrides this with a stronger one.
const DefaultModel = anthropic.ModelClaudeSonnet4_5

// AnthropicClient is the real ModelClient adapter, built directly on
// anthropic-sdk-go: Messages.New returns the
// raw content-block list the orchestrator's tool-dispatch loop needs.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropicClient builds a client from ANTHROPIC_API_KEY, following the
// SDK's own zero-config default.
func NewAnthropicClient() *AnthropicClient {
	return &AnthropicClient{client: anthropic.NewClient()}
}

// NewAnthropicClientWithKey builds a client against an explicit API key,
// for callers that source it from their own config layer rather than the
// environment.
func NewAnthropicClientWithKey(apiKey string) *AnthropicClient {
	return &AnthropicClient{client: anthropic.NewClient(option.WithAPIKey(apiKey))}
}

func (c *AnthropicClient) Complete(ctx context.Context, req Request) (Response, error) {
	params, err := toMessageNewParams(req)
	if err != nil {
		return Response{}, err
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Response{}, errs.ModelError("anthropic message request failed", err)
	}
	return fromMessage(resp), nil
}

// CompleteWithTools performs the standard tool loop, keeping
// the conversation in native anthropic.MessageParam form between calls
// (resp.ToParam() for the assistant turn, NewToolResultBlock for each
// executed tool) rather than round-tripping through Request/Response on
// every iteration, mirroring the documented manual-loop pattern exactly.
func (c *AnthropicClient) CompleteWithTools(ctx context.Context, req Request, exec ToolExecutor) (Response, error) {
	params, err := toMessageNewParams(req)
	if err != nil {
		return Response{}, err
	}
	messages := params.Messages

	for i := 0; i < maxToolLoopIterations; i++ {
		params.Messages = messages
		resp, err := c.client.Messages.New(ctx, params)
		if err != nil {
			return Response{}, errs.ModelError("anthropic message request failed", err)
		}

		messages = append(messages, resp.ToParam())
		if resp.StopReason != anthropic.StopReasonToolUse {
			return fromMessage(resp), nil
		}

		var results []anthropic.ContentBlockParamUnion
		for _, block := range resp.Content {
			toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
			if !ok {
				continue
			}
			result := exec(ctx, ContentBlock{
				Kind:      BlockToolUse,
				ToolUseID: toolUse.ID,
				ToolName:  toolUse.Name,
				ToolInput: toolUse.JSON.Input.Raw(),
			})
			results = append(results, anthropic.NewToolResultBlock(result.ToolResultForID, result.ToolResultText, result.ToolResultError))
		}
		messages = append(messages, anthropic.NewUserMessage(results...))
	}
	return Response{}, errs.ModelError("anthropic tool loop exceeded max iterations without resolving", nil)
}

func (c *AnthropicClient) Stream(ctx context.Context, req Request) (<-chan StreamEvent, error) {
	params, err := toMessageNewParams(req)
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent, 16)
	go func() {
		defer close(events)
		stream := c.client.Messages.NewStreaming(ctx, params)
		for stream.Next() {
			if ev, ok := fromStreamEvent(stream.Current()); ok {
				events <- ev
			}
		}
		if err := stream.Err(); err != nil {
			events <- StreamEvent{Kind: EventError, Err: errs.ModelError("anthropic stream failed", err)}
		}
	}()
	return events, nil
}

func toMessageNewParams(req Request) (anthropic.MessageNewParams, error) {
	model := anthropic.Model(req.Model)
	if req.Model == "" {
		model = DefaultModel
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: int64(req.MaxTokens),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	for _, m := range req.Messages {
		blocks, err := toContentBlockParams(m.Content)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		switch m.Role {
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(blocks...))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(blocks...))
		}
	}

	for _, t := range req.Tools {
		tp := anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{Properties: t.InputSchema["properties"]},
		}
		tp.InputSchema.Required = asStringSlice(t.InputSchema["required"])
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{OfTool: &tp})
	}

	switch req.ToolChoice.Mode {
	case "any":
		params.ToolChoice = anthropic.ToolChoiceUnionParam{OfAny: &anthropic.ToolChoiceAnyParam{}}
	case "tool":
		params.ToolChoice = anthropic.ToolChoiceUnionParam{OfTool: &anthropic.ToolChoiceToolParam{Name: req.ToolChoice.Name}}
	case "auto", "":
		// leave unset: SDK default is "auto" behavior.
	}

	return params, nil
}

// toContentBlockParams converts our ContentBlock history back into the
// wire shape for a *new* outgoing message (user turn or a reconstructed
// assistant turn supplied by a caller that isn't using the tool loop
// above). ToolUse blocks on the assistant side cannot round-trip through
// this path — CompleteWithTools keeps those in native anthropic.MessageParam
// form via resp.ToParam() instead, precisely to avoid needing to rebuild
// them here.
func toContentBlockParams(blocks []ContentBlock) ([]anthropic.ContentBlockParamUnion, error) {
	out := make([]anthropic.ContentBlockParamUnion, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case BlockText:
			out = append(out, anthropic.NewTextBlock(b.Text))
		case BlockToolResult:
			out = append(out, anthropic.NewToolResultBlock(b.ToolResultForID, b.ToolResultText, b.ToolResultError))
		default:
			return nil, errs.InvalidIntent(fmt.Sprintf("modelclient: cannot encode content block kind %q into a request", b.Kind))
		}
	}
	return out, nil
}

// asStringSlice tolerates both a []string and the []interface{} shape a
// JSON-roundtripped schema (internal/tools.Schema -> map[string]any)
// produces for its "required" array.
func asStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func fromMessage(resp *anthropic.Message) Response {
	out := Response{
		ID:         resp.ID,
		Model:      string(resp.Model),
		StopReason: StopReason(resp.StopReason),
		Usage: Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}
	for _, block := range resp.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			out.Content = append(out.Content, ContentBlock{Kind: BlockText, Text: variant.Text})
		case anthropic.ThinkingBlock:
			out.Content = append(out.Content, ContentBlock{Kind: BlockThinking, Thinking: variant.Thinking})
		case anthropic.ToolUseBlock:
			cb := ContentBlock{
				Kind:      BlockToolUse,
				ToolUseID: variant.ID,
				ToolName:  variant.Name,
				ToolInput: variant.JSON.Input.Raw(),
			}
			var asMap map[string]any
			if json.Unmarshal([]byte(cb.ToolInput), &asMap) == nil {
				cb.ToolInputMap = asMap
			}
			out.Content = append(out.Content, cb)
		}
	}
	return out
}

func fromStreamEvent(event anthropic.MessageStreamEventUnion) (StreamEvent, bool) {
	switch variant := event.AsAny().(type) {
	case anthropic.MessageStartEvent:
		return StreamEvent{Kind: EventMessageStart}, true
	case anthropic.ContentBlockStartEvent:
		ev := StreamEvent{Kind: EventContentBlockStart, Index: int(variant.Index)}
		if toolUse, ok := variant.ContentBlock.AsAny().(anthropic.ToolUseBlock); ok {
			ev.BlockType = BlockToolUse
			ev.ToolUseID = toolUse.ID
			ev.ToolName = toolUse.Name
		}
		return ev, true
	case anthropic.ContentBlockDeltaEvent:
		switch delta := variant.Delta.AsAny().(type) {
		case anthropic.TextDelta:
			return StreamEvent{Kind: EventTextDelta, Index: int(variant.Index), TextDelta: delta.Text}, true
		case anthropic.InputJSONDelta:
			return StreamEvent{Kind: EventInputJSONDelta, Index: int(variant.Index), PartialJSON: delta.PartialJSON}, true
		}
		return StreamEvent{}, false
	case anthropic.ContentBlockStopEvent:
		return StreamEvent{Kind: EventContentBlockStop, Index: int(variant.Index)}, true
	case anthropic.MessageDeltaEvent:
		return StreamEvent{Kind: EventMessageDelta, StopReason: StopReason(variant.Delta.StopReason)}, true
	case anthropic.MessageStopEvent:
		return StreamEvent{Kind: EventMessageStop}, true
	default:
		return StreamEvent{Kind: EventPing}, true
	}
}

// IsTransportError reports whether err came from the SDK's own transport
// (non-2xx, timeout, connection failure) rather than from this package's
// own validation — callers that need status-code-specific retry/backoff
// behavior can further errors.As into *anthropic.Error.
func IsTransportError(err error) bool {
	var apiErr *anthropic.Error
	return errors.As(err, &apiErr)
}
