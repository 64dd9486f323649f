// Package modelclient defines the ModelClient capability: the
// abstract contract the orchestrator uses to talk to a language model,
// independent of transport. Request/Response/ContentBlock mirror the
// engine's own needs rather than any one provider's wire format, so a
// second transport could be dropped in behind the same interface without
// touching internal/orchestrator.
//
// One interface, one real adapter, one scripted test double. The
// interface is hand-written so the orchestrator receives raw ToolUse
// blocks and dispatches them itself.
package modelclient

import (
	"context"

	"github.com/dungeonkeeper/dm-engine/internal/errs"
)

// Role identifies who a Message is attributed to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// BlockKind discriminates ContentBlock's tagged-union variants, following the same flat-struct-plus-Kind-switch convention used by
// internal/intent and internal/effect.
type BlockKind string

const (
	BlockText       BlockKind = "text"
	BlockImage      BlockKind = "image"
	BlockToolUse    BlockKind = "tool_use"
	BlockToolResult BlockKind = "tool_result"
	BlockThinking   BlockKind = "thinking"
)

// ContentBlock is one block of a Message's content. Only the fields
// relevant to Kind are populated; the rest are zero.
type ContentBlock struct {
	Kind BlockKind

	// BlockText
	Text string

	// BlockImage: raw bytes plus a MIME type, source-agnostic (the
	// orchestrator never needs a base64 string or a URL distinction).
	ImageMediaType string
	ImageData      []byte

	// BlockToolUse
	ToolUseID   string
	ToolName    string
	ToolInput   string // raw JSON, parsed by the tool's own Parser
	ToolInputMap map[string]any

	// BlockToolResult
	ToolResultForID string
	ToolResultText  string
	ToolResultError bool

	// BlockThinking
	Thinking string
}

// Message is one turn of conversation, attributed to Role, carrying one or
// more ContentBlocks.
type Message struct {
	Role    Role
	Content []ContentBlock
}

// Tool describes one callable tool in the shape the model expects: a name, a description, and a JSON Schema
// object (type/properties/required), already built by internal/tools.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// ToolChoice constrains whether/which tool the model must call. The zero
// value (Mode == "") means "let the model decide," the common case.
type ToolChoice struct {
	Mode string // "", "auto", "any", or "tool"
	Name string // tool name, when Mode == "tool"
}

// Request is one completion request.
type Request struct {
	Model       string
	MaxTokens   int
	System      string
	Messages    []Message
	Temperature *float64
	Tools       []Tool
	ToolChoice  ToolChoice
}

// StopReason says why the model stopped generating.
type StopReason string

const (
	StopEndTurn      StopReason = "end_turn"
	StopMaxTokens    StopReason = "max_tokens"
	StopSequence     StopReason = "stop_sequence"
	StopToolUse      StopReason = "tool_use"
)

// Usage reports token accounting, surfaced for callers that want to log or
// budget it; the engine itself never branches on it.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is one completion response.
type Response struct {
	ID         string
	Model      string
	Content    []ContentBlock
	StopReason StopReason
	Usage      Usage
}

// ToolExecutor resolves one ToolUse block to its ToolResult content,
// supplied by the orchestrator (which owns World and Story Memory) to
// CompleteWithTools so this package stays free of any domain import.
type ToolExecutor func(ctx context.Context, call ContentBlock) ContentBlock

// StreamEventKind discriminates StreamEvent's variants.
type StreamEventKind string

const (
	EventMessageStart      StreamEventKind = "message_start"
	EventContentBlockStart StreamEventKind = "content_block_start"
	EventTextDelta         StreamEventKind = "text_delta"
	EventInputJSONDelta    StreamEventKind = "input_json_delta"
	EventContentBlockStop  StreamEventKind = "content_block_stop"
	EventMessageDelta      StreamEventKind = "message_delta"
	EventMessageStop       StreamEventKind = "message_stop"
	EventPing              StreamEventKind = "ping"
	EventError             StreamEventKind = "error"
)

// StreamEvent is one typed event of a streamed completion.
type StreamEvent struct {
	Kind StreamEventKind

	Index int // BlockStart/BlockStop/TextDelta/InputJSONDelta

	// EventContentBlockStart
	BlockType  BlockKind
	ToolUseID  string
	ToolName   string

	// EventTextDelta
	TextDelta string

	// EventInputJSONDelta
	PartialJSON string

	// EventMessageDelta
	StopReason StopReason

	// EventError
	Err error
}

// ModelClient is a pure contract any transport may satisfy. Complete is
// one request/response round trip; CompleteWithTools performs the tool loop
// ("on stop_reason=ToolUse, pass each ToolUse to the executor, append the
// executor's ToolResult as a user message, and re-call until any other
// stop reason"); Stream emits the typed event sequence.
type ModelClient interface {
	Complete(ctx context.Context, req Request) (Response, error)
	CompleteWithTools(ctx context.Context, req Request, exec ToolExecutor) (Response, error)
	Stream(ctx context.Context, req Request) (<-chan StreamEvent, error)
}

// maxToolLoopIterations bounds CompleteWithTools' re-call loop so a model
// stuck calling tools forever (or an executor that never satisfies it)
// can't spin the orchestrator indefinitely.
const maxToolLoopIterations = 32

// runToolLoop is the transport-agnostic half of CompleteWithTools: given a
// function that performs one Complete-shaped call, it repeats the
// "inspect stop_reason, execute ToolUse blocks, append results" cycle.
// ScriptedClient uses this helper; AnthropicClient.CompleteWithTools runs
// its own loop.
func runToolLoop(
	ctx context.Context,
	req Request,
	exec ToolExecutor,
	call func(ctx context.Context, req Request) (Response, error),
) (Response, error) {
	for i := 0; i < maxToolLoopIterations; i++ {
		resp, err := call(ctx, req)
		if err != nil {
			return Response{}, err
		}
		if resp.StopReason != StopToolUse {
			return resp, nil
		}

		assistantMsg := Message{Role: RoleAssistant, Content: resp.Content}
		results := make([]ContentBlock, 0, len(resp.Content))
		for _, block := range resp.Content {
			if block.Kind != BlockToolUse {
				continue
			}
			results = append(results, exec(ctx, block))
		}

		req.Messages = append(append([]Message{}, req.Messages...), assistantMsg, Message{
			Role:    RoleUser,
			Content: results,
		})
	}
	return Response{}, errs.ModelError("tool loop exceeded max iterations without resolving", nil)
}
