package modelclient

import (
	"context"
	"sync"

	"github.com/dungeonkeeper/dm-engine/internal/errs"
)

// ScriptedClient is a test-only ModelClient that replays a fixed sequence
// of canned Responses, one per Complete call.
//
// CompleteWithTools runs the shared runToolLoop against the same script,
// so a scripted ToolUse response followed by a scripted final-text
// response exercises the orchestrator's real tool-dispatch path without a
// network call.
type ScriptedClient struct {
	mu        sync.Mutex
	responses []Response
	next      int
	Calls     []Request // every Request passed to Complete, in order, for assertions
}

// NewScriptedClient builds a ScriptedClient that returns responses in
// order, one per call, looping is not supported: a call past the end of
// responses returns a ModelError.
func NewScriptedClient(responses ...Response) *ScriptedClient {
	return &ScriptedClient{responses: responses}
}

func (s *ScriptedClient) Complete(_ context.Context, req Request) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, req)
	if s.next >= len(s.responses) {
		return Response{}, errs.ModelError("scripted client exhausted its response list", nil)
	}
	resp := s.responses[s.next]
	s.next++
	return resp, nil
}

func (s *ScriptedClient) CompleteWithTools(ctx context.Context, req Request, exec ToolExecutor) (Response, error) {
	return runToolLoop(ctx, req, exec, s.Complete)
}

// Stream replays the script as a single MessageStart/TextDelta/MessageStop
// sequence per response; it is a convenience for exercising streaming call
// sites in tests, not a faithful token-by-token simulation.
func (s *ScriptedClient) Stream(ctx context.Context, req Request) (<-chan StreamEvent, error) {
	resp, err := s.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent, len(resp.Content)+3)
	events <- StreamEvent{Kind: EventMessageStart}
	for i, block := range resp.Content {
		if block.Kind == BlockText {
			events <- StreamEvent{Kind: EventTextDelta, Index: i, TextDelta: block.Text}
		}
	}
	events <- StreamEvent{Kind: EventMessageDelta, StopReason: resp.StopReason}
	events <- StreamEvent{Kind: EventMessageStop}
	close(events)
	return events, nil
}
