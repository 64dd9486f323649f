package modelclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedClient_CompleteReplaysInOrder(t *testing.T) {
	client := NewScriptedClient(
		Response{Content: []ContentBlock{{Kind: BlockText, Text: "first"}}, StopReason: StopEndTurn},
		Response{Content: []ContentBlock{{Kind: BlockText, Text: "second"}}, StopReason: StopEndTurn},
	)

	resp, err := client.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Content[0].Text)

	resp, err = client.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Content[0].Text)

	_, err = client.Complete(context.Background(), Request{})
	assert.Error(t, err)
}

func TestScriptedClient_CompleteWithToolsDispatchesAndResumes(t *testing.T) {
	client := NewScriptedClient(
		Response{
			StopReason: StopToolUse,
			Content: []ContentBlock{
				{Kind: BlockToolUse, ToolUseID: "call-1", ToolName: "apply_damage", ToolInput: `{"amount":10}`},
			},
		},
		Response{
			StopReason: StopEndTurn,
			Content:    []ContentBlock{{Kind: BlockText, Text: "the blow lands"}},
		},
	)

	var executed []ContentBlock
	exec := func(_ context.Context, call ContentBlock) ContentBlock {
		executed = append(executed, call)
		return ContentBlock{Kind: BlockToolResult, ToolResultForID: call.ToolUseID, ToolResultText: "ok"}
	}

	resp, err := client.CompleteWithTools(context.Background(), Request{}, exec)
	require.NoError(t, err)
	assert.Equal(t, "the blow lands", resp.Content[0].Text)
	require.Len(t, executed, 1)
	assert.Equal(t, "apply_damage", executed[0].ToolName)

	// Second call received the assistant tool-use turn and the tool
	// result as a follow-up user message.
	require.Len(t, client.Calls, 2)
	assert.Len(t, client.Calls[1].Messages, 2)
	assert.Equal(t, RoleAssistant, client.Calls[1].Messages[0].Role)
	assert.Equal(t, RoleUser, client.Calls[1].Messages[1].Role)
}

func TestScriptedClient_StreamEmitsTextDeltaThenStop(t *testing.T) {
	client := NewScriptedClient(Response{
		Content:    []ContentBlock{{Kind: BlockText, Text: "hello"}},
		StopReason: StopEndTurn,
	})

	events, err := client.Stream(context.Background(), Request{})
	require.NoError(t, err)

	var kinds []StreamEventKind
	var text string
	for ev := range events {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventTextDelta {
			text += ev.TextDelta
		}
	}

	assert.Equal(t, "hello", text)
	assert.Equal(t, EventMessageStart, kinds[0])
	assert.Equal(t, EventMessageStop, kinds[len(kinds)-1])
}
