package app

import (
	"strings"
	"testing"

	"loom/internal/session"
	"loom/internal/types"
)

func plainGroups(messages []types.SessionMessage) []session.DisplayGroup {
	return session.GroupMessages(messages)
}

func TestRenderTranscriptMarksOptimisticUserMessage(t *testing.T) {
	groups := plainGroups([]types.SessionMessage{
		{ID: session.OptimisticMessageID, Role: types.MessageRoleUser, Content: "hello there"},
	})
	out := renderTranscript(groups, chatRenderOptions{Width: 60})
	if !strings.Contains(out, "sending…") {
		t.Fatalf("missing sending marker:\n%s", out)
	}
}

func TestRenderTranscriptOmitsSendingMarkerForPersistedUser(t *testing.T) {
	groups := plainGroups([]types.SessionMessage{
		{ID: "m1", Role: types.MessageRoleUser, Content: "hello there"},
	})
	out := renderTranscript(groups, chatRenderOptions{Width: 60})
	if strings.Contains(out, "sending…") {
		t.Fatalf("unexpected sending marker:\n%s", out)
	}
}

func TestRenderTranscriptLabelsRelayedTurns(t *testing.T) {
	groups := plainGroups([]types.SessionMessage{
		{
			ID:             "m1",
			Role:           types.MessageRoleTool,
			Content:        "relayed reply",
			ResponseID:     "r1",
			AgentName:      "Researcher",
			FromInstanceID: "inst-12345678-extra",
		},
	})
	out := renderTranscript(groups, chatRenderOptions{Width: 80})
	if !strings.Contains(out, "Researcher") {
		t.Fatalf("missing agent label:\n%s", out)
	}
	if !strings.Contains(out, "from inst-123") {
		t.Fatalf("missing relay label:\n%s", out)
	}
}

func TestRenderTranscriptMergesTurnBlocksIntoOneBubble(t *testing.T) {
	groups := plainGroups([]types.SessionMessage{
		{ID: "m1", Role: types.MessageRoleTool, Content: "part one", ResponseID: "r1", AgentName: "PM"},
		{ID: "m2", Role: types.MessageRoleTool, Content: "part two", ResponseID: "r1", AgentName: "PM"},
	})
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	out := renderTranscript(groups, chatRenderOptions{Width: 80})
	if !strings.Contains(out, "part one") || !strings.Contains(out, "part two") {
		t.Fatalf("merged turn lost content:\n%s", out)
	}
}

func TestRenderToolBlockStates(t *testing.T) {
	pending := renderToolBlock(types.SessionMessage{
		ID: "t1", Role: types.MessageRoleTool, ToolName: "search", ToolArgs: `{"q":"go"}`,
	}, 60, "⠋")
	if !strings.Contains(pending, "running") {
		t.Fatalf("pending tool missing marker:\n%s", pending)
	}

	done := renderToolBlock(types.SessionMessage{
		ID: "t1", Role: types.MessageRoleTool, ToolName: "search", ToolResult: "3 hits",
	}, 60, "")
	if !strings.Contains(done, "✓") || !strings.Contains(done, "3 hits") {
		t.Fatalf("completed tool missing result:\n%s", done)
	}

	failed := renderToolBlock(types.SessionMessage{
		ID: "t1", Role: types.MessageRoleTool, ToolName: "search", ToolError: "timeout",
	}, 60, "")
	if !strings.Contains(failed, "✗") || !strings.Contains(failed, "timeout") {
		t.Fatalf("failed tool missing error:\n%s", failed)
	}
}

func TestPreviewTextCollapsesToSingleLine(t *testing.T) {
	got := previewText("line one\nline two", 40)
	if strings.Contains(got, "\n") {
		t.Fatalf("preview kept newline: %q", got)
	}
	if !strings.Contains(got, "…") {
		t.Fatalf("preview should mark truncation: %q", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	got := truncateToWidth("a very long line of text", 8)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("got %q", got)
	}
	if got := truncateToWidth("abc", 1); got != "…" {
		t.Fatalf("width 1: got %q", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abcdefghij"); got != "abcdefgh" {
		t.Fatalf("got %q", got)
	}
	if got := shortID("ab"); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
