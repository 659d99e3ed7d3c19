package app

import (
	"testing"

	"loom/internal/session"
	"loom/internal/types"
)

func newTestReducer() *session.Reducer {
	return session.NewReducer(session.NewStore("s1", nil), nil, session.Hooks{})
}

func blockEvent(id, content, responseID string) types.StreamEvent {
	return types.StreamEvent{
		Type:    types.EventContentBlock,
		EventID: id,
		ContentBlock: &types.ContentBlockEvent{
			BlockType:  "text",
			Content:    content,
			MessageID:  "m-" + id,
			ResponseID: responseID,
		},
	}
}

func TestConsumeTickAppliesBufferedEventsInOrder(t *testing.T) {
	ch := make(chan types.StreamEvent, 8)
	ch <- blockEvent("e1", "first", "r1")
	ch <- blockEvent("e2", "second", "r1")

	ctrl := NewStreamController(maxEventsPerTick)
	ctrl.SetStream("s1", ch, func() {})
	reducer := newTestReducer()

	result := ctrl.ConsumeTick(reducer)
	if !result.Changed {
		t.Fatal("expected changed")
	}
	if result.Applied != 2 {
		t.Fatalf("applied = %d, want 2", result.Applied)
	}
	persisted := reducer.Store().Persisted()
	if len(persisted) != 2 {
		t.Fatalf("persisted = %d messages, want 2", len(persisted))
	}
	if persisted[0].Content != "first" || persisted[1].Content != "second" {
		t.Fatalf("order lost: %q then %q", persisted[0].Content, persisted[1].Content)
	}
}

func TestConsumeTickBoundsBatchSize(t *testing.T) {
	ch := make(chan types.StreamEvent, 8)
	for i := 0; i < 5; i++ {
		ch <- blockEvent("e"+string(rune('a'+i)), "x", "r1")
	}
	ctrl := NewStreamController(3)
	ctrl.SetStream("s1", ch, func() {})
	reducer := newTestReducer()

	result := ctrl.ConsumeTick(reducer)
	if result.Applied != 3 {
		t.Fatalf("applied = %d, want 3", result.Applied)
	}
	result = ctrl.ConsumeTick(reducer)
	if result.Applied != 2 {
		t.Fatalf("second drain applied = %d, want 2", result.Applied)
	}
}

func TestConsumeTickReportsReloadNeeded(t *testing.T) {
	ch := make(chan types.StreamEvent, 4)
	ch <- types.StreamEvent{
		Type:    types.EventToolUse,
		EventID: "e1",
		ToolUse: &types.ToolUseEvent{ToolUseID: "t1", ToolName: "search", ResponseID: "r1"},
	}
	ch <- types.StreamEvent{
		Type:         types.EventToolComplete,
		EventID:      "e2",
		ToolComplete: &types.ToolCompleteEvent{ToolUseID: "t1", Result: "ok"},
	}
	ctrl := NewStreamController(maxEventsPerTick)
	ctrl.SetStream("s1", ch, func() {})

	result := ctrl.ConsumeTick(newTestReducer())
	if !result.ReloadNeeded {
		t.Fatal("tool completion should request a reload")
	}
}

func TestConsumeTickDetectsClosedChannel(t *testing.T) {
	ch := make(chan types.StreamEvent, 2)
	ch <- blockEvent("e1", "tail", "r1")
	close(ch)

	ctrl := NewStreamController(maxEventsPerTick)
	ctrl.SetStream("s1", ch, func() {})
	reducer := newTestReducer()

	result := ctrl.ConsumeTick(reducer)
	if !result.Closed {
		t.Fatal("expected closed")
	}
	if len(reducer.Store().Persisted()) != 1 {
		t.Fatal("buffered event before close should still apply")
	}
	if ctrl.Active() {
		t.Fatal("controller should drop the closed channel")
	}
	// subsequent ticks are inert
	if again := ctrl.ConsumeTick(reducer); again.Closed || again.Changed {
		t.Fatalf("tick after close: %+v", again)
	}
}

func TestSetStreamCancelsPreviousStream(t *testing.T) {
	cancelled := false
	ctrl := NewStreamController(maxEventsPerTick)
	ctrl.SetStream("s1", make(chan types.StreamEvent), func() { cancelled = true })
	ctrl.SetStream("s2", make(chan types.StreamEvent), func() {})
	if !cancelled {
		t.Fatal("replacing the stream must cancel the old one")
	}
	if ctrl.InstanceID() != "s2" {
		t.Fatalf("instance = %q, want s2", ctrl.InstanceID())
	}
}

func TestResetCancelsAndClears(t *testing.T) {
	cancelled := false
	ctrl := NewStreamController(maxEventsPerTick)
	ctrl.SetStream("s1", make(chan types.StreamEvent), func() { cancelled = true })
	ctrl.Reset()
	if !cancelled {
		t.Fatal("reset must cancel")
	}
	if ctrl.Active() || ctrl.InstanceID() != "" {
		t.Fatal("reset must clear stream state")
	}
}
