package types

import "testing"

func TestDecodeStreamEventContentBlock(t *testing.T) {
	data := []byte(`{"type":"content_block","event_id":"e1","timestamp":"2026-01-02T03:04:05Z","sequence":3,"block_type":"text","content":"hello","response_id":"r1","agent_id":"a1","agent_name":"Planner","from_instance_id":"B"}`)
	ev, ok := DecodeStreamEvent(data)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if ev.Type != EventContentBlock || ev.EventID != "e1" || ev.Sequence != 3 {
		t.Fatalf("unexpected header: %+v", ev)
	}
	if ev.ContentBlock == nil {
		t.Fatal("expected content block payload")
	}
	if ev.ContentBlock.Content != "hello" || ev.ContentBlock.ResponseID != "r1" {
		t.Fatalf("unexpected payload: %+v", ev.ContentBlock)
	}
	if ev.ContentBlock.FromInstanceID != "B" || ev.ContentBlock.AgentName != "Planner" {
		t.Fatalf("unexpected identity fields: %+v", ev.ContentBlock)
	}
}

func TestDecodeStreamEventUserMessage(t *testing.T) {
	data := []byte(`{"type":"user_message","event_id":"e2","message":{"id":"m1","instance_id":"S","role":"user","content":"hi"}}`)
	ev, ok := DecodeStreamEvent(data)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if ev.UserMessage == nil || ev.UserMessage.Message.ID != "m1" {
		t.Fatalf("unexpected payload: %+v", ev.UserMessage)
	}
}

func TestDecodeStreamEventUserMessageRequiresID(t *testing.T) {
	data := []byte(`{"type":"user_message","message":{"content":"hi"}}`)
	if _, ok := DecodeStreamEvent(data); ok {
		t.Fatal("expected message without id to be dropped")
	}
}

func TestDecodeStreamEventNoPayloadVariants(t *testing.T) {
	for _, typ := range []string{"keepalive", "message_complete"} {
		ev, ok := DecodeStreamEvent([]byte(`{"type":"` + typ + `"}`))
		if !ok {
			t.Fatalf("%s: expected decode to succeed", typ)
		}
		if ev.ContentBlock != nil || ev.UserMessage != nil || ev.Error != nil {
			t.Fatalf("%s: expected no payload, got %+v", typ, ev)
		}
	}
}

func TestDecodeStreamEventUnknownType(t *testing.T) {
	if _, ok := DecodeStreamEvent([]byte(`{"type":"legacy_ping"}`)); ok {
		t.Fatal("expected unknown type to be dropped")
	}
}

func TestDecodeStreamEventMalformed(t *testing.T) {
	if _, ok := DecodeStreamEvent([]byte(`{"type":`)); ok {
		t.Fatal("expected malformed payload to be dropped")
	}
}

func TestDecodeStreamEventQueueStatus(t *testing.T) {
	data := []byte(`{"type":"queue_status","queue_size":2,"queued":[{"sender_name":"pm","content_preview":"next up"},{"sender_name":"qa"}]}`)
	ev, ok := DecodeStreamEvent(data)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if ev.QueueStatus == nil || ev.QueueStatus.QueueSize != 2 || len(ev.QueueStatus.Queued) != 2 {
		t.Fatalf("unexpected payload: %+v", ev.QueueStatus)
	}
}

func TestDecodeStreamEventToolLifecycle(t *testing.T) {
	use, ok := DecodeStreamEvent([]byte(`{"type":"tool_use","tool_use_id":"t1","tool_name":"search","response_id":"r2"}`))
	if !ok || use.ToolUse == nil || use.ToolUse.ToolName != "search" {
		t.Fatalf("unexpected tool_use decode: %+v ok=%v", use.ToolUse, ok)
	}
	done, ok := DecodeStreamEvent([]byte(`{"type":"tool_complete","tool_use_id":"t1","result":"ok"}`))
	if !ok || done.ToolComplete == nil || done.ToolComplete.Result != "ok" {
		t.Fatalf("unexpected tool_complete decode: %+v ok=%v", done.ToolComplete, ok)
	}
	if _, ok := DecodeStreamEvent([]byte(`{"type":"tool_complete"}`)); ok {
		t.Fatal("expected tool_complete without id to be dropped")
	}
}

func TestDecodeStreamEventSessionStatus(t *testing.T) {
	ev, ok := DecodeStreamEvent([]byte(`{"type":"session_status","status":"working"}`))
	if !ok || ev.SessionStatus == nil || ev.SessionStatus.Status != InstanceStatusWorking {
		t.Fatalf("unexpected decode: %+v ok=%v", ev.SessionStatus, ok)
	}
}
