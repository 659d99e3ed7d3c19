package session

import (
	"testing"
	"time"

	"loom/internal/types"
)

func TestTranscriptOrdersSlices(t *testing.T) {
	persisted := []types.SessionMessage{
		{ID: "m1", Role: types.MessageRoleUser, Content: "hi"},
		{ID: "m2", Role: types.MessageRoleTool, Content: "hello", ResponseID: "r1"},
	}
	optimistic := &OptimisticUserMessage{Content: "pending", Timestamp: time.Unix(100, 0)}
	streaming := &StreamingAssistantMessage{Content: "typing", Timestamp: time.Unix(200, 0)}

	out := Transcript(persisted, optimistic, streaming)
	if len(out) != 4 {
		t.Fatalf("transcript = %d entries", len(out))
	}
	if out[2].Role != types.MessageRoleUser || out[2].Content != "pending" {
		t.Fatalf("optimistic entry = %+v", out[2])
	}
	if out[3].Role != types.MessageRoleTool || out[3].Content != "typing" {
		t.Fatalf("streaming entry = %+v", out[3])
	}
}

func TestTranscriptWithoutEphemeral(t *testing.T) {
	persisted := []types.SessionMessage{{ID: "m1", Role: types.MessageRoleUser}}
	out := Transcript(persisted, nil, nil)
	if len(out) != 1 {
		t.Fatalf("transcript = %d entries", len(out))
	}
}

func TestTranscriptDoesNotAliasPersisted(t *testing.T) {
	persisted := []types.SessionMessage{{ID: "m1", Content: "orig"}}
	out := Transcript(persisted, nil, nil)
	out[0].Content = "mutated"
	if persisted[0].Content != "orig" {
		t.Fatal("projection must not mutate the persisted slice")
	}
}

func TestRenderableTranscript(t *testing.T) {
	s := NewStore("S", nil)
	s.Append(types.SessionMessage{ID: "m1", Role: types.MessageRoleUser, Content: "hi"})
	s.SetOptimisticUser("pending")
	out := s.RenderableTranscript()
	if len(out) != 2 || out[1].Content != "pending" {
		t.Fatalf("transcript = %+v", out)
	}
}
