package session

import (
	"time"

	"loom/internal/types"
)

// OptimisticMessageID marks the locally-echoed user message in a projected
// transcript. Server-assigned IDs never collide with it.
const OptimisticMessageID = "_optimistic"

// Transcript derives the renderable message sequence from the three state
// slices: persisted cache first, then the optimistic user echo, then the
// in-progress streaming assistant text. Pure projection; the slices stay the
// only mutable state.
func Transcript(persisted []types.SessionMessage, optimistic *OptimisticUserMessage, streaming *StreamingAssistantMessage) []types.SessionMessage {
	out := make([]types.SessionMessage, 0, len(persisted)+2)
	out = append(out, persisted...)
	if optimistic != nil {
		out = append(out, types.SessionMessage{
			ID:        OptimisticMessageID,
			Role:      types.MessageRoleUser,
			Content:   optimistic.Content,
			Timestamp: formatTimestamp(optimistic.Timestamp),
		})
	}
	if streaming != nil {
		out = append(out, types.SessionMessage{
			Role:      types.MessageRoleTool,
			Content:   streaming.Content,
			Timestamp: formatTimestamp(streaming.Timestamp),
		})
	}
	return out
}

// RenderableTranscript is the view over the store's current slices.
func (s *Store) RenderableTranscript() []types.SessionMessage {
	if s == nil {
		return nil
	}
	return Transcript(s.persisted, s.optimistic, s.streaming)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
