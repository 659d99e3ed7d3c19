package session

import (
	"context"
	"time"

	"loom/internal/types"
)

// MessageLoader fetches the full durable transcript for a session.
// *client.Client satisfies it.
type MessageLoader interface {
	Messages(ctx context.Context, sessionID string) ([]types.SessionMessage, error)
}

// OptimisticUserMessage is the client-only echo shown between triggering a
// send and the confirming user_message stream event. At most one exists.
type OptimisticUserMessage struct {
	Content   string
	Timestamp time.Time
}

// StreamingAssistantMessage accumulates delta text for a content block under
// construction. At most one exists; complete content_block units bypass it.
type StreamingAssistantMessage struct {
	Content   string
	Timestamp time.Time
}

// Store owns the three state slices for one open session view: the persisted
// transcript cache (authoritative, replaced wholesale on reload), one
// optimistic user message, and one streaming assistant message. Nothing else
// mutates them.
type Store struct {
	sessionID string
	loader    MessageLoader

	persisted  []types.SessionMessage
	optimistic *OptimisticUserMessage
	streaming  *StreamingAssistantMessage

	now func() time.Time
}

func NewStore(sessionID string, loader MessageLoader) *Store {
	return &Store{
		sessionID: sessionID,
		loader:    loader,
		now:       time.Now,
	}
}

func (s *Store) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

func (s *Store) Persisted() []types.SessionMessage {
	if s == nil {
		return nil
	}
	return s.persisted
}

func (s *Store) Optimistic() *OptimisticUserMessage {
	if s == nil {
		return nil
	}
	return s.optimistic
}

func (s *Store) Streaming() *StreamingAssistantMessage {
	if s == nil {
		return nil
	}
	return s.streaming
}

// Append adds one message to the transcript cache. A message whose id is
// already present is skipped; ids are unique once persisted.
func (s *Store) Append(msg types.SessionMessage) bool {
	if s == nil {
		return false
	}
	if msg.ID != "" {
		for i := range s.persisted {
			if s.persisted[i].ID == msg.ID {
				return false
			}
		}
	}
	s.persisted = append(s.persisted, msg)
	return true
}

// AttachToolResult fills in the result or error of the pending tool entry
// with the given id. An unknown id, or an entry that already carries a
// result, is left alone.
func (s *Store) AttachToolResult(toolUseID, result, errText string) bool {
	if s == nil || toolUseID == "" {
		return false
	}
	for i := range s.persisted {
		entry := &s.persisted[i]
		if entry.ID != toolUseID || entry.ToolName == "" {
			continue
		}
		if entry.ToolResult != "" || entry.ToolError != "" {
			return false
		}
		entry.ToolResult = result
		entry.ToolError = errText
		return true
	}
	return false
}

// ToolResultAttached reports whether the tool entry with the given id
// already carries a result or error.
func (s *Store) ToolResultAttached(toolUseID string) bool {
	if s == nil || toolUseID == "" {
		return false
	}
	for i := range s.persisted {
		entry := &s.persisted[i]
		if entry.ID == toolUseID && entry.ToolName != "" {
			return entry.ToolResult != "" || entry.ToolError != ""
		}
	}
	return false
}

func (s *Store) SetOptimisticUser(content string) {
	if s == nil {
		return
	}
	s.optimistic = &OptimisticUserMessage{Content: content, Timestamp: s.now()}
}

func (s *Store) ClearOptimisticUser() {
	if s == nil {
		return
	}
	s.optimistic = nil
}

// StartStreaming opens a fresh streaming assistant message, discarding any
// prior one.
func (s *Store) StartStreaming() {
	if s == nil {
		return
	}
	s.streaming = &StreamingAssistantMessage{Timestamp: s.now()}
}

// AppendStreaming appends delta text, creating the streaming message on
// demand so out-of-order delivery cannot drop text.
func (s *Store) AppendStreaming(content string) {
	if s == nil {
		return
	}
	if s.streaming == nil {
		s.streaming = &StreamingAssistantMessage{Content: content, Timestamp: s.now()}
		return
	}
	s.streaming.Content += content
}

func (s *Store) ClearStreaming() {
	if s == nil {
		return
	}
	s.streaming = nil
}

func (s *Store) ClearEphemeral() {
	if s == nil {
		return
	}
	s.optimistic = nil
	s.streaming = nil
}

// ReplacePersisted swaps in a freshly fetched transcript wholesale. The
// persisted fetch is the authoritative post-reconciliation state, so both
// ephemeral slices are dropped with it.
func (s *Store) ReplacePersisted(messages []types.SessionMessage) {
	if s == nil {
		return
	}
	s.persisted = messages
	s.ClearEphemeral()
}

// Reload fetches the durable transcript and replaces the cache. This is the
// universal recovery path: it discards possibly-inconsistent ephemeral state
// and re-derives truth from storage.
func (s *Store) Reload(ctx context.Context) error {
	if s == nil || s.loader == nil {
		return nil
	}
	messages, err := s.loader.Messages(ctx, s.sessionID)
	if err != nil {
		return err
	}
	s.ReplacePersisted(messages)
	return nil
}

// Reset drops all three slices; used when the view unmounts.
func (s *Store) Reset() {
	if s == nil {
		return
	}
	s.persisted = nil
	s.ClearEphemeral()
}
