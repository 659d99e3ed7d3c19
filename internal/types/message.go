package types

// MessageRole is the wire-level role of a persisted session message. The UI
// further distinguishes assistant text from tool results at the block level.
type MessageRole string

const (
	MessageRoleUser MessageRole = "user"
	MessageRoleTool MessageRole = "tool"
)

// SessionMessage is one persisted conversational unit. Messages are created
// server-side, delivered once over the event stream, and re-fetchable from
// the messages endpoint; the client never deletes one, it only appends or
// replaces its cache wholesale on reload.
type SessionMessage struct {
	ID         string      `json:"id"`
	InstanceID string      `json:"instance_id"`
	Role       MessageRole `json:"role"`
	Content    string      `json:"content,omitempty"`

	ToolName   string `json:"tool_name,omitempty"`
	ToolArgs   string `json:"tool_args,omitempty"`
	ToolResult string `json:"tool_result,omitempty"`
	ToolError  string `json:"tool_error,omitempty"`

	AgentID   string `json:"agent_id,omitempty"`
	AgentName string `json:"agent_name,omitempty"`

	// FromInstanceID is set only when the message originated in a different
	// session than the one being viewed.
	FromInstanceID string `json:"from_instance_id,omitempty"`

	// Sequence orders entries within one response; advisory only, delivery
	// order wins.
	Sequence int `json:"sequence,omitempty"`

	Timestamp string `json:"timestamp,omitempty"`

	// ResponseID is shared by every content block and tool call emitted
	// within one logical agent turn.
	ResponseID string `json:"response_id,omitempty"`
}

// IsTool reports whether the entry carries a tool invocation.
func (m SessionMessage) IsTool() bool {
	return m.Role == MessageRoleTool && m.ToolName != ""
}

// QueuedMessagePreview is a server-derived projection of a message waiting
// behind the currently-processing one. The client only renders it.
type QueuedMessagePreview struct {
	SenderName      string `json:"sender_name,omitempty"`
	SenderSessionID string `json:"sender_session_id,omitempty"`
	ContentPreview  string `json:"content_preview,omitempty"`
	Timestamp       string `json:"timestamp,omitempty"`
}
