package types

import "encoding/json"

// EventType discriminates the server's session event stream.
type EventType string

const (
	EventUserMessage      EventType = "user_message"
	EventContentBlock     EventType = "content_block"
	EventContentDelta     EventType = "content_delta"
	EventToolUse          EventType = "tool_use"
	EventToolComplete     EventType = "tool_complete"
	EventAutoSave         EventType = "auto_save"
	EventUserNotification EventType = "user_notification"
	EventQueueStatus      EventType = "queue_status"
	EventMessageComplete  EventType = "message_complete"
	EventError            EventType = "error"
	EventSessionStatus    EventType = "session_status"
	EventKeepalive        EventType = "keepalive"
)

// StreamEvent is one decoded occurrence from a session's event stream.
// Exactly one variant pointer is set for payload-carrying types;
// message_complete and keepalive carry none.
type StreamEvent struct {
	Type      EventType
	EventID   string
	Timestamp string
	// Sequence is an advisory ordering hint; delivery order is authoritative.
	Sequence int

	UserMessage   *UserMessageEvent
	ContentBlock  *ContentBlockEvent
	ContentDelta  *ContentDeltaEvent
	ToolUse       *ToolUseEvent
	ToolComplete  *ToolCompleteEvent
	AutoSave      *AutoSaveEvent
	Notification  *UserNotificationEvent
	QueueStatus   *QueueStatusEvent
	Error         *ErrorEvent
	SessionStatus *SessionStatusEvent
}

type UserMessageEvent struct {
	Message SessionMessage `json:"message"`
}

type ContentBlockEvent struct {
	BlockType      string `json:"block_type,omitempty"`
	Content        string `json:"content"`
	MessageID      string `json:"message_id,omitempty"`
	ResponseID     string `json:"response_id,omitempty"`
	AgentID        string `json:"agent_id,omitempty"`
	AgentName      string `json:"agent_name,omitempty"`
	FromInstanceID string `json:"from_instance_id,omitempty"`
}

// ContentDeltaEvent is a legacy incremental-text event. Newer servers send
// complete content_block units; deltas are tolerated, not expected.
type ContentDeltaEvent struct {
	Delta string `json:"delta"`
}

type ToolUseEvent struct {
	ToolUseID      string `json:"tool_use_id"`
	ToolName       string `json:"tool_name"`
	ToolArgs       string `json:"tool_args,omitempty"`
	ResponseID     string `json:"response_id,omitempty"`
	AgentID        string `json:"agent_id,omitempty"`
	AgentName      string `json:"agent_name,omitempty"`
	FromInstanceID string `json:"from_instance_id,omitempty"`
}

type ToolCompleteEvent struct {
	ToolUseID string `json:"tool_use_id"`
	Result    string `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

type AutoSaveEvent struct {
	ItemType string `json:"item_type"`
	ItemID   string `json:"item_id"`
}

type UserNotificationEvent struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	ProjectName string `json:"project_name,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

type QueueStatusEvent struct {
	QueueSize int                    `json:"queue_size"`
	Queued    []QueuedMessagePreview `json:"queued,omitempty"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

type SessionStatusEvent struct {
	Status InstanceStatus `json:"status"`
}

type streamEventHeader struct {
	Type      EventType `json:"type"`
	EventID   string    `json:"event_id,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
	Sequence  int       `json:"sequence,omitempty"`
}

// DecodeStreamEvent decodes one wire payload into a tagged StreamEvent.
// Unknown or malformed payloads report ok=false and must be dropped by the
// caller; a transport hiccup never reaches the reducer.
func DecodeStreamEvent(data []byte) (StreamEvent, bool) {
	var header streamEventHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return StreamEvent{}, false
	}
	ev := StreamEvent{
		Type:      header.Type,
		EventID:   header.EventID,
		Timestamp: header.Timestamp,
		Sequence:  header.Sequence,
	}
	switch header.Type {
	case EventUserMessage:
		var payload UserMessageEvent
		if json.Unmarshal(data, &payload) != nil || payload.Message.ID == "" {
			return StreamEvent{}, false
		}
		ev.UserMessage = &payload
	case EventContentBlock:
		var payload ContentBlockEvent
		if json.Unmarshal(data, &payload) != nil {
			return StreamEvent{}, false
		}
		ev.ContentBlock = &payload
	case EventContentDelta:
		var payload ContentDeltaEvent
		if json.Unmarshal(data, &payload) != nil {
			return StreamEvent{}, false
		}
		ev.ContentDelta = &payload
	case EventToolUse:
		var payload ToolUseEvent
		if json.Unmarshal(data, &payload) != nil || payload.ToolUseID == "" {
			return StreamEvent{}, false
		}
		ev.ToolUse = &payload
	case EventToolComplete:
		var payload ToolCompleteEvent
		if json.Unmarshal(data, &payload) != nil || payload.ToolUseID == "" {
			return StreamEvent{}, false
		}
		ev.ToolComplete = &payload
	case EventAutoSave:
		var payload AutoSaveEvent
		if json.Unmarshal(data, &payload) != nil {
			return StreamEvent{}, false
		}
		ev.AutoSave = &payload
	case EventUserNotification:
		var payload UserNotificationEvent
		if json.Unmarshal(data, &payload) != nil {
			return StreamEvent{}, false
		}
		ev.Notification = &payload
	case EventQueueStatus:
		var payload QueueStatusEvent
		if json.Unmarshal(data, &payload) != nil {
			return StreamEvent{}, false
		}
		ev.QueueStatus = &payload
	case EventError:
		var payload ErrorEvent
		if json.Unmarshal(data, &payload) != nil {
			return StreamEvent{}, false
		}
		ev.Error = &payload
	case EventSessionStatus:
		var payload SessionStatusEvent
		if json.Unmarshal(data, &payload) != nil {
			return StreamEvent{}, false
		}
		ev.SessionStatus = &payload
	case EventMessageComplete, EventKeepalive:
	default:
		return StreamEvent{}, false
	}
	return ev, true
}
