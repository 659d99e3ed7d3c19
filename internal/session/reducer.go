package session

import (
	"loom/internal/logging"
	"loom/internal/types"
)

// Hooks are the external collaborators the reducer forwards to. Every hook
// is optional.
type Hooks struct {
	OnAutoSave func(itemType, itemID string)
	OnNotify   func(types.UserNotificationEvent)
	OnError    func(message string)
}

// Result describes what applying one event did. ReloadNeeded asks the caller
// to run Store.Reload for this session; the reducer never blocks on I/O
// itself.
type Result struct {
	Changed      bool
	ReloadNeeded bool
}

// Reducer is the per-session-view state machine. It owns the dedup filter
// and the response-id tracker explicitly, so applying an event is a function
// of (reducer state, event) with no hidden module state. Callers drive it
// from a single goroutine; each Apply runs to completion.
type Reducer struct {
	store  *Store
	filter *Filter
	hooks  Hooks
	logger logging.Logger

	currentResponseID string
	sending           bool
	queueSize         int
	queued            []types.QueuedMessagePreview
	lastError         string

	// identity of the turn currently streaming, for the delta path
	agentID        string
	agentName      string
	fromInstanceID string
}

func NewReducer(store *Store, logger logging.Logger, hooks Hooks) *Reducer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Reducer{
		store:  store,
		filter: NewFilter(),
		hooks:  hooks,
		logger: logger,
	}
}

func (r *Reducer) Store() *Store { return r.store }

func (r *Reducer) Sending() bool { return r.sending }

func (r *Reducer) CurrentResponseID() string { return r.currentResponseID }

func (r *Reducer) QueueSize() int { return r.queueSize }

func (r *Reducer) Queued() []types.QueuedMessagePreview { return r.queued }

func (r *Reducer) LastError() string { return r.lastError }

// SetSending is used by the send pipeline; sending turns true the moment a
// message is enqueued and resolves only via message_complete, a terminal
// session_status, or an error.
func (r *Reducer) SetSending(sending bool) {
	r.sending = sending
}

// SurfaceError records a user-visible error string, e.g. a send failure.
func (r *Reducer) SurfaceError(message string) {
	r.lastError = message
}

func (r *Reducer) ClearError() {
	r.lastError = ""
}

// Reset tears down per-view state when the session view unmounts.
func (r *Reducer) Reset() {
	r.filter.Reset()
	r.store.Reset()
	r.currentResponseID = ""
	r.sending = false
	r.queueSize = 0
	r.queued = nil
	r.lastError = ""
	r.agentID = ""
	r.agentName = ""
	r.fromInstanceID = ""
}

// Apply runs one decoded event through the state machine. Dedup runs first,
// every time. Unexpected but well-formed events are logged and ignored;
// nothing propagates past this boundary.
func (r *Reducer) Apply(event types.StreamEvent) Result {
	if !r.filter.Admit(event.EventID) {
		return Result{}
	}
	switch event.Type {
	case types.EventUserMessage:
		if event.UserMessage == nil {
			return Result{}
		}
		return r.handleUserMessage(event.UserMessage)
	case types.EventContentBlock:
		if event.ContentBlock == nil {
			return Result{}
		}
		return r.handleContentBlock(event.ContentBlock, event.Timestamp)
	case types.EventContentDelta:
		if event.ContentDelta == nil || event.ContentDelta.Delta == "" {
			return Result{}
		}
		r.store.AppendStreaming(event.ContentDelta.Delta)
		return Result{Changed: true}
	case types.EventToolUse:
		if event.ToolUse == nil {
			return Result{}
		}
		return r.handleToolUse(event.ToolUse, event.Timestamp)
	case types.EventToolComplete:
		if event.ToolComplete == nil {
			return Result{}
		}
		return r.handleToolComplete(event.ToolComplete)
	case types.EventMessageComplete:
		return r.handleMessageComplete()
	case types.EventAutoSave:
		if event.AutoSave != nil && r.hooks.OnAutoSave != nil {
			r.hooks.OnAutoSave(event.AutoSave.ItemType, event.AutoSave.ItemID)
		}
		return Result{}
	case types.EventUserNotification:
		if event.Notification != nil && r.hooks.OnNotify != nil {
			r.hooks.OnNotify(*event.Notification)
		}
		return Result{}
	case types.EventQueueStatus:
		if event.QueueStatus == nil {
			return Result{}
		}
		r.queueSize = event.QueueStatus.QueueSize
		r.queued = event.QueueStatus.Queued
		return Result{Changed: true}
	case types.EventSessionStatus:
		if event.SessionStatus == nil {
			return Result{}
		}
		return r.handleSessionStatus(event.SessionStatus)
	case types.EventError:
		if event.Error == nil {
			return Result{}
		}
		r.lastError = event.Error.Message
		r.sending = false
		if r.hooks.OnError != nil {
			r.hooks.OnError(event.Error.Message)
		}
		return Result{Changed: true}
	case types.EventKeepalive:
		return Result{}
	default:
		r.logger.Debug("unhandled event", logging.F("type", string(event.Type)))
		return Result{}
	}
}

// handleUserMessage appends the durable echo of a sent message. The stream
// event, not the local echo, is the sole path by which a message becomes
// part of the transcript, so locally-sent and relayed messages render
// identically. Only a locally-originated message confirms the optimistic
// echo; a relayed one arriving mid-send must not hide pending input.
func (r *Reducer) handleUserMessage(ev *types.UserMessageEvent) Result {
	appended := r.store.Append(ev.Message)
	cleared := false
	if ev.Message.FromInstanceID == "" && r.store.Optimistic() != nil {
		r.store.ClearOptimisticUser()
		cleared = true
	}
	return Result{Changed: appended || cleared}
}

// handleContentBlock treats the block as a complete unit, not a delta: any
// accumulated streaming text is closed out first, then the block lands as a
// finished transcript entry tagged with the turn's identity.
func (r *Reducer) handleContentBlock(ev *types.ContentBlockEvent, timestamp string) Result {
	if ev.BlockType != "" && ev.BlockType != "text" {
		r.logger.Debug("ignoring content block", logging.F("block_type", ev.BlockType))
		return Result{}
	}
	r.flushStreaming()
	r.agentID = ev.AgentID
	r.agentName = ev.AgentName
	r.fromInstanceID = ev.FromInstanceID
	r.store.Append(types.SessionMessage{
		ID:             ev.MessageID,
		InstanceID:     r.store.SessionID(),
		Role:           types.MessageRoleTool,
		Content:        ev.Content,
		AgentID:        ev.AgentID,
		AgentName:      ev.AgentName,
		FromInstanceID: ev.FromInstanceID,
		Timestamp:      timestamp,
		ResponseID:     ev.ResponseID,
	})
	r.currentResponseID = ev.ResponseID
	return Result{Changed: true}
}

func (r *Reducer) handleToolUse(ev *types.ToolUseEvent, timestamp string) Result {
	r.agentID = ev.AgentID
	r.agentName = ev.AgentName
	r.fromInstanceID = ev.FromInstanceID
	appended := r.store.Append(types.SessionMessage{
		ID:             ev.ToolUseID,
		InstanceID:     r.store.SessionID(),
		Role:           types.MessageRoleTool,
		ToolName:       ev.ToolName,
		ToolArgs:       ev.ToolArgs,
		AgentID:        ev.AgentID,
		AgentName:      ev.AgentName,
		FromInstanceID: ev.FromInstanceID,
		Timestamp:      timestamp,
		ResponseID:     ev.ResponseID,
	})
	return Result{Changed: appended}
}

// handleToolComplete attaches the result and hands finalization to the
// backend: the persisted reload, not the client, renders the finished tool
// message. The reload fires even when no pending entry matches — a mid-turn
// reload may have re-keyed the entry under its server-assigned id, and only
// a fresh fetch makes the finished result visible. A completion for an
// invocation that already carries a result is a no-op.
func (r *Reducer) handleToolComplete(ev *types.ToolCompleteEvent) Result {
	if r.store.ToolResultAttached(ev.ToolUseID) {
		return Result{}
	}
	attached := r.store.AttachToolResult(ev.ToolUseID, ev.Result, ev.Error)
	return Result{Changed: attached, ReloadNeeded: true}
}

func (r *Reducer) handleMessageComplete() Result {
	changed := false
	if r.currentResponseID != "" || r.store.Streaming() != nil {
		r.flushStreaming()
		r.currentResponseID = ""
		changed = true
	}
	if r.sending {
		r.sending = false
		changed = true
	}
	return Result{Changed: changed}
}

func (r *Reducer) handleSessionStatus(ev *types.SessionStatusEvent) Result {
	switch ev.Status {
	case types.InstanceStatusWorking:
		if r.sending {
			return Result{}
		}
		r.sending = true
		return Result{Changed: true}
	case types.InstanceStatusIdle, types.InstanceStatusError:
		if !r.sending {
			return Result{}
		}
		r.sending = false
		return Result{Changed: true}
	default:
		return Result{}
	}
}

// flushStreaming closes the delta accumulator, if any, into a completed
// transcript entry carrying the open turn's identity.
func (r *Reducer) flushStreaming() {
	streaming := r.store.Streaming()
	if streaming == nil {
		return
	}
	if streaming.Content != "" {
		r.store.Append(types.SessionMessage{
			InstanceID:     r.store.SessionID(),
			Role:           types.MessageRoleTool,
			Content:        streaming.Content,
			AgentID:        r.agentID,
			AgentName:      r.agentName,
			FromInstanceID: r.fromInstanceID,
			Timestamp:      formatTimestamp(streaming.Timestamp),
			ResponseID:     r.currentResponseID,
		})
	}
	r.store.ClearStreaming()
}
