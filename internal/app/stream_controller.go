package app

import (
	"loom/internal/session"
	"loom/internal/types"
)

// StreamController owns the live event channel for the selected session and
// drains it in bounded batches on the UI tick. Events are applied to the
// reducer in arrival order; the controller never reorders or drops.
type StreamController struct {
	events           <-chan types.StreamEvent
	cancel           func()
	instanceID       string
	maxEventsPerTick int
}

// TickResult aggregates the reducer outcomes of one drain.
type TickResult struct {
	Changed      bool
	ReloadNeeded bool
	Closed       bool
	Applied      int
}

func NewStreamController(maxEventsPerTick int) *StreamController {
	return &StreamController{maxEventsPerTick: maxEventsPerTick}
}

func (s *StreamController) Reset() {
	if s == nil {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = nil
	s.events = nil
	s.instanceID = ""
}

func (s *StreamController) SetStream(instanceID string, ch <-chan types.StreamEvent, cancel func()) {
	if s == nil {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.events = ch
	s.cancel = cancel
	s.instanceID = instanceID
}

func (s *StreamController) InstanceID() string {
	if s == nil {
		return ""
	}
	return s.instanceID
}

func (s *StreamController) Active() bool {
	return s != nil && s.events != nil
}

// ConsumeTick drains up to maxEventsPerTick buffered events into the
// reducer. A closed channel means the server ended the stream; the caller
// reopens and reloads.
func (s *StreamController) ConsumeTick(reducer *session.Reducer) TickResult {
	var result TickResult
	if s == nil || s.events == nil || reducer == nil {
		return result
	}
	drain := true
	for i := 0; i < s.maxEventsPerTick && drain; i++ {
		select {
		case event, ok := <-s.events:
			if !ok {
				s.events = nil
				s.cancel = nil
				result.Closed = true
				drain = false
				break
			}
			applied := reducer.Apply(event)
			result.Applied++
			if applied.Changed {
				result.Changed = true
			}
			if applied.ReloadNeeded {
				result.ReloadNeeded = true
			}
		default:
			drain = false
		}
	}
	return result
}
