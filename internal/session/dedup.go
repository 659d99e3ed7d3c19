package session

// Filter rejects events that were already processed, keyed by the
// server-issued event id. The transport may redeliver events across a
// reconnect; without this a redelivered content_block would double-append.
// The seen-set grows for the lifetime of one open session view and is
// discarded with it.
type Filter struct {
	seen map[string]struct{}
}

func NewFilter() *Filter {
	return &Filter{seen: make(map[string]struct{})}
}

// Admit reports whether an event with the given id should be processed and
// records it. Events without an id are never deduplicated: not every event
// type carries one under at-least-once delivery.
func (f *Filter) Admit(eventID string) bool {
	if f == nil || eventID == "" {
		return true
	}
	if _, ok := f.seen[eventID]; ok {
		return false
	}
	f.seen[eventID] = struct{}{}
	return true
}

func (f *Filter) Reset() {
	if f == nil {
		return
	}
	f.seen = make(map[string]struct{})
}

func (f *Filter) Size() int {
	if f == nil {
		return 0
	}
	return len(f.seen)
}
