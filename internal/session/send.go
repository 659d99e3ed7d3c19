package session

import (
	"context"
	"strings"

	"loom/internal/logging"
)

// Enqueuer submits a user message for processing. *client.Client satisfies
// it. Enqueue is asynchronous on the server side: acceptance does not imply
// processing has begun.
type Enqueuer interface {
	Enqueue(ctx context.Context, sessionID, query string) error
}

// Pipeline turns user input plus optional file references into an enqueue
// request. Begin and Finish run on the UI goroutine; Deliver is the only
// part that touches the network and may run elsewhere. Send chains all three
// for synchronous callers.
type Pipeline struct {
	enqueuer Enqueuer
	reducer  *Reducer
	logger   logging.Logger

	// OnAccepted fires after the local optimistic reset, before delivery;
	// the UI clears its input field and file buffer here.
	OnAccepted func()
	// OnSent fires after a successful enqueue (scroll, file-commit note).
	// The transcript is NOT touched here: the user_message stream event is
	// the sole path by which a sent message becomes visible.
	OnSent func()
}

func NewPipeline(enqueuer Enqueuer, reducer *Reducer, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Pipeline{enqueuer: enqueuer, reducer: reducer, logger: logger}
}

// Begin validates and normalizes the input and performs the optimistic local
// transition: echo set, sending flag up, stale error cleared. It reports the
// outgoing query and whether a send should proceed. Sending while a prior
// turn is still processing is allowed; the server is queue-based.
func (p *Pipeline) Begin(input string, fileRefs []string) (string, bool) {
	query := normalizeInput(input)
	refs := normalizeRefs(fileRefs)
	if query == "" && len(refs) == 0 {
		return "", false
	}
	if len(refs) > 0 {
		var b strings.Builder
		b.WriteString(query)
		for _, ref := range refs {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString("@" + ref)
		}
		query = b.String()
	}
	p.reducer.Store().SetOptimisticUser(query)
	p.reducer.SetSending(true)
	p.reducer.ClearError()
	if p.OnAccepted != nil {
		p.OnAccepted()
	}
	return query, true
}

// Deliver issues the enqueue POST.
func (p *Pipeline) Deliver(ctx context.Context, sessionID, query string) error {
	return p.enqueuer.Enqueue(ctx, sessionID, query)
}

// Finish applies the delivery outcome and reports whether the caller must
// reload from persisted storage. A failed send surfaces its error, drops the
// sending flag, and always resynchronizes; ephemeral state after a failure
// is not trusted.
func (p *Pipeline) Finish(err error) bool {
	if err == nil {
		if p.OnSent != nil {
			p.OnSent()
		}
		return false
	}
	p.logger.Warn("enqueue failed", logging.F("err", err))
	p.reducer.SurfaceError(err.Error())
	p.reducer.SetSending(false)
	return true
}

// Send runs the full pipeline synchronously, including the recovery reload
// on failure. The returned error is the delivery error, if any; a reload
// failure is logged but does not mask it.
func (p *Pipeline) Send(ctx context.Context, input string, fileRefs []string) error {
	query, ok := p.Begin(input, fileRefs)
	if !ok {
		return nil
	}
	err := p.Deliver(ctx, p.reducer.Store().SessionID(), query)
	if p.Finish(err) {
		if reloadErr := p.reducer.Store().Reload(ctx); reloadErr != nil {
			p.logger.Warn("recovery reload failed", logging.F("err", reloadErr))
		}
	}
	return err
}

// normalizeInput trims the input and promotes single newlines to paragraph
// breaks for the downstream markdown renderer; existing blank lines pass
// through untouched.
func normalizeInput(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	paragraphs := strings.Split(input, "\n\n")
	for i, paragraph := range paragraphs {
		paragraphs[i] = strings.ReplaceAll(paragraph, "\n", "\n\n")
	}
	return strings.Join(paragraphs, "\n\n")
}

func normalizeRefs(refs []string) []string {
	out := refs[:0:0]
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref != "" {
			out = append(out, ref)
		}
	}
	return out
}
