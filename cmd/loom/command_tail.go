package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"loom/internal/types"
)

type TailCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewTailCommand(stdout, stderr io.Writer, newClient clientFactory) *TailCommand {
	return &TailCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *TailCommand) Run(args []string) error {
	fs := flag.NewFlagSet("tail", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	lines := fs.Int("lines", 50, "number of messages to print")
	follow := fs.Bool("follow", false, "keep printing live events")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("tail requires a session id")
	}
	id := fs.Arg(0)

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	messages, err := client.Messages(ctx, id)
	if err != nil {
		return err
	}
	if *lines > 0 && len(messages) > *lines {
		messages = messages[len(messages)-*lines:]
	}
	encoder := json.NewEncoder(c.stdout)
	for _, msg := range messages {
		if err := encoder.Encode(msg); err != nil {
			return err
		}
	}
	if !*follow {
		return nil
	}
	return c.followEvents(client, id, encoder)
}

// followEvents prints decoded stream events until the stream closes or the
// process is interrupted.
func (c *TailCommand) followEvents(client commandClient, id string, encoder *json.Encoder) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events, closeStream, err := client.EventStream(ctx, id)
	if err != nil {
		return err
	}
	defer closeStream()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Type == types.EventKeepalive {
				continue
			}
			if err := encoder.Encode(tailEventLine(event)); err != nil {
				return err
			}
		}
	}
}

type tailEvent struct {
	Type      types.EventType `json:"type"`
	EventID   string          `json:"event_id,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Payload   any             `json:"payload,omitempty"`
}

func tailEventLine(event types.StreamEvent) tailEvent {
	line := tailEvent{Type: event.Type, EventID: event.EventID, Timestamp: event.Timestamp}
	switch {
	case event.UserMessage != nil:
		line.Payload = event.UserMessage
	case event.ContentBlock != nil:
		line.Payload = event.ContentBlock
	case event.ContentDelta != nil:
		line.Payload = event.ContentDelta
	case event.ToolUse != nil:
		line.Payload = event.ToolUse
	case event.ToolComplete != nil:
		line.Payload = event.ToolComplete
	case event.AutoSave != nil:
		line.Payload = event.AutoSave
	case event.Notification != nil:
		line.Payload = event.Notification
	case event.QueueStatus != nil:
		line.Payload = event.QueueStatus
	case event.Error != nil:
		line.Payload = event.Error
	case event.SessionStatus != nil:
		line.Payload = event.SessionStatus
	}
	return line
}
