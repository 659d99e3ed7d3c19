package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

type SendCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
	stdin     io.Reader
}

func NewSendCommand(stdout, stderr io.Writer, newClient clientFactory) *SendCommand {
	return &SendCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
		stdin:     os.Stdin,
	}
}

func (c *SendCommand) Run(args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("send requires a session id")
	}
	id := fs.Arg(0)

	var query string
	if fs.NArg() > 1 {
		query = strings.Join(fs.Args()[1:], " ")
	} else {
		// no inline text: read the message body from stdin
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return err
		}
		query = string(data)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("empty message")
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.Enqueue(context.Background(), id, query); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "queued")
	return nil
}
