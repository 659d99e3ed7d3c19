package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"
)

type UICommand struct {
	stderr    io.Writer
	newClient clientFactory
}

func NewUICommand(stderr io.Writer, newClient clientFactory) *UICommand {
	return &UICommand{
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	skipCheck := fs.Bool("no-health-check", false, "skip the server reachability check")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	if !*skipCheck {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if _, err := client.Health(ctx); err != nil {
			return fmt.Errorf("server not reachable: %w", err)
		}
	}
	return client.RunUI()
}
