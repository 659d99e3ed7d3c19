package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"
)

type VersionCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
	version   string
}

func NewVersionCommand(stdout, stderr io.Writer, newClient clientFactory, version string) *VersionCommand {
	return &VersionCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
		version:   version,
	}
}

// Run prints the client build and, when the server answers, its reported
// version. An unreachable server is not an error here.
func (c *VersionCommand) Run(args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	clientOnly := fs.Bool("client", false, "print the client version only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "client %s\n", c.version)
	if *clientOnly {
		return nil
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	health, err := client.Health(ctx)
	if err != nil {
		fmt.Fprintf(c.stdout, "server unreachable: %v\n", err)
		return nil
	}
	fmt.Fprintf(c.stdout, "server %s\n", health.Version)
	return nil
}
