package main

import (
	"io"
	"os"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
	version   string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newLoomClient,
		version:   buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":      NewUICommand(wiring.stderr, wiring.newClient),
		"ps":      NewPSCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"send":    NewSendCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"tail":    NewTailCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"agents":  NewAgentsCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"config":  NewConfigCommand(wiring.stdout, wiring.stderr),
		"version": NewVersionCommand(wiring.stdout, wiring.stderr, wiring.newClient, wiring.version),
	}
}
