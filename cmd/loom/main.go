package main

import (
	"fmt"
	"os"
)

const usageText = `loom is a terminal client for a loom agent server.

Usage:
  loom <command> [flags]

Commands:
  ui       run the terminal UI
  ps       list running sessions
  send     enqueue a message to a session
  tail     print session messages, optionally following live events
  agents   list configured agents and skills
  config   print configuration (effective or defaults)
  version  print client and server versions
  help     show help

Flags:
  -h, --help   show help

Examples:
  loom ps
  loom send <id> "summarize the latest findings"
  loom tail <id> --follow
  loom config --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
