package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type AgentsCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewAgentsCommand(stdout, stderr io.Writer, newClient clientFactory) *AgentsCommand {
	return &AgentsCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *AgentsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("agents", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	showSkills := fs.Bool("skills", false, "also list skills")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	agents, err := client.ListAgents(ctx)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tROLE\tMODEL\tSKILLS")
	for _, agent := range agents {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			agent.ID, agent.Name, agent.Role, agent.Model, strings.Join(agent.SkillIDs, ","))
	}
	_ = writer.Flush()

	if !*showSkills {
		return nil
	}
	skills, err := client.ListSkills(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout)
	writer = tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "SKILL\tNAME\tDESCRIPTION")
	for _, skill := range skills {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", skill.ID, skill.Name, skill.Description)
	}
	return writer.Flush()
}
