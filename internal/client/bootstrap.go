package client

import (
	"context"

	"loom/internal/types"

	"golang.org/x/sync/errgroup"
)

// Snapshot bundles the initial loads the UI needs before first paint.
type Snapshot struct {
	Instances []*types.Instance
	Agents    []*types.Agent
	Skills    []*types.Skill
	Projects  []*types.Project
}

// Bootstrap fans the four startup reads out concurrently and fails fast on
// the first transport error.
func (c *Client) Bootstrap(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		instances, err := c.ListInstances(ctx)
		if err != nil {
			return err
		}
		snap.Instances = instances
		return nil
	})
	g.Go(func() error {
		agents, err := c.ListAgents(ctx)
		if err != nil {
			return err
		}
		snap.Agents = agents
		return nil
	})
	g.Go(func() error {
		skills, err := c.ListSkills(ctx)
		if err != nil {
			return err
		}
		snap.Skills = skills
		return nil
	})
	g.Go(func() error {
		projects, err := c.ListProjects(ctx)
		if err != nil {
			return err
		}
		snap.Projects = projects
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
