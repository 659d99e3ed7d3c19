package app

import (
	"context"

	"loom/internal/client"
	"loom/internal/types"
)

type SessionAPI interface {
	ListInstances(ctx context.Context) ([]*types.Instance, error)
	Messages(ctx context.Context, id string) ([]types.SessionMessage, error)
	EventStream(ctx context.Context, id string) (<-chan types.StreamEvent, func(), error)
	Enqueue(ctx context.Context, id, query string) error
	Interrupt(ctx context.Context, id string) error
}

type BoardAPI interface {
	ListProjects(ctx context.Context) ([]*types.Project, error)
	ListTasks(ctx context.Context, projectID string) ([]*types.Task, error)
}

type DirectoryAPI interface {
	ListAgents(ctx context.Context) ([]*types.Agent, error)
	ListSkills(ctx context.Context) ([]*types.Skill, error)
}

type BootstrapAPI interface {
	Bootstrap(ctx context.Context) (*client.Snapshot, error)
}

// ClientAPI adapts *client.Client to the narrower pane interfaces so tests
// can substitute fakes per concern.
type ClientAPI struct {
	client *client.Client
}

func NewClientAPI(c *client.Client) *ClientAPI {
	return &ClientAPI{client: c}
}

func (a *ClientAPI) ListInstances(ctx context.Context) ([]*types.Instance, error) {
	return a.client.ListInstances(ctx)
}

func (a *ClientAPI) Messages(ctx context.Context, id string) ([]types.SessionMessage, error) {
	return a.client.Messages(ctx, id)
}

func (a *ClientAPI) EventStream(ctx context.Context, id string) (<-chan types.StreamEvent, func(), error) {
	return a.client.EventStream(ctx, id)
}

func (a *ClientAPI) Enqueue(ctx context.Context, id, query string) error {
	return a.client.Enqueue(ctx, id, query)
}

func (a *ClientAPI) Interrupt(ctx context.Context, id string) error {
	return a.client.Interrupt(ctx, id)
}

func (a *ClientAPI) ListProjects(ctx context.Context) ([]*types.Project, error) {
	return a.client.ListProjects(ctx)
}

func (a *ClientAPI) ListTasks(ctx context.Context, projectID string) ([]*types.Task, error) {
	return a.client.ListTasks(ctx, projectID)
}

func (a *ClientAPI) ListAgents(ctx context.Context) ([]*types.Agent, error) {
	return a.client.ListAgents(ctx)
}

func (a *ClientAPI) ListSkills(ctx context.Context) ([]*types.Skill, error) {
	return a.client.ListSkills(ctx)
}

func (a *ClientAPI) Bootstrap(ctx context.Context) (*client.Snapshot, error) {
	return a.client.Bootstrap(ctx)
}
