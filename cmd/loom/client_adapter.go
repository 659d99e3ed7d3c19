package main

import (
	"context"
	"os"
	"path/filepath"

	"loom/internal/app"
	loomclient "loom/internal/client"
	"loom/internal/config"
	"loom/internal/logging"
	"loom/internal/types"
)

type clientFactory func() (commandClient, error)

type commandClient interface {
	Health(ctx context.Context) (*loomclient.HealthResponse, error)
	ListInstances(ctx context.Context) ([]*types.Instance, error)
	Messages(ctx context.Context, id string) ([]types.SessionMessage, error)
	Enqueue(ctx context.Context, id, query string) error
	EventStream(ctx context.Context, id string) (<-chan types.StreamEvent, func(), error)
	ListAgents(ctx context.Context) ([]*types.Agent, error)
	ListSkills(ctx context.Context) ([]*types.Skill, error)
	RunUI() error
}

type loomClientAdapter struct {
	client *loomclient.Client
}

func newLoomClient() (commandClient, error) {
	client, err := loomclient.New()
	if err != nil {
		return nil, err
	}
	return &loomClientAdapter{client: client}, nil
}

func (c *loomClientAdapter) Health(ctx context.Context) (*loomclient.HealthResponse, error) {
	return c.client.Health(ctx)
}

func (c *loomClientAdapter) ListInstances(ctx context.Context) ([]*types.Instance, error) {
	return c.client.ListInstances(ctx)
}

func (c *loomClientAdapter) Messages(ctx context.Context, id string) ([]types.SessionMessage, error) {
	return c.client.Messages(ctx, id)
}

func (c *loomClientAdapter) Enqueue(ctx context.Context, id, query string) error {
	return c.client.Enqueue(ctx, id, query)
}

func (c *loomClientAdapter) EventStream(ctx context.Context, id string) (<-chan types.StreamEvent, func(), error) {
	return c.client.EventStream(ctx, id)
}

func (c *loomClientAdapter) ListAgents(ctx context.Context) ([]*types.Agent, error) {
	return c.client.ListAgents(ctx)
}

func (c *loomClientAdapter) ListSkills(ctx context.Context) ([]*types.Skill, error) {
	return c.client.ListSkills(ctx)
}

func (c *loomClientAdapter) RunUI() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	logger := uiLogger(settings)
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}
	return app.Run(app.NewClientAPI(c.client), settings, logger, workDir)
}

// uiLogger logs to a file under the data dir; stdout belongs to the TUI.
func uiLogger(settings config.Settings) logging.Logger {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return logging.Nop()
	}
	level := logging.ParseLevel(settings.LogLevel())
	logger, err := logging.NewFile(filepath.Join(dataDir, "ui.log"), level)
	if err != nil {
		return logging.Nop()
	}
	return logger
}
