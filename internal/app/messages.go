package app

import (
	"time"

	"loom/internal/client"
	"loom/internal/types"
)

type tickMsg time.Time

type bootstrapMsg struct {
	snapshot *client.Snapshot
	err      error
}

type instancesMsg struct {
	instances []*types.Instance
	err       error
}

type messagesMsg struct {
	instanceID string
	messages   []types.SessionMessage
	err        error
}

type eventStreamMsg struct {
	instanceID string
	ch         <-chan types.StreamEvent
	cancel     func()
	err        error
}

type sendResultMsg struct {
	instanceID string
	query      string
	err        error
}

type interruptMsg struct {
	instanceID string
	err        error
}

type tasksMsg struct {
	projectID string
	tasks     []*types.Task
	err       error
}

type agentsMsg struct {
	agents []*types.Agent
	skills []*types.Skill
	err    error
}

type fileTreeMsg struct {
	root    string
	entries []fileEntry
	err     error
}

type fileChangedMsg struct {
	path string
}

type fileWatchErrMsg struct {
	err error
}
