package types

import "time"

type InstanceStatus string

const (
	InstanceStatusIdle    InstanceStatus = "idle"
	InstanceStatusWorking InstanceStatus = "working"
	InstanceStatusError   InstanceStatus = "error"
	InstanceStatusStopped InstanceStatus = "stopped"
)

type InstanceRole string

const (
	InstanceRolePM         InstanceRole = "pm"
	InstanceRoleSpecialist InstanceRole = "specialist"
	InstanceRoleAssistant  InstanceRole = "assistant"
)

// Instance is one running conversational context on the server.
type Instance struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"project_id,omitempty"`
	AgentID      string         `json:"agent_id,omitempty"`
	AgentName    string         `json:"agent_name,omitempty"`
	Role         InstanceRole   `json:"role,omitempty"`
	Status       InstanceStatus `json:"status"`
	Title        string         `json:"title,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt *time.Time     `json:"last_active_at,omitempty"`
}
