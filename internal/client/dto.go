package client

import "loom/internal/types"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

type InstancesResponse struct {
	Instances []*types.Instance `json:"instances"`
}

type MessagesResponse struct {
	Messages []types.SessionMessage `json:"messages"`
}

type EnqueueRequest struct {
	Query  string `json:"query"`
	Stream bool   `json:"stream"`
}

type AgentsResponse struct {
	Agents []*types.Agent `json:"agents"`
}

type SkillsResponse struct {
	Skills []*types.Skill `json:"skills"`
}

type ProjectsResponse struct {
	Projects []*types.Project `json:"projects"`
}

type TasksResponse struct {
	Tasks []*types.Task `json:"tasks"`
}
