package app

import (
	"strings"

	"loom/internal/types"
)

// AgentsPane lists the configured agents with their skills. Read-only; the
// roster is managed server-side.
type AgentsPane struct {
	agents []*types.Agent
	skills map[string]*types.Skill
	width  int
	height int
}

func NewAgentsPane(width, height int) *AgentsPane {
	return &AgentsPane{width: width, height: height, skills: map[string]*types.Skill{}}
}

func (a *AgentsPane) Resize(width, height int) {
	a.width = width
	a.height = height
}

func (a *AgentsPane) SetRoster(agents []*types.Agent, skills []*types.Skill) {
	a.agents = agents
	a.skills = make(map[string]*types.Skill, len(skills))
	for _, skill := range skills {
		if skill != nil {
			a.skills[skill.ID] = skill
		}
	}
}

func (a *AgentsPane) skillNames(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if skill, ok := a.skills[id]; ok && skill.Name != "" {
			names = append(names, skill.Name)
		} else {
			names = append(names, id)
		}
	}
	return strings.Join(names, ", ")
}

func (a *AgentsPane) View() string {
	if a.width <= 0 {
		return ""
	}
	if len(a.agents) == 0 {
		return statusStyle.Render("No agents configured.")
	}
	lines := make([]string, 0, len(a.agents)*3)
	for _, agent := range a.agents {
		if agent == nil {
			continue
		}
		name := agent.Name
		if name == "" {
			name = agent.ID
		}
		header := agentNameStyle.Render(name)
		if agent.Role != "" {
			header += chatMetaStyle.Render(" · " + agent.Role)
		}
		if agent.Model != "" {
			header += chatMetaStyle.Render(" · " + agent.Model)
		}
		lines = append(lines, truncateToWidth(header, a.width))
		if agent.Description != "" {
			lines = append(lines, truncateToWidth("  "+agent.Description, a.width))
		}
		if skills := a.skillNames(agent.SkillIDs); skills != "" {
			lines = append(lines, truncateToWidth(agentSkillStyle.Render("  skills: "+skills), a.width))
		}
	}
	if a.height > 0 && len(lines) > a.height {
		lines = lines[:a.height]
	}
	return strings.Join(lines, "\n")
}
