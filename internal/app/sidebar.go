package app

import (
	"strings"

	"loom/internal/types"

	"github.com/charmbracelet/lipgloss"
)

// Sidebar lists the running session instances. PM sessions sort first, then
// specialists, then assistants, stable within a role.
type Sidebar struct {
	instances []*types.Instance
	cursor    int
	width     int
	height    int
	scroll    int
}

func NewSidebar() *Sidebar {
	return &Sidebar{}
}

func (s *Sidebar) Resize(width, height int) {
	s.width = width
	s.height = height
}

var roleRank = map[types.InstanceRole]int{
	types.InstanceRolePM:         0,
	types.InstanceRoleSpecialist: 1,
	types.InstanceRoleAssistant:  2,
}

func (s *Sidebar) SetInstances(instances []*types.Instance) {
	selected := s.SelectedID()
	sorted := make([]*types.Instance, 0, len(instances))
	for _, inst := range instances {
		if inst != nil {
			sorted = append(sorted, inst)
		}
	}
	// insertion sort keeps the server order stable within each role
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && roleRank[sorted[j].Role] < roleRank[sorted[j-1].Role]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	s.instances = sorted
	s.cursor = 0
	for i, inst := range sorted {
		if inst.ID == selected {
			s.cursor = i
			break
		}
	}
}

func (s *Sidebar) Instances() []*types.Instance {
	if s == nil {
		return nil
	}
	return s.instances
}

func (s *Sidebar) SelectedID() string {
	if s == nil || s.cursor < 0 || s.cursor >= len(s.instances) {
		return ""
	}
	return s.instances[s.cursor].ID
}

func (s *Sidebar) Selected() *types.Instance {
	if s == nil || s.cursor < 0 || s.cursor >= len(s.instances) {
		return nil
	}
	return s.instances[s.cursor]
}

func (s *Sidebar) MoveCursor(delta int) bool {
	if len(s.instances) == 0 {
		return false
	}
	next := clamp(s.cursor+delta, 0, len(s.instances)-1)
	if next == s.cursor {
		return false
	}
	s.cursor = next
	visible := max(1, s.height)
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	}
	if s.cursor >= s.scroll+visible {
		s.scroll = s.cursor - visible + 1
	}
	return true
}

func (s *Sidebar) SelectID(id string) bool {
	for i, inst := range s.instances {
		if inst.ID == id {
			s.cursor = i
			return true
		}
	}
	return false
}

func statusGlyph(status types.InstanceStatus) (string, lipgloss.Style) {
	switch status {
	case types.InstanceStatusWorking:
		return "●", instanceBusyStyle
	case types.InstanceStatusError:
		return "✗", instanceErrorStyle
	case types.InstanceStatusStopped:
		return "○", chatMetaStyle
	default:
		return "·", instanceStyle
	}
}

func (s *Sidebar) View() string {
	if s.width <= 0 {
		return ""
	}
	if len(s.instances) == 0 {
		return statusStyle.Render(padCell("no sessions", s.width))
	}
	visible := max(1, s.height)
	end := min(len(s.instances), s.scroll+visible)
	lines := make([]string, 0, visible)
	for i := s.scroll; i < end; i++ {
		inst := s.instances[i]
		glyph, style := statusGlyph(inst.Status)
		label := inst.Title
		if label == "" {
			label = inst.AgentName
		}
		if label == "" {
			label = shortID(inst.ID)
		}
		if inst.Role == types.InstanceRolePM {
			label = "★ " + label
		}
		text := glyph + " " + label
		line := style.Render(padCell(text, s.width))
		if i == s.cursor {
			line = selectedStyle.Render(padCell(text, s.width))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
