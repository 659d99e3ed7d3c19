package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// ChatInput wraps a textarea that grows with its content between the
// configured minimum and maximum heights.
type ChatInput struct {
	area      textarea.Model
	minHeight int
	maxHeight int
}

func NewChatInput(width, minHeight, maxHeight int) *ChatInput {
	if minHeight < 1 {
		minHeight = 1
	}
	if maxHeight < minHeight {
		maxHeight = minHeight
	}
	area := textarea.New()
	area.Placeholder = "Message…  (enter to send, alt+enter for newline)"
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.SetWidth(max(1, width))
	area.SetHeight(minHeight)
	return &ChatInput{area: area, minHeight: minHeight, maxHeight: maxHeight}
}

func (c *ChatInput) Resize(width int) {
	c.area.SetWidth(max(1, width))
	c.syncHeight()
}

func (c *ChatInput) Focus() tea.Cmd {
	return c.area.Focus()
}

func (c *ChatInput) Blur() {
	c.area.Blur()
}

func (c *ChatInput) Focused() bool {
	return c.area.Focused()
}

func (c *ChatInput) Value() string {
	return c.area.Value()
}

func (c *ChatInput) SetValue(value string) {
	c.area.SetValue(value)
	c.syncHeight()
}

func (c *ChatInput) Clear() {
	c.area.Reset()
	c.syncHeight()
}

func (c *ChatInput) InsertNewline() {
	c.area.InsertString("\n")
	c.syncHeight()
}

func (c *ChatInput) Height() int {
	return c.area.Height()
}

func (c *ChatInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.area, cmd = c.area.Update(msg)
	c.syncHeight()
	return cmd
}

func (c *ChatInput) View() string {
	return c.area.View()
}

func (c *ChatInput) syncHeight() {
	lines := strings.Count(c.area.Value(), "\n") + 1
	height := clamp(lines, c.minHeight, c.maxHeight)
	if c.area.Height() != height {
		c.area.SetHeight(height)
	}
}
