package app

import (
	"strings"

	"loom/internal/session"
	"loom/internal/types"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type chatRenderOptions struct {
	Width        int
	Sending      bool
	SpinnerFrame string
}

// renderTranscript renders grouped messages into the chat viewport content.
// User messages become right-aligned bubbles, one per group; agent turns
// render as a single left-aligned bubble carrying every block of the turn.
func renderTranscript(groups []session.DisplayGroup, opts chatRenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	lines := make([]string, 0, len(groups)*4)
	for _, group := range groups {
		var rendered []string
		if group.IsUser() {
			rendered = renderUserGroup(group, width)
		} else {
			rendered = renderAgentGroup(group, width, opts)
		}
		if len(rendered) == 0 {
			continue
		}
		lines = append(lines, rendered...)
		lines = append(lines, "")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func renderUserGroup(group session.DisplayGroup, width int) []string {
	if len(group.Messages) == 0 {
		return nil
	}
	msg := group.Messages[0]
	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return nil
	}
	innerWidth := bubbleInnerWidth(width)
	rendered := renderMarkdown(escapeMarkdown(text), innerWidth)
	bubble := userBubbleStyle.Render(rendered)
	placed := lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	lines := strings.Split(placed, "\n")
	if msg.ID == session.OptimisticMessageID {
		status := userStatusStyle.Render("(sending…)")
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, status))
	}
	return lines
}

func renderAgentGroup(group session.DisplayGroup, width int, opts chatRenderOptions) []string {
	if len(group.Messages) == 0 {
		return nil
	}
	innerWidth := bubbleInnerWidth(width)
	parts := make([]string, 0, len(group.Messages))
	for _, msg := range group.Messages {
		var part string
		if msg.IsTool() {
			part = renderToolBlock(msg, innerWidth, opts.SpinnerFrame)
		} else {
			part = renderMarkdown(msg.Content, innerWidth)
		}
		if strings.TrimSpace(part) == "" {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil
	}
	bubble := agentBubbleStyle.Render(strings.Join(parts, "\n\n"))
	placed := lipgloss.PlaceHorizontal(width, lipgloss.Left, bubble)
	lines := []string{groupHeaderLine(group, width)}
	lines = append(lines, strings.Split(placed, "\n")...)
	return lines
}

// groupHeaderLine labels the turn with its agent and, for relayed messages,
// the originating session.
func groupHeaderLine(group session.DisplayGroup, width int) string {
	first := group.Messages[0]
	label := first.AgentName
	if label == "" {
		label = first.AgentID
	}
	if label == "" {
		label = "agent"
	}
	header := chatMetaStyle.Render(label)
	if from := group.FromInstanceID(); from != "" {
		header += " " + relayLabelStyle.Render("(from "+shortID(from)+")")
	}
	if ts := first.Timestamp; ts != "" {
		header += " " + chatMetaStyle.Render(ts)
	}
	return truncateToWidth(header, width)
}

func renderToolBlock(msg types.SessionMessage, width int, spinnerFrame string) string {
	header := "⚙ " + msg.ToolName
	if args := previewText(msg.ToolArgs, 60); args != "" {
		header += " " + args
	}
	switch {
	case msg.ToolError != "":
		header += "\n  ✗ " + previewText(msg.ToolError, width)
	case msg.ToolResult != "":
		header += "\n  ✓ " + previewText(msg.ToolResult, width)
	default:
		frame := spinnerFrame
		if frame == "" {
			frame = "…"
		}
		header += "\n  " + pendingToolSpinStyle.Render(frame+" running")
	}
	return toolBubbleStyle.Render(truncateLines(header, width))
}

func bubbleInnerWidth(width int) int {
	maxBubbleWidth := width - 4
	if maxBubbleWidth < 10 {
		maxBubbleWidth = width
	}
	innerWidth := maxBubbleWidth - 2 - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	return innerWidth
}

func previewText(text string, maxWidth int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx] + " …"
	}
	return truncateToWidth(text, maxWidth)
}

func truncateLines(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = truncateToWidth(line, width)
	}
	return strings.Join(lines, "\n")
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Cut(text, 0, width-1) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
