package app

import (
	"strings"

	"loom/internal/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var boardColumns = []types.TaskStatus{
	types.TaskStatusTodo,
	types.TaskStatusDoing,
	types.TaskStatusReview,
	types.TaskStatusDone,
}

var boardColumnTitles = map[types.TaskStatus]string{
	types.TaskStatusTodo:   "Todo",
	types.TaskStatusDoing:  "Doing",
	types.TaskStatusReview: "Review",
	types.TaskStatusDone:   "Done",
}

// BoardPane renders tasks of the selected project as status columns. The
// pane is read-only; moving cards happens through agent actions server-side.
type BoardPane struct {
	projectID string
	tasks     []*types.Task
	width     int
	height    int
}

func NewBoardPane(width, height int) *BoardPane {
	return &BoardPane{width: width, height: height}
}

func (b *BoardPane) Resize(width, height int) {
	b.width = width
	b.height = height
}

func (b *BoardPane) SetTasks(projectID string, tasks []*types.Task) {
	b.projectID = projectID
	b.tasks = tasks
}

func (b *BoardPane) ProjectID() string {
	if b == nil {
		return ""
	}
	return b.projectID
}

func (b *BoardPane) columnTasks(status types.TaskStatus) []*types.Task {
	out := make([]*types.Task, 0, len(b.tasks))
	for _, task := range b.tasks {
		if task != nil && task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

func (b *BoardPane) View() string {
	if b.width <= 0 {
		return ""
	}
	if len(b.tasks) == 0 {
		return statusStyle.Render("No tasks. Select a project with p.")
	}
	columnWidth := b.width/len(boardColumns) - 3
	if columnWidth < 12 {
		columnWidth = 12
	}
	columns := make([]string, 0, len(boardColumns))
	for _, status := range boardColumns {
		columns = append(columns, b.renderColumn(status, columnWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (b *BoardPane) renderColumn(status types.TaskStatus, width int) string {
	tasks := b.columnTasks(status)
	title := boardColumnTitles[status]
	lines := []string{boardHeaderStyle.Render(padCell(title, width))}
	for _, task := range tasks {
		lines = append(lines, boardCardStyle.Render(padCell("• "+task.Title, width)))
		if task.Assignee != "" {
			lines = append(lines, boardAssigneeStyle.Render(padCell("  @"+task.Assignee, width)))
		}
	}
	if len(tasks) == 0 {
		lines = append(lines, chatMetaStyle.Render(padCell("(empty)", width)))
	}
	maxRows := b.height - 2
	if maxRows > 0 && len(lines) > maxRows {
		lines = lines[:maxRows]
	}
	return boardColumnStyle.Render(strings.Join(lines, "\n"))
}

// padCell truncates or pads plain (unstyled) text to an exact cell width.
func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width-1, "") + "…"
	}
	return runewidth.FillRight(text, width)
}
