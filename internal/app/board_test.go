package app

import (
	"strings"
	"testing"

	"loom/internal/types"
)

func TestBoardColumnTasksFilterByStatus(t *testing.T) {
	b := NewBoardPane(100, 20)
	b.SetTasks("p1", []*types.Task{
		{ID: "t1", Title: "design", Status: types.TaskStatusTodo},
		{ID: "t2", Title: "implement", Status: types.TaskStatusDoing},
		{ID: "t3", Title: "review me", Status: types.TaskStatusReview},
		{ID: "t4", Title: "shipped", Status: types.TaskStatusDone},
		{ID: "t5", Title: "more work", Status: types.TaskStatusDoing},
	})
	doing := b.columnTasks(types.TaskStatusDoing)
	if len(doing) != 2 {
		t.Fatalf("doing = %d, want 2", len(doing))
	}
	if doing[0].ID != "t2" || doing[1].ID != "t5" {
		t.Fatalf("doing order: %s, %s", doing[0].ID, doing[1].ID)
	}
}

func TestBoardViewShowsAllColumns(t *testing.T) {
	b := NewBoardPane(120, 20)
	b.SetTasks("p1", []*types.Task{
		{ID: "t1", Title: "design", Status: types.TaskStatusTodo, Assignee: "ivy"},
	})
	out := b.View()
	for _, title := range []string{"Todo", "Doing", "Review", "Done"} {
		if !strings.Contains(out, title) {
			t.Fatalf("missing column %q:\n%s", title, out)
		}
	}
	if !strings.Contains(out, "design") || !strings.Contains(out, "@ivy") {
		t.Fatalf("missing card content:\n%s", out)
	}
}

func TestBoardViewWithoutTasks(t *testing.T) {
	b := NewBoardPane(80, 20)
	out := b.View()
	if !strings.Contains(out, "No tasks") {
		t.Fatalf("got %q", out)
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("ab", 5); len([]rune(got)) != 5 {
		t.Fatalf("got %q", got)
	}
	got := padCell("a long title here", 8)
	if !strings.Contains(got, "…") {
		t.Fatalf("expected truncation: %q", got)
	}
}
