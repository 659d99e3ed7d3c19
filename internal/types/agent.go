package types

import "time"

// Agent is a configured agent definition; the client only lists these.
type Agent struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Description string   `json:"description,omitempty"`
	Model       string   `json:"model,omitempty"`
	SkillIDs    []string `json:"skill_ids,omitempty"`
}

type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskStatus string

const (
	TaskStatusTodo   TaskStatus = "todo"
	TaskStatusDoing  TaskStatus = "doing"
	TaskStatusReview TaskStatus = "review"
	TaskStatusDone   TaskStatus = "done"
)

// Task is one board card; the board pane renders tasks by status column.
type Task struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Title      string     `json:"title"`
	Body       string     `json:"body,omitempty"`
	Status     TaskStatus `json:"status"`
	AssigneeID string     `json:"assignee_id,omitempty"`
	Assignee   string     `json:"assignee,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
