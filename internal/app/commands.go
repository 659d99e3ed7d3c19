package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"loom/internal/session"
)

func bootstrapCmd(api BootstrapAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		snapshot, err := api.Bootstrap(ctx)
		return bootstrapMsg{snapshot: snapshot, err: err}
	}
}

func fetchInstancesCmd(api SessionAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		instances, err := api.ListInstances(ctx)
		return instancesMsg{instances: instances, err: err}
	}
}

func fetchMessagesCmd(api SessionAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		messages, err := api.Messages(ctx, id)
		return messagesMsg{instanceID: id, messages: messages, err: err}
	}
}

func openStreamCmd(api SessionAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ch, cancel, err := api.EventStream(context.Background(), id)
		return eventStreamMsg{instanceID: id, ch: ch, cancel: cancel, err: err}
	}
}

// deliverCmd runs the network half of the send pipeline off the UI
// goroutine; Begin has already run on it.
func deliverCmd(pipeline *session.Pipeline, id, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := pipeline.Deliver(ctx, id, query)
		return sendResultMsg{instanceID: id, query: query, err: err}
	}
}

func interruptCmd(api SessionAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		err := api.Interrupt(ctx, id)
		return interruptMsg{instanceID: id, err: err}
	}
}

func fetchTasksCmd(api BoardAPI, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		tasks, err := api.ListTasks(ctx, projectID)
		return tasksMsg{projectID: projectID, tasks: tasks, err: err}
	}
}

func fetchAgentsCmd(api DirectoryAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		agents, err := api.ListAgents(ctx)
		if err != nil {
			return agentsMsg{err: err}
		}
		skills, err := api.ListSkills(ctx)
		return agentsMsg{agents: agents, skills: skills, err: err}
	}
}

func scanFilesCmd(root string) tea.Cmd {
	return func() tea.Msg {
		entries, err := scanFileTree(root, maxFileEntries)
		return fileTreeMsg{root: root, entries: entries, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
