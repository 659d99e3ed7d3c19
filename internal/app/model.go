package app

import (
	"strconv"
	"strings"
	"time"

	"loom/internal/config"
	"loom/internal/logging"
	"loom/internal/session"
	"loom/internal/types"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tickInterval     = 100 * time.Millisecond
	maxEventsPerTick = 64
	toastDuration    = 4 * time.Second

	minListWidth     = 18
	maxListWidth     = 40
	minViewportWidth = 40
	minContentHeight = 6
)

type paneID int

const (
	paneChat paneID = iota
	paneBoard
	paneFiles
	paneAgents
)

var paneTitles = map[paneID]string{
	paneChat:   "Chat",
	paneBoard:  "Board",
	paneFiles:  "Files",
	paneAgents: "Agents",
}

var paneOrder = []paneID{paneChat, paneBoard, paneFiles, paneAgents}

type Model struct {
	sessionAPI   SessionAPI
	boardAPI     BoardAPI
	directoryAPI DirectoryAPI
	bootstrapAPI BootstrapAPI

	settings config.Settings
	logger   logging.Logger

	sidebar   *Sidebar
	viewport  viewport.Model
	stream    *StreamController
	reducer   *session.Reducer
	pipeline  *session.Pipeline
	chatInput *ChatInput
	board     *BoardPane
	files     *FilePane
	agents    *AgentsPane
	loader    spinner.Model

	pane   paneID
	width  int
	height int
	status string
	follow bool

	projects   []*types.Project
	projectIdx int

	toastText  string
	toastLevel toastLevel
	toastUntil time.Time
}

func NewModel(api *ClientAPI, settings config.Settings, logger logging.Logger, workDir string) *Model {
	if logger == nil {
		logger = logging.Nop()
	}
	vp := viewport.New(minViewportWidth, minContentHeight)
	vp.SetContent("Select a session.")
	loader := spinner.New()
	loader.Spinner = spinner.Dot
	loader.Style = activityStyle
	minH, maxH := settings.MultilineInputHeights()
	setMarkdownBackgroundDark(settings.ThemeDark())

	m := &Model{
		sessionAPI:   api,
		boardAPI:     api,
		directoryAPI: api,
		bootstrapAPI: api,
		settings:     settings,
		logger:       logger.With(logging.F("component", "ui")),
		sidebar:      NewSidebar(),
		viewport:     vp,
		stream:       NewStreamController(maxEventsPerTick),
		chatInput:    NewChatInput(minViewportWidth, minH, maxH),
		board:        NewBoardPane(minViewportWidth, minContentHeight),
		files:        NewFilePane(workDir, minViewportWidth, minContentHeight),
		agents:       NewAgentsPane(minViewportWidth, minContentHeight),
		loader:       loader,
		pane:         paneChat,
		follow:       true,
	}
	return m
}

func Run(api *ClientAPI, settings config.Settings, logger logging.Logger, workDir string) error {
	model := NewModel(api, settings, logger, workDir)
	defer model.files.Close()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		bootstrapCmd(m.bootstrapAPI),
		scanFilesCmd(m.files.Root()),
		tickCmd(),
	}
	if err := m.files.StartWatching(); err != nil {
		m.logger.Warn("file watch unavailable", logging.F("error", err.Error()))
	} else if wait := m.files.WaitForChangeCmd(); wait != nil {
		cmds = append(cmds, wait)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case bootstrapMsg:
		return m.applyBootstrap(msg)

	case instancesMsg:
		if msg.err != nil {
			m.status = "list sessions: " + msg.err.Error()
			return m, nil
		}
		m.sidebar.SetInstances(msg.instances)
		if m.currentInstanceID() == "" {
			return m, m.selectInstance(m.sidebar.SelectedID())
		}
		return m, nil

	case messagesMsg:
		if msg.err != nil {
			m.status = "load messages: " + msg.err.Error()
			return m, nil
		}
		if m.reducer == nil || msg.instanceID != m.currentInstanceID() {
			return m, nil
		}
		m.reducer.Store().ReplacePersisted(msg.messages)
		m.refreshChat()
		return m, nil

	case eventStreamMsg:
		if msg.err != nil {
			m.status = "event stream: " + msg.err.Error()
			return m, nil
		}
		if msg.instanceID != m.currentInstanceID() {
			if msg.cancel != nil {
				msg.cancel()
			}
			return m, nil
		}
		m.stream.SetStream(msg.instanceID, msg.ch, msg.cancel)
		m.status = "streaming events"
		return m, nil

	case sendResultMsg:
		if m.pipeline == nil || msg.instanceID != m.currentInstanceID() {
			return m, nil
		}
		if reload := m.pipeline.Finish(msg.err); reload {
			m.showErrorToast("send failed: " + msg.err.Error())
			m.refreshChat()
			return m, fetchMessagesCmd(m.sessionAPI, msg.instanceID)
		}
		m.refreshChat()
		return m, nil

	case interruptMsg:
		if msg.err != nil {
			m.showErrorToast("interrupt: " + msg.err.Error())
		} else {
			m.showInfoToast("interrupt requested")
		}
		return m, nil

	case tasksMsg:
		if msg.err != nil {
			m.status = "load tasks: " + msg.err.Error()
			return m, nil
		}
		m.board.SetTasks(msg.projectID, msg.tasks)
		return m, nil

	case agentsMsg:
		if msg.err != nil {
			m.status = "load agents: " + msg.err.Error()
			return m, nil
		}
		m.agents.SetRoster(msg.agents, msg.skills)
		return m, nil

	case fileTreeMsg:
		if msg.err != nil {
			m.status = "scan files: " + msg.err.Error()
			return m, nil
		}
		m.files.SetEntries(msg.entries)
		return m, nil

	case fileChangedMsg:
		cmds := []tea.Cmd{scanFilesCmd(m.files.Root())}
		if wait := m.files.WaitForChangeCmd(); wait != nil {
			cmds = append(cmds, wait)
		}
		return m, tea.Batch(cmds...)

	case fileWatchErrMsg:
		m.logger.Warn("file watch error", logging.F("error", msg.err.Error()))
		if wait := m.files.WaitForChangeCmd(); wait != nil {
			return m, wait
		}
		return m, nil

	case tickMsg:
		return m.handleTick(msg)
	}

	if m.pane == paneChat && m.chatInput.Focused() {
		return m, m.chatInput.Update(msg)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) applyBootstrap(msg bootstrapMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "connect: " + msg.err.Error()
		m.showErrorToast("cannot reach server: " + msg.err.Error())
		return m, nil
	}
	snap := msg.snapshot
	m.sidebar.SetInstances(snap.Instances)
	m.agents.SetRoster(snap.Agents, snap.Skills)
	m.projects = snap.Projects
	m.projectIdx = 0
	m.status = "connected"
	cmds := []tea.Cmd{}
	if id := m.sidebar.SelectedID(); id != "" {
		cmds = append(cmds, m.selectInstance(id))
	}
	if len(m.projects) > 0 {
		cmds = append(cmds, fetchTasksCmd(m.boardAPI, m.projects[0].ID))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}
	result := m.stream.ConsumeTick(m.reducer)
	if result.Closed {
		m.status = "stream closed, reconnecting"
		if id := m.currentInstanceID(); id != "" {
			cmds = append(cmds, openStreamCmd(m.sessionAPI, id), fetchMessagesCmd(m.sessionAPI, id))
		}
	}
	if result.ReloadNeeded {
		if id := m.currentInstanceID(); id != "" {
			cmds = append(cmds, fetchMessagesCmd(m.sessionAPI, id))
		}
	}
	if result.Changed {
		m.refreshChat()
	}
	if m.reducer != nil && m.reducer.Sending() {
		m.loader, _ = m.loader.Update(spinner.TickMsg{Time: time.Time(msg), ID: m.loader.ID()})
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.pane == paneChat && m.chatInput.Focused() {
		switch key {
		case "esc":
			m.chatInput.Blur()
			return m, nil
		case "alt+enter", "ctrl+j":
			m.chatInput.InsertNewline()
			return m, nil
		case "enter":
			return m, m.submitInput()
		case "ctrl+c":
			return m, tea.Quit
		default:
			return m, m.chatInput.Update(msg)
		}
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.cyclePane(1)
		return m, nil
	case "shift+tab":
		m.cyclePane(-1)
		return m, nil
	case "j", "down":
		if m.pane == paneFiles {
			m.files.MoveCursor(1)
			return m, nil
		}
		if m.sidebar.MoveCursor(1) {
			return m, m.selectInstance(m.sidebar.SelectedID())
		}
		return m, nil
	case "k", "up":
		if m.pane == paneFiles {
			m.files.MoveCursor(-1)
			return m, nil
		}
		if m.sidebar.MoveCursor(-1) {
			return m, m.selectInstance(m.sidebar.SelectedID())
		}
		return m, nil
	case "i":
		if m.pane == paneChat {
			return m, m.chatInput.Focus()
		}
		return m, nil
	case "x":
		if id := m.currentInstanceID(); id != "" {
			return m, interruptCmd(m.sessionAPI, id)
		}
		return m, nil
	case "r":
		return m, tea.Batch(
			fetchInstancesCmd(m.sessionAPI),
			fetchAgentsCmd(m.directoryAPI),
			m.reloadCurrent(),
		)
	case "p":
		if m.pane == paneBoard && len(m.projects) > 0 {
			m.projectIdx = (m.projectIdx + 1) % len(m.projects)
			return m, fetchTasksCmd(m.boardAPI, m.projects[m.projectIdx].ID)
		}
		return m, nil
	case " ", "enter":
		if m.pane == paneFiles {
			if path, attached := m.files.ToggleAttach(); path != "" {
				if attached {
					m.showInfoToast("attached " + path)
				} else {
					m.showInfoToast("detached " + path)
				}
			}
			return m, nil
		}
		if m.pane == paneChat && key == "enter" {
			return m, m.chatInput.Focus()
		}
		return m, nil
	case "y":
		m.copyLastAgentMessage()
		return m, nil
	case "o":
		return m, m.jumpToOriginSession()
	case "e":
		m.clearErrorBanner()
		return m, nil
	case "g":
		m.viewport.GotoTop()
		m.follow = false
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		m.follow = true
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) cyclePane(delta int) {
	idx := 0
	for i, id := range paneOrder {
		if id == m.pane {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(paneOrder)) % len(paneOrder)
	m.pane = paneOrder[idx]
}

// selectInstance swaps the per-session state machine: fresh store, fresh
// reducer with its own dedup filter, new event stream.
func (m *Model) selectInstance(id string) tea.Cmd {
	m.stream.Reset()
	if id == "" {
		m.reducer = nil
		m.pipeline = nil
		m.viewport.SetContent("Select a session.")
		return nil
	}
	store := session.NewStore(id, m.sessionAPI)
	m.reducer = session.NewReducer(store, m.logger, session.Hooks{
		OnAutoSave: func(itemType, itemID string) {
			m.status = "saved " + itemType + " " + shortID(itemID)
		},
		OnNotify: func(ev types.UserNotificationEvent) {
			m.showInfoToast(ev.Message)
		},
		OnError: func(message string) {
			m.showErrorToast(message)
		},
	})
	pipeline := session.NewPipeline(m.sessionAPI, m.reducer, m.logger)
	pipeline.OnAccepted = func() {
		m.chatInput.Clear()
		m.files.ClearAttachments()
	}
	pipeline.OnSent = func() {
		m.follow = true
	}
	m.pipeline = pipeline
	m.viewport.SetContent("Loading…")
	return tea.Batch(
		fetchMessagesCmd(m.sessionAPI, id),
		openStreamCmd(m.sessionAPI, id),
	)
}

func (m *Model) currentInstanceID() string {
	if m.reducer == nil {
		return ""
	}
	return m.reducer.Store().SessionID()
}

func (m *Model) reloadCurrent() tea.Cmd {
	id := m.currentInstanceID()
	if id == "" {
		return nil
	}
	return fetchMessagesCmd(m.sessionAPI, id)
}

// submitInput runs the UI-side half of the send pipeline and hands delivery
// to a background command.
func (m *Model) submitInput() tea.Cmd {
	if m.pipeline == nil {
		m.showWarningToast("no session selected")
		return nil
	}
	query, ok := m.pipeline.Begin(m.chatInput.Value(), m.files.AttachedRefs())
	if !ok {
		return nil
	}
	m.refreshChat()
	return deliverCmd(m.pipeline, m.currentInstanceID(), query)
}

func (m *Model) refreshChat() {
	if m.reducer == nil {
		return
	}
	groups := session.GroupMessages(m.reducer.Store().RenderableTranscript())
	content := renderTranscript(groups, chatRenderOptions{
		Width:        m.viewport.Width,
		Sending:      m.reducer.Sending(),
		SpinnerFrame: m.loader.View(),
	})
	if content == "" {
		content = statusStyle.Render("No messages yet.")
	}
	m.viewport.SetContent(content)
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) copyLastAgentMessage() {
	if m.reducer == nil {
		return
	}
	groups := session.GroupMessages(m.reducer.Store().RenderableTranscript())
	text := lastAgentReplyText(groups)
	if text == "" {
		m.showWarningToast("nothing to copy")
		return
	}
	m.copyWithStatus(text, "copied last reply")
}

// jumpToOriginSession switches to the session that relayed the most recent
// cross-session message in the current transcript.
func (m *Model) jumpToOriginSession() tea.Cmd {
	if m.reducer == nil {
		return nil
	}
	transcript := m.reducer.Store().RenderableTranscript()
	for i := len(transcript) - 1; i >= 0; i-- {
		from := transcript[i].FromInstanceID
		if from == "" {
			continue
		}
		if !m.sidebar.SelectID(from) {
			m.showWarningToast("origin session " + shortID(from) + " is not listed")
			return nil
		}
		return m.selectInstance(from)
	}
	m.showWarningToast("no relayed messages here")
	return nil
}

func (m *Model) clearErrorBanner() {
	if m.reducer != nil {
		m.reducer.ClearError()
		m.refreshChat()
	}
	m.clearToast()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentHeight := max(minContentHeight, height-4)
	listWidth := clamp(width/4, minListWidth, maxListWidth)
	if width-listWidth-1 < minViewportWidth {
		listWidth = max(minListWidth, width/3)
	}
	paneWidth := max(minViewportWidth, width-listWidth-1)

	m.sidebar.Resize(listWidth, contentHeight)
	m.viewport.Width = paneWidth
	m.viewport.Height = max(1, contentHeight-m.chatInput.Height()-1)
	m.chatInput.Resize(paneWidth)
	m.board.Resize(paneWidth, contentHeight)
	m.files.Resize(paneWidth, contentHeight)
	m.agents.Resize(paneWidth, contentHeight)
	m.refreshChat()
}

func (m *Model) View() string {
	body := m.paneView()
	left := m.sidebar.View()
	height := max(lipgloss.Height(left), lipgloss.Height(body))
	if height < 1 {
		height = 1
	}
	divider := strings.Repeat("│\n", height-1) + "│"
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, dividerStyle.Render(divider), body)

	sections := []string{m.tabLine(), row, m.statusLine()}
	if toast := m.toastLine(m.width); toast != "" {
		sections = append(sections, toast)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) paneView() string {
	switch m.pane {
	case paneBoard:
		return m.board.View()
	case paneFiles:
		return m.files.View()
	case paneAgents:
		return m.agents.View()
	}
	parts := []string{m.viewport.View()}
	if banner := m.errorBanner(); banner != "" {
		parts = append(parts, banner)
	}
	if notice := m.queueNotice(); notice != "" {
		parts = append(parts, notice)
	}
	parts = append(parts, m.chatInput.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) errorBanner() string {
	if m.reducer == nil || m.reducer.LastError() == "" {
		return ""
	}
	text := truncateToWidth("error: "+m.reducer.LastError()+"  (e to dismiss)", m.viewport.Width)
	return errorBannerStyle.Render(text)
}

func (m *Model) queueNotice() string {
	if m.reducer == nil || m.reducer.QueueSize() == 0 {
		return ""
	}
	previews := m.reducer.Queued()
	label := "queued: " + strconv.Itoa(m.reducer.QueueSize())
	if len(previews) > 0 && previews[0].SenderName != "" {
		label += " (next from " + previews[0].SenderName + ")"
	}
	return queueNoticeStyle.Render(truncateToWidth(label, m.viewport.Width))
}

func (m *Model) tabLine() string {
	tabs := make([]string, 0, len(paneOrder))
	for _, id := range paneOrder {
		title := " " + paneTitles[id] + " "
		if id == m.pane {
			tabs = append(tabs, tabActiveStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.reducer != nil && m.reducer.Sending() {
		line += " " + m.loader.View() + activityStyle.Render(" working")
	}
	return line
}

func (m *Model) statusLine() string {
	help := helpStyle.Render("tab panes · j/k sessions · i input · x interrupt · o origin · r reload · y copy · q quit")
	status := statusStyle.Render(m.status)
	gap := m.width - lipgloss.Width(help) - lipgloss.Width(status)
	if gap < 1 {
		return help
	}
	return help + strings.Repeat(" ", gap) + status
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
