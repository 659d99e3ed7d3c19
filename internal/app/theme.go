package app

import "github.com/charmbracelet/lipgloss"

const (
	chatBubblePaddingVertical   = 0
	chatBubblePaddingHorizontal = 1
)

var (
	headerStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activityStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	instanceStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	instanceActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	instanceBusyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	instanceErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	selectedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	dividerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	tabStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Bold(true)
	tabActiveStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239")).Bold(true)

	userBubbleStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(chatBubblePaddingVertical, chatBubblePaddingHorizontal)
	agentBubbleStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(chatBubblePaddingVertical, chatBubblePaddingHorizontal)
	toolBubbleStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("237")).Foreground(lipgloss.Color("245")).Padding(chatBubblePaddingVertical, chatBubblePaddingHorizontal)
	relayLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Italic(true)
	userStatusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	chatMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	queueNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Italic(true)
	errorBannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("88")).Bold(true)

	boardColumnStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	boardHeaderStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	boardCardStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	boardAssigneeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	fileDirStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	fileEntryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	fileAttachedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	agentNameStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	agentSkillStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	toastInfoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
	pendingToolSpinStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
)
