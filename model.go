package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/shotweave/shotweave/internal/api"
	"github.com/shotweave/shotweave/internal/dispatch"
	"github.com/shotweave/shotweave/internal/history"
	"github.com/shotweave/shotweave/internal/quote"
	"github.com/shotweave/shotweave/internal/session"
)

const appName = "Shotweave"

// model is the root bubbletea model. One view is active at a time,
// resolved from the session role; the quote modal overlays the Line
// Producer view while its workflow is open.
type model struct {
	client  *api.Client
	store   *session.Store
	journal *history.Journal
	logger  *zap.Logger

	view   dispatch.ViewID
	width  int
	height int
	status string

	keys      keyMap
	modalKeys modalKeyMap

	auth     authState
	producer producerState
	lp       lpState
	executor executorState
	creative creativeState

	recent []history.Entry
}

func newModel(client *api.Client, store *session.Store, journal *history.Journal, logger *zap.Logger) model {
	m := model{
		client:    client,
		store:     store,
		journal:   journal,
		logger:    logger,
		keys:      newKeyMap(),
		modalKeys: modalKeyMap{keyMap: newKeyMap()},
		auth:      newAuthState(),
		producer:  newProducerState(),
		lp:        newLPState(),
		executor:  newExecutorState(),
		creative:  newCreativeState(),
		view:      dispatch.ViewRequireReauth,
	}
	if u := store.Current(); u != nil {
		m.view = dispatch.Resolve(*u)
		m.status = fmt.Sprintf("Welcome back, %s.", u.Name)
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.view != dispatch.ViewRequireReauth {
		return recentCmd(m.journal)
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViews()
		return m, nil
	case historyLoadedMsg:
		if msg.err != nil {
			if m.logger != nil {
				m.logger.Warn("journal read failed", zap.Error(msg.err))
			}
			return m, nil
		}
		m.recent = msg.entries
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.view != dispatch.ViewRequireReauth {
				return m.logout()
			}
		}
	}

	switch m.view {
	case dispatch.ViewProducer:
		return m.updateProducer(msg)
	case dispatch.ViewLineProducer:
		return m.updateLineProducer(msg)
	case dispatch.ViewExecutor:
		return m.updateExecutor(msg)
	case dispatch.ViewCreative:
		return m.updateCreative(msg)
	default:
		return m.updateAuth(msg)
	}
}

// logout clears the session and drops every per-role view state, so a
// different user never inherits the previous user's panes.
func (m model) logout() (tea.Model, tea.Cmd) {
	m.store.Clear()
	m.view = dispatch.ViewRequireReauth
	m.auth = newAuthState()
	m.producer = newProducerState()
	m.lp = newLPState()
	m.executor = newExecutorState()
	m.creative = newCreativeState()
	m.recent = nil
	m.status = "Logged out."
	m.resizeViews()
	return m, nil
}

// completeLogin installs the user and redispatches to the role view.
func (m model) completeLogin(u session.User) (tea.Model, tea.Cmd) {
	if err := m.store.SetCurrent(u); err != nil {
		m.status = fmt.Sprintf("Session error: %v", err)
		return m, nil
	}
	m.view = dispatch.Resolve(u)
	m.status = fmt.Sprintf("Welcome, %s (%s).", u.Name, u.Role)
	m.resizeViews()
	return m, recentCmd(m.journal)
}

func (m *model) resizeViews() {
	m.lp.resize(m.width, m.height)
}

func (m model) View() string {
	var body string
	switch m.view {
	case dispatch.ViewProducer:
		body = m.viewProducer()
	case dispatch.ViewLineProducer:
		body = m.viewLineProducer()
	case dispatch.ViewExecutor:
		body = m.viewExecutor()
	case dispatch.ViewCreative:
		body = m.viewCreative()
	default:
		body = m.viewAuth()
	}

	body = m.renderHeader() + "\n\n" + body
	statusLine := m.renderStatus(m.status)
	footer := m.renderFooter(m.footerText())
	if m.view == dispatch.ViewLineProducer && m.lp.workflow.Phase() != quote.PhaseIdle {
		return m.composeModal(body, m.quoteModalView(), statusLine, footer)
	}
	return m.placeWithFooter(body, statusLine, footer)
}

func (m model) renderHeader() string {
	title := titleStyle.Render(appName)
	who := ""
	if u := m.store.Current(); u != nil {
		who = statusStyle.Render(fmt.Sprintf("%s · %s", u.Name, u.Role))
	}
	line := title
	if who != "" {
		gap := m.contentWidth() - lipgloss.Width(title) - lipgloss.Width(who)
		if gap < 2 {
			gap = 2
		}
		line = title + padRight("", gap) + who
	}
	return line
}

func (m model) footerText() string {
	switch m.view {
	case dispatch.ViewLineProducer:
		if m.lp.workflow.Phase() != quote.PhaseIdle {
			return renderHelp(m.modalKeys.ShortHelp())
		}
		return renderHelp([]key.Binding{m.keys.Analyze, m.keys.Vendors, m.keys.Tab, m.keys.Quote, m.keys.Logout, m.keys.Quit})
	case dispatch.ViewRequireReauth:
		return renderHelp([]key.Binding{m.keys.Tab, m.keys.Submit, m.keys.Switch, m.keys.Quit})
	}
	return renderHelp(m.keys.ShortHelp())
}

func (m model) renderSection(title, content string) string {
	header := titleStyle.Render(title)
	section := header + "\n" + listBoxStyle.Width(m.sectionWidth()).Render(content)
	if m.width == 0 {
		return section
	}
	return lipgloss.Place(m.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

func (m model) sectionWidth() int {
	if m.width == 0 {
		return 80
	}
	width := m.width - 4
	if width < 20 {
		width = m.width
	}
	return width
}

func (m model) contentWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

func (m model) sectionContentWidth() int {
	frameH := listBoxStyle.GetHorizontalFrameSize()
	contentWidth := m.sectionWidth() - frameH
	if contentWidth < 20 {
		contentWidth = 20
	}
	return contentWidth
}

func (m model) placeWithFooter(body, statusLine, footer string) string {
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	return main + "\n" + statusLine + "\n" + footer
}

func (m model) composeModal(base, modal, statusLine, footer string) string {
	baseView := m.placeWithFooter(base, statusLine, footer)
	if m.height == 0 || m.width == 0 {
		return baseView + "\n\n" + modalStyle.Render(modal)
	}
	boxed := modalStyle.Render(modal)
	lines := splitLines(boxed)
	modalWidth := maxLineWidth(lines)
	modalHeight := len(lines)

	targetHeight := m.height - 2
	if targetHeight < 1 {
		targetHeight = 1
	}
	x := (m.width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (targetHeight - modalHeight) / 2
	if y < 0 {
		y = 0
	}
	return overlayAt(baseView, boxed, x, y, m.width, targetHeight)
}

func (m model) renderFooter(text string) string {
	if m.width == 0 {
		return footerStyle.Render(text)
	}
	return footerStyle.Render(padRight(flatten(text), m.width))
}

func (m model) renderStatus(text string) string {
	if m.width == 0 {
		return statusBarStyle.Render(text)
	}
	return statusBarStyle.Render(padRight(flatten(text), m.width))
}

// renderRecent shows the local submission journal shared by the
// dashboard views.
func (m model) renderRecent() string {
	if len(m.recent) == 0 {
		return statusStyle.Render("No submissions recorded yet.")
	}
	width := m.sectionContentWidth()
	lines := make([]string, 0, len(m.recent))
	for _, e := range m.recent {
		line := fmt.Sprintf("%s  %-6s %s", e.CreatedAt.Format("2006-01-02 15:04"), e.Kind, e.Summary)
		lines = append(lines, truncate(line, width))
	}
	return joinLines(lines)
}
