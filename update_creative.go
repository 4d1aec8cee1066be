package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Pipeline statuses a VFX asset moves through, in board order.
var assetStatuses = []string{"TODO", "IN_PROGRESS", "READY_FOR_REVIEW", "COMPLETE"}

// creativeState backs the VFX Supervisor asset-status form. Focus 0 is
// the asset id input, focus 1 the status row.
type creativeState struct {
	assetID   textinput.Model
	focus     int
	statusIdx int
	busy      bool
}

func newCreativeState() creativeState {
	id := textinput.New()
	id.Placeholder = "asset id (e.g. shot-12c)"
	id.CharLimit = 64
	id.Focus()
	return creativeState{assetID: id}
}

func (m model) updateCreative(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assetDoneMsg:
		m.creative.busy = false
		if msg.err != nil {
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		if msg.message != "" {
			m.status = msg.message
		} else {
			m.status = "Asset status updated."
		}
		m.creative = newCreativeState()
		return m, recentCmd(m.journal)
	case tea.KeyMsg:
		if m.creative.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab":
			if m.creative.focus == 0 {
				m.creative.focus = 1
				m.creative.assetID.Blur()
			} else {
				m.creative.focus = 0
				m.creative.assetID.Focus()
			}
			return m, nil
		case "up", "left":
			if m.creative.focus == 1 {
				n := len(assetStatuses)
				m.creative.statusIdx = (m.creative.statusIdx + n - 1) % n
				return m, nil
			}
		case "down", "right":
			if m.creative.focus == 1 {
				m.creative.statusIdx = (m.creative.statusIdx + 1) % len(assetStatuses)
				return m, nil
			}
		case "enter":
			return m.submitAsset()
		}
		if m.creative.focus == 0 {
			var cmd tea.Cmd
			m.creative.assetID, cmd = m.creative.assetID.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m model) submitAsset() (tea.Model, tea.Cmd) {
	assetID := strings.TrimSpace(m.creative.assetID.Value())
	if assetID == "" {
		m.status = "Asset id is required."
		return m, nil
	}
	newStatus := assetStatuses[m.creative.statusIdx]
	m.creative.busy = true
	m.status = "Updating asset status..."
	return m, assetCmd(m.client, m.journal, m.logger, assetID, newStatus)
}

func (m model) viewCreative() string {
	statusParts := make([]string, len(assetStatuses))
	for i, s := range assetStatuses {
		label := s
		if i == m.creative.statusIdx {
			label = "[" + label + "]"
			if m.creative.focus == 1 {
				label = cursorStyle.Render(label)
			}
		}
		statusParts[i] = label
	}

	form := joinLines([]string{
		labelStyle.Render("Asset ID"), m.creative.assetID.View(),
		labelStyle.Render("New status"), strings.Join(statusParts, "  "),
	})
	return m.renderSection("VFX Asset Status", form) + "\n\n" +
		m.renderSection("Recent Activity", m.renderRecent())
}
