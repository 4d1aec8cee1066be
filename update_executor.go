package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shotweave/shotweave/internal/api"
)

// executorState backs the 1st AD / Unit Manager daily progress report.
type executorState struct {
	inputs []textinput.Model
	focus  int
	busy   bool
}

const (
	dprFieldScenes = 0
	dprFieldSpend  = 1
	dprFieldDelay  = 2
	dprFieldNotes  = 3
)

func newExecutorState() executorState {
	scenes := textinput.New()
	scenes.Placeholder = "scenes shot today"
	scenes.CharLimit = 3
	spend := textinput.New()
	spend.Placeholder = "daily spend"
	spend.CharLimit = 12
	delay := textinput.New()
	delay.Placeholder = "delay minutes"
	delay.CharLimit = 4
	notes := textinput.New()
	notes.Placeholder = "notes"
	notes.CharLimit = 200

	s := executorState{inputs: []textinput.Model{scenes, spend, delay, notes}}
	s.inputs[0].Focus()
	return s
}

func (s *executorState) setFocus(i int) {
	s.focus = i
	for idx := range s.inputs {
		if idx == i {
			s.inputs[idx].Focus()
		} else {
			s.inputs[idx].Blur()
		}
	}
}

func (m model) updateExecutor(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dprDoneMsg:
		m.executor.busy = false
		if msg.err != nil {
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		m.executor = newExecutorState()
		if msg.message != "" {
			m.status = msg.message
		} else {
			m.status = "Daily progress report submitted."
		}
		return m, recentCmd(m.journal)
	case tea.KeyMsg:
		if m.executor.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.executor.setFocus((m.executor.focus + 1) % len(m.executor.inputs))
			return m, nil
		case "shift+tab", "up":
			n := len(m.executor.inputs)
			m.executor.setFocus((m.executor.focus + n - 1) % n)
			return m, nil
		case "enter":
			return m.submitDPR()
		}
		var cmd tea.Cmd
		m.executor.inputs[m.executor.focus], cmd = m.executor.inputs[m.executor.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) submitDPR() (tea.Model, tea.Cmd) {
	scenes, err := strconv.Atoi(strings.TrimSpace(m.executor.inputs[dprFieldScenes].Value()))
	if err != nil || scenes < 0 {
		m.status = "Scenes shot must be a whole number."
		return m, nil
	}
	spend, err := strconv.ParseFloat(strings.TrimSpace(m.executor.inputs[dprFieldSpend].Value()), 64)
	if err != nil || spend < 0 {
		m.status = "Daily spend must be a number."
		return m, nil
	}
	delay, err := strconv.Atoi(strings.TrimSpace(m.executor.inputs[dprFieldDelay].Value()))
	if err != nil || delay < 0 {
		m.status = "Delay minutes must be a whole number."
		return m, nil
	}
	m.executor.busy = true
	m.status = "Submitting daily progress report..."
	return m, dprCmd(m.client, m.journal, m.logger, api.DPRReport{
		ScenesShot:   scenes,
		DailySpend:   spend,
		DelayMinutes: delay,
		Notes:        strings.TrimSpace(m.executor.inputs[dprFieldNotes].Value()),
	})
}

func (m model) viewExecutor() string {
	form := joinLines([]string{
		labelStyle.Render("Scenes shot"), m.executor.inputs[dprFieldScenes].View(),
		labelStyle.Render("Daily spend"), m.executor.inputs[dprFieldSpend].View(),
		labelStyle.Render("Delay minutes"), m.executor.inputs[dprFieldDelay].View(),
		labelStyle.Render("Notes"), m.executor.inputs[dprFieldNotes].View(),
	})
	return m.renderSection("Daily Progress Report", form) + "\n\n" +
		m.renderSection("Recent Activity", m.renderRecent())
}
