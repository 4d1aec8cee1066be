package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shotweave/shotweave/internal/api"
)

// producerState backs the Producer/CEO risk-meter form.
type producerState struct {
	inputs   []textinput.Model
	focus    int
	busy     bool
	analysis *api.RiskAnalysis
}

const (
	riskFieldDaysBehind = 0
	riskFieldVariance   = 1
	riskFieldComplexity = 2
)

func newProducerState() producerState {
	days := textinput.New()
	days.Placeholder = "days behind schedule"
	days.CharLimit = 4
	variance := textinput.New()
	variance.Placeholder = "cost variance %"
	variance.CharLimit = 8
	complexity := textinput.New()
	complexity.Placeholder = "complexity score (0-100)"
	complexity.CharLimit = 3

	s := producerState{inputs: []textinput.Model{days, variance, complexity}}
	s.inputs[0].Focus()
	return s
}

func (s *producerState) setFocus(i int) {
	s.focus = i
	for idx := range s.inputs {
		if idx == i {
			s.inputs[idx].Focus()
		} else {
			s.inputs[idx].Blur()
		}
	}
}

func (m model) updateProducer(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case riskDoneMsg:
		m.producer.busy = false
		if msg.err != nil {
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		analysis := msg.analysis
		m.producer.analysis = &analysis
		m.status = "Risk analysis updated."
		return m, nil
	case tea.KeyMsg:
		if m.producer.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.producer.setFocus((m.producer.focus + 1) % len(m.producer.inputs))
			return m, nil
		case "shift+tab", "up":
			n := len(m.producer.inputs)
			m.producer.setFocus((m.producer.focus + n - 1) % n)
			return m, nil
		case "enter":
			return m.submitRisk()
		}
		var cmd tea.Cmd
		m.producer.inputs[m.producer.focus], cmd = m.producer.inputs[m.producer.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) submitRisk() (tea.Model, tea.Cmd) {
	daysBehind, err := strconv.Atoi(strings.TrimSpace(m.producer.inputs[riskFieldDaysBehind].Value()))
	if err != nil {
		m.status = "Days behind must be a whole number."
		return m, nil
	}
	variance, err := strconv.ParseFloat(strings.TrimSpace(m.producer.inputs[riskFieldVariance].Value()), 64)
	if err != nil {
		m.status = "Cost variance must be a number."
		return m, nil
	}
	complexity, err := strconv.Atoi(strings.TrimSpace(m.producer.inputs[riskFieldComplexity].Value()))
	if err != nil {
		m.status = "Complexity score must be a whole number."
		return m, nil
	}
	m.producer.busy = true
	m.status = "Running risk analysis..."
	return m, riskCmd(m.client, api.RiskInput{
		DaysBehind:      daysBehind,
		CostVariancePct: variance,
		ComplexityScore: complexity,
	})
}

func (m model) viewProducer() string {
	form := joinLines([]string{
		labelStyle.Render("Days behind schedule"), m.producer.inputs[riskFieldDaysBehind].View(),
		labelStyle.Render("Cost variance %"), m.producer.inputs[riskFieldVariance].View(),
		labelStyle.Render("Complexity score"), m.producer.inputs[riskFieldComplexity].View(),
	})

	verdict := statusStyle.Render("No analysis yet. Fill the form and press enter.")
	if a := m.producer.analysis; a != nil {
		verdict = joinLines([]string{
			fmt.Sprintf("Risk score   %d/100", a.RiskScore),
			"Status       " + riskStatusStyle(a.Status).Render(a.Status),
			"Suggestion   " + a.Suggestion,
		})
	}

	return m.renderSection("Project Risk Meter", form) + "\n\n" +
		m.renderSection("Verdict", verdict) + "\n\n" +
		m.renderSection("Recent Activity", m.renderRecent())
}
