package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shotweave/shotweave/internal/breakdown"
	"github.com/shotweave/shotweave/internal/catalog"
	"github.com/shotweave/shotweave/internal/quote"
)

type lpPane int

const (
	paneScript lpPane = iota
	paneVendors
)

// lpState backs the Line Producer view: script breakdown, the vendor
// catalog pane, and the quote modal driven by the workflow machine.
type lpState struct {
	pane      lpPane
	script    textarea.Model
	analyzing bool
	breakdown breakdown.Model

	catalog catalog.Catalog
	search  textinput.Model
	cursor  int

	workflow   quote.Workflow
	daysInput  textinput.Model
	reqInput   textinput.Model
	scaleIdx   int
	modalFocus int
}

const (
	modalFieldDays         = 0
	modalFieldScale        = 1
	modalFieldRequirements = 2
	modalFieldCount        = 3
)

func newLPState() lpState {
	script := textarea.New()
	script.Placeholder = "Paste script text, then ctrl+b to analyze..."
	script.SetHeight(6)
	script.Focus()

	search := textinput.New()
	search.Placeholder = "type to filter vendors"
	search.CharLimit = 64

	days := textinput.New()
	days.CharLimit = 4
	req := textinput.New()
	req.CharLimit = 200

	return lpState{
		script:    script,
		search:    search,
		daysInput: days,
		reqInput:  req,
	}
}

func (s *lpState) resize(width, height int) {
	if width == 0 {
		return
	}
	w := width - 10
	if w > 100 {
		w = 100
	}
	if w < 30 {
		w = 30
	}
	s.script.SetWidth(w)
}

func (m model) updateLineProducer(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case breakdownDoneMsg:
		m.lp.analyzing = false
		if msg.err != nil {
			// Previous result stays on screen next to the error.
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		m.lp.breakdown.Set(msg.result)
		m.status = fmt.Sprintf("Breakdown ready: %d scenes, ~%d shoot days.", msg.result.SceneCount, msg.result.EstimatedShootDays)
		return m, nil
	case vendorsDoneMsg:
		if msg.err != nil {
			m.lp.catalog.Fail(authFailureMessage(msg.err))
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		m.lp.catalog.Apply(msg.vendors)
		m.lp.cursor = 0
		m.status = fmt.Sprintf("Loaded %d vendors.", len(msg.vendors))
		return m, nil
	case quoteDoneMsg:
		m.lp.workflow.Complete(msg.err)
		if msg.err != nil {
			// Draft retained; the modal stays open for a retry.
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		if msg.message != "" {
			m.status = msg.message
		} else {
			m.status = "Quote request sent."
		}
		return m, recentCmd(m.journal)
	case tea.KeyMsg:
		if m.lp.workflow.Phase() != quote.PhaseIdle {
			return m.updateQuoteModal(msg)
		}
		switch msg.String() {
		case "tab":
			if m.lp.pane == paneScript {
				m.lp.pane = paneVendors
				m.lp.script.Blur()
				m.lp.search.Focus()
			} else {
				m.lp.pane = paneScript
				m.lp.search.Blur()
				m.lp.script.Focus()
			}
			return m, nil
		case "ctrl+b":
			return m.analyzeScript()
		case "ctrl+v":
			return m.loadVendors()
		}
		if m.lp.pane == paneScript {
			var cmd tea.Cmd
			m.lp.script, cmd = m.lp.script.Update(msg)
			return m, cmd
		}
		return m.updateVendorPane(msg)
	}
	return m, nil
}

func (m model) analyzeScript() (tea.Model, tea.Cmd) {
	if m.lp.analyzing {
		m.status = "Analysis already running."
		return m, nil
	}
	text := strings.TrimSpace(m.lp.script.Value())
	if text == "" {
		m.status = "Paste script text first."
		return m, nil
	}
	m.lp.analyzing = true
	m.status = "Analyzing script..."
	return m, breakdownCmd(m.client, text)
}

// loadVendors coalesces: while a load is outstanding no second request
// goes out, the pending one answers for both.
func (m model) loadVendors() (tea.Model, tea.Cmd) {
	if !m.lp.catalog.Begin() {
		m.status = "Vendor load already in flight."
		return m, nil
	}
	m.status = "Loading vendor ratings..."
	return m, vendorsCmd(m.client)
}

func (m model) updateVendorPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vendors := m.lp.catalog.Search(m.lp.search.Value())
	switch msg.String() {
	case "up":
		if m.lp.cursor > 0 {
			m.lp.cursor--
		}
		return m, nil
	case "down":
		if m.lp.cursor < len(vendors)-1 {
			m.lp.cursor++
		}
		return m, nil
	case "esc":
		m.lp.search.SetValue("")
		m.lp.cursor = 0
		return m, nil
	case "enter":
		return m.openQuoteModal(vendors)
	}
	var cmd tea.Cmd
	m.lp.search, cmd = m.lp.search.Update(msg)
	if m.lp.cursor >= len(m.lp.catalog.Search(m.lp.search.Value())) {
		m.lp.cursor = 0
	}
	return m, cmd
}

func (m model) openQuoteModal(vendors []catalog.Vendor) (tea.Model, tea.Cmd) {
	if len(vendors) == 0 {
		m.status = "No vendor selected."
		return m, nil
	}
	cursor := m.lp.cursor
	if cursor >= len(vendors) {
		cursor = len(vendors) - 1
	}
	var hint *breakdown.Hint
	if h, ok := m.lp.breakdown.Hint(); ok {
		hint = &h
	}
	if err := m.lp.workflow.OpenFor(vendors[cursor], hint); err != nil {
		m.status = err.Error()
		return m, nil
	}
	d, _ := m.lp.workflow.Draft()
	m.lp.daysInput.SetValue(strconv.Itoa(d.Days))
	m.lp.reqInput.SetValue(d.Requirements)
	m.lp.scaleIdx = scaleIndex(d.Scale)
	m.lp.modalFocus = modalFieldDays
	m.lp.daysInput.Focus()
	m.lp.reqInput.Blur()
	m.status = fmt.Sprintf("Quote request for %s.", d.Vendor.Name)
	return m, nil
}

func scaleIndex(s quote.Scale) int {
	for i, sc := range quote.Scales() {
		if sc == s {
			return i
		}
	}
	return 0
}

func (m model) updateQuoteModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sending := m.lp.workflow.Phase() == quote.PhaseSending
	switch msg.String() {
	case "esc":
		if err := m.lp.workflow.Cancel(); err != nil {
			m.status = "Submission in flight; wait for it to finish."
			return m, nil
		}
		m.status = "Quote request cancelled."
		return m, nil
	case "tab":
		m.lp.setModalFocus((m.lp.modalFocus + 1) % modalFieldCount)
		return m, nil
	case "shift+tab":
		m.lp.setModalFocus((m.lp.modalFocus + modalFieldCount - 1) % modalFieldCount)
		return m, nil
	case "up", "left":
		if m.lp.modalFocus == modalFieldScale {
			n := len(quote.Scales())
			m.lp.scaleIdx = (m.lp.scaleIdx + n - 1) % n
			return m, nil
		}
	case "down", "right":
		if m.lp.modalFocus == modalFieldScale {
			m.lp.scaleIdx = (m.lp.scaleIdx + 1) % len(quote.Scales())
			return m, nil
		}
	case "enter":
		return m.submitQuote()
	}
	if sending {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.lp.modalFocus {
	case modalFieldDays:
		m.lp.daysInput, cmd = m.lp.daysInput.Update(msg)
	case modalFieldRequirements:
		m.lp.reqInput, cmd = m.lp.reqInput.Update(msg)
	}
	return m, cmd
}

func (s *lpState) setModalFocus(i int) {
	s.modalFocus = i
	s.daysInput.Blur()
	s.reqInput.Blur()
	switch i {
	case modalFieldDays:
		s.daysInput.Focus()
	case modalFieldRequirements:
		s.reqInput.Focus()
	}
}

func (m model) submitQuote() (tea.Model, tea.Cmd) {
	if m.lp.workflow.Phase() == quote.PhaseSending {
		m.status = "Submission already in flight."
		return m, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(m.lp.daysInput.Value()))
	if err != nil {
		m.status = "Days must be a whole number of at least 1."
		return m, nil
	}
	if err := m.lp.workflow.SetDays(days); err != nil {
		m.status = "Days must be at least 1."
		return m, nil
	}
	if err := m.lp.workflow.SetScale(quote.Scales()[m.lp.scaleIdx]); err != nil {
		m.status = err.Error()
		return m, nil
	}
	if err := m.lp.workflow.SetRequirements(strings.TrimSpace(m.lp.reqInput.Value())); err != nil {
		m.status = err.Error()
		return m, nil
	}
	sub, err := m.lp.workflow.BeginSubmit()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("Sending quote request to %s...", sub.VendorName)
	return m, submitQuoteCmd(m.client, m.journal, m.logger, sub)
}

func (m model) viewLineProducer() string {
	return m.renderSection(m.paneTitle("Script Breakdown", paneScript), m.renderBreakdownPane()) + "\n\n" +
		m.renderSection(m.paneTitle("Vendor Ratings (LVR)", paneVendors), m.renderVendorPane())
}

func (m model) paneTitle(title string, pane lpPane) string {
	if m.lp.pane == pane && m.lp.workflow.Phase() == quote.PhaseIdle {
		return title + " ●"
	}
	return title
}

func (m model) renderBreakdownPane() string {
	lines := []string{m.lp.script.View(), ""}
	if m.lp.analyzing {
		lines = append(lines, statusStyle.Render("Analyzing script..."))
		return joinLines(lines)
	}
	r := m.lp.breakdown.Result()
	if r == nil {
		lines = append(lines, statusStyle.Render("No breakdown yet. ctrl+b analyzes the pasted script."))
		return joinLines(lines)
	}
	width := m.sectionContentWidth()
	lines = append(lines,
		fmt.Sprintf("Estimated shoot days  %d", r.EstimatedShootDays),
		fmt.Sprintf("Scenes                %d", r.SceneCount),
		fmt.Sprintf("Complexity score      %d/100", r.ComplexityScore),
		truncate(fmt.Sprintf("Locations (%d)         %s", r.LocationCount, strings.Join(r.Locations, ", ")), width),
		truncate(fmt.Sprintf("Characters (%d)        %s", r.CharacterCount, strings.Join(r.Characters, ", ")), width),
	)
	return joinLines(lines)
}

func (m model) renderVendorPane() string {
	lines := []string{m.lp.search.View(), ""}
	if m.lp.catalog.Loading() && !m.lp.catalog.HasData() {
		lines = append(lines, statusStyle.Render("Loading vendor ratings..."))
		return joinLines(lines)
	}
	if !m.lp.catalog.HasData() {
		hint := "No vendor data. ctrl+v loads the rating list."
		if m.lp.catalog.Err() != "" {
			hint = m.lp.catalog.Err()
		}
		lines = append(lines, statusStyle.Render(hint))
		return joinLines(lines)
	}
	if m.lp.catalog.Err() != "" {
		lines = append(lines, errorStyle.Render(truncate("Last load failed: "+m.lp.catalog.Err(), m.sectionContentWidth())))
	}
	lines = append(lines, m.renderVendorTable(m.lp.catalog.Search(m.lp.search.Value())))
	return joinLines(lines)
}

func (m model) renderVendorTable(vendors []catalog.Vendor) string {
	if len(vendors) == 0 {
		return statusStyle.Render("No vendors match the filter.")
	}
	width := m.sectionContentWidth()
	nameWidth := 26
	typeWidth := 14
	scoreWidth := 5
	relWidth := 8
	contactWidth := width - nameWidth - typeWidth - scoreWidth - relWidth - 10
	if contactWidth < 8 {
		contactWidth = 8
	}

	header := fmt.Sprintf("  %-*s  %-*s  %*s  %-*s  %-*s",
		nameWidth, "Name", typeWidth, "Type", scoreWidth, "LVR", relWidth, "Relia.", contactWidth, "Contact")
	lines := []string{header}
	for i, v := range vendors {
		prefix := "  "
		if i == m.lp.cursor && m.lp.pane == paneVendors {
			prefix = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%-*s  %-*s  %*.0f  %-*s  %-*s",
			nameWidth, truncate(v.Name, nameWidth),
			typeWidth, truncate(v.Type, typeWidth),
			scoreWidth, v.LVRScore,
			relWidth, truncate(v.Reliability, relWidth),
			contactWidth, truncate(v.Contact, contactWidth))
		lines = append(lines, prefix+line)
	}
	return joinLines(lines)
}

func (m model) quoteModalView() string {
	d, ok := m.lp.workflow.Draft()
	if !ok {
		return ""
	}
	scaleParts := make([]string, len(quote.Scales()))
	for i, s := range quote.Scales() {
		label := string(s)
		if i == m.lp.scaleIdx {
			label = "[" + label + "]"
			if m.lp.modalFocus == modalFieldScale {
				label = cursorStyle.Render(label)
			}
		}
		scaleParts[i] = label
	}

	lines := []string{
		titleStyle.Render("Quote Request"),
		"",
		labelStyle.Render("Vendor   ") + d.Vendor.Name,
		labelStyle.Render("Contact  ") + d.Vendor.Contact,
		"",
		labelStyle.Render("Days"), m.lp.daysInput.View(),
		labelStyle.Render("Scale"), strings.Join(scaleParts, "  "),
		labelStyle.Render("Requirements"), m.lp.reqInput.View(),
	}
	if m.lp.workflow.Phase() == quote.PhaseSending {
		lines = append(lines, "", warnStyle.Render("Sending..."))
	}
	return joinLines(lines)
}
