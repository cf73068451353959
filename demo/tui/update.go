package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case HealthCheckMsg:
		m.Connected = msg.Err == nil
		return m, nil
	case DatesResolvedMsg:
		if msg.Err == nil {
			m.StartDate = msg.StartDate
			m.EndDate = msg.EndDate
		}
		return m, nil
	case SearchCompleteMsg:
		return m.handleSearchComplete(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "q":
		// Plain q quits except while typing a city name containing it.
		if m.State != StateIdle {
			return m, tea.Quit
		}

	case "tab":
		if m.State == StateIdle || m.State == StateComplete {
			m.WeekendIdx = (m.WeekendIdx + 1) % len(weekends)
			return m, resolveDates(m.Client, m.Weekend())
		}
		return m, nil

	case "enter":
		if (m.State == StateIdle || m.State == StateComplete || m.State == StateError) && m.City != "" {
			m.State = StateSearching
			m.Result = nil
			m.Err = nil
			return m, runSearch(m.Client, m.City, m.Weekend())
		}
		return m, nil

	case "backspace":
		if m.State == StateIdle && len(m.City) > 0 {
			m.City = m.City[:len(m.City)-1]
		}
		return m, nil
	}

	if m.State == StateIdle && len(msg.Runes) > 0 {
		m.City += string(msg.Runes)
	}
	return m, nil
}

// handleSearchComplete processes search completion
func (m Model) handleSearchComplete(msg SearchCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Result = msg.Result
	m.State = StateComplete
	return m, nil
}
