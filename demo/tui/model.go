package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"weekender/demo/client"
	"weekender/types"
)

// State represents the application state machine
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateComplete  State = "complete"
	StateError     State = "error"
)

// weekends the user can cycle through with tab.
var weekends = []string{"this", "next", "two-weeks"}

// Model represents the TUI state.
type Model struct {
	Client *client.Client

	State      State
	City       string
	WeekendIdx int
	StartDate  string
	EndDate    string

	Result *types.SearchResult
	Err    error

	Connected bool
}

// NewModel creates a TUI model pointed at the given server.
func NewModel(serverURL string) Model {
	return Model{
		Client: client.NewClient(serverURL),
		State:  StateIdle,
		City:   "Austin",
	}
}

// Weekend returns the currently selected weekend alias.
func (m Model) Weekend() string {
	return weekends[m.WeekendIdx%len(weekends)]
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		checkHealth(m.Client),
		resolveDates(m.Client, m.Weekend()),
	)
}
