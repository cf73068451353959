package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"weekender/demo/client"
)

// checkHealth creates a command that probes the server.
func checkHealth(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		return HealthCheckMsg{Err: c.Health(context.Background())}
	}
}

// resolveDates creates a command that resolves the weekend alias.
func resolveDates(c *client.Client, weekend string) tea.Cmd {
	return func() tea.Msg {
		start, end, err := c.WeekendDates(context.Background(), weekend)
		return DatesResolvedMsg{StartDate: start, EndDate: end, Err: err}
	}
}

// runSearch creates a command that runs the full search.
func runSearch(c *client.Client, city, weekend string) tea.Cmd {
	return func() tea.Msg {
		result, err := c.Search(context.Background(), client.SearchRequest{
			City:    city,
			Weekend: weekend,
		})
		return SearchCompleteMsg{Result: result, Err: err}
	}
}
