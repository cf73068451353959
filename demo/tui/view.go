package tui

import (
	"fmt"
	"strings"

	"weekender/types"
)

// maxRowsPerCategory keeps the terminal output scannable.
const maxRowsPerCategory = 5

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Weekender Demo"))
	b.WriteString("\n\n")

	if !m.Connected {
		b.WriteString(ErrorStyle.Render("Not connected to the weekender server"))
		b.WriteString("\n\n")
	}

	dates := ""
	if m.StartDate != "" {
		dates = fmt.Sprintf(" (%s to %s)", m.StartDate, m.EndDate)
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("City: %s | Weekend: %s%s", m.City, m.Weekend(), dates)))
	b.WriteString("\n\n")

	switch m.State {
	case StateIdle:
		b.WriteString(HighlightStyle.Render("Ready to search"))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Type to edit city | Tab to change weekend | Enter to search | Esc to quit"))
	case StateSearching:
		b.WriteString(StatusStyle.Render(fmt.Sprintf("Searching %s, this can take a minute on a cold cache...", m.City)))
	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Search failed: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Enter to retry | q to quit"))
	case StateComplete:
		b.WriteString(m.renderResult())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Enter to search again | Tab to change weekend | q to quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) renderResult() string {
	var b strings.Builder

	b.WriteString(renderCategory("Concerts", m.Result.Concerts, formatDated))
	b.WriteString(renderCategory("Dining", m.Result.Dining, formatPlace))
	b.WriteString(renderCategory("Events", m.Result.Events, formatDated))
	b.WriteString(renderCategory("Attractions", m.Result.Locations, formatPlace))

	if len(m.Result.Errors) > 0 {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("%d source(s) had problems:", len(m.Result.Errors))))
		b.WriteString("\n")
		for _, e := range m.Result.Errors {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("  %s: %s", e.Source, e.Class)))
			b.WriteString("\n")
		}
	}
	return BoxStyle.Render(b.String())
}

func renderCategory(title string, records []types.Record, format func(types.Record) string) string {
	var b strings.Builder
	b.WriteString(CategoryStyle.Render(fmt.Sprintf("%s (%d)", title, len(records))))
	b.WriteString("\n")

	if len(records) == 0 {
		b.WriteString(InfoStyle.Render("  nothing found"))
		b.WriteString("\n\n")
		return b.String()
	}

	shown := records
	if len(shown) > maxRowsPerCategory {
		shown = shown[:maxRowsPerCategory]
	}
	for _, r := range shown {
		b.WriteString("  " + format(r))
		b.WriteString("\n")
	}
	if len(records) > maxRowsPerCategory {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  ...and %d more", len(records)-maxRowsPerCategory)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func formatDated(r types.Record) string {
	parts := []string{r.Name}
	if r.Venue != "" {
		parts = append(parts, "@ "+r.Venue)
	}
	if r.Date != "" {
		parts = append(parts, r.Date)
	}
	if r.PriceRange != "" {
		parts = append(parts, r.PriceRange)
	}
	return strings.Join(parts, "  ")
}

func formatPlace(r types.Record) string {
	parts := []string{r.Name}
	if r.Rating > 0 {
		parts = append(parts, fmt.Sprintf("%.1f stars", r.Rating))
	}
	if r.PriceLevel != "" {
		parts = append(parts, r.PriceLevel)
	}
	if r.Neighborhood != "" {
		parts = append(parts, r.Neighborhood)
	}
	return strings.Join(parts, "  ")
}
