package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mkurosawa/aidesk/internal/search"
)

// each result takes two terminal rows in the list
const linesPerItem = 2

// renderList renders the left panel: result list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No results")
		return empty
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatResultLine(r, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatResultLine lays one result out as a summary row followed by a
// dimmed snippet row.
func formatResultLine(r search.Result, width int, selected bool) []string {
	var src string
	switch r.Source {
	case "claude":
		src = styleSourceClaude.Render("claude")
	case "codex":
		src = styleSourceCodex.Render("codex")
	default:
		src = r.Source
	}

	date := r.UpdatedAt
	if len(date) > 10 {
		date = date[:10]
	}

	marker := "  "
	if selected {
		marker = "> "
	}

	summary := strings.ReplaceAll(r.Summary, "\n", " ")
	head := marker + src + " " + date + " "
	headW := runewidth.StringWidth(marker+r.Source) + 1 + runewidth.StringWidth(date) + 1
	summary = runewidth.Truncate(summary, max(0, width-headW), "…")

	line1 := head + summary
	if selected {
		line1 = head + styleListSelected.Render(summary)
	} else {
		line1 = head + styleListNormal.Render(summary)
	}

	snippet := strings.ReplaceAll(r.Snippet, "\n", " ")
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	snippet = strings.ReplaceAll(snippet, "<<<", "")
	snippet = runewidth.Truncate(snippet, max(0, width-4), "…")
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(snippet)

	return []string{line1, line2}
}
