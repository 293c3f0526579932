package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

const defaultWidth = 80

// View implements tea.Model
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Reading list"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(styles.DimStyle.Render("Loading..."))
	case len(m.books) == 0:
		b.WriteString(styles.DimStyle.Render("The reading list is empty."))
	default:
		for i, book := range m.books {
			b.WriteString(m.renderRow(i, book, width-4))
			b.WriteString("\n")
		}
	}

	body := styles.ListStyle.Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.renderFooter(),
		m.help.View(m.keys),
	)
}

// renderRow renders one book: cursor marker, selection number, title and pages
func (m Model) renderRow(i int, book domain.Book, width int) string {
	marker := " "
	var markerColor *lipgloss.Color
	if i+1 == m.position {
		marker = styles.CursorChar
		markerColor = &styles.Amber
	}

	pages := fmt.Sprintf("%4dp", book.Length)
	prefix := fmt.Sprintf(" %2d. ", i+1)
	titleWidth := width - lipgloss.Width(marker) - len(prefix) - len(pages) - 3

	dim := styles.DimGray
	parts := []styles.RowPart{
		{Text: marker, Foreground: markerColor},
		{Text: prefix, Foreground: &dim},
		{Text: styles.Truncate(book.String(), titleWidth)},
		{Text: "  " + pages, Foreground: &dim},
	}
	return styles.RenderListRow(parts, i == m.selected, width)
}

// renderFooter shows the page total, then any error or status line
func (m Model) renderFooter() string {
	line := fmt.Sprintf("%d %s, %d pages", len(m.books), plural(len(m.books), "book"), m.totalPages)
	if len(m.books) > 0 {
		line += fmt.Sprintf(" · selection %d", m.position)
	}
	footer := styles.SubtitleStyle.Render(line)

	switch {
	case m.err != nil:
		footer += "\n" + styles.ErrorStyle.Render(m.err.Error())
	case m.status != "":
		footer += "\n" + m.status
	}
	return styles.FooterStyle.Render(footer)
}
