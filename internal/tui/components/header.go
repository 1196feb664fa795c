package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/tui/styles"
)

// HeaderData contains the data to display in the header.
type HeaderData struct {
	Title string
	File  string
	Shown int
	Total int
}

// Header shows the title, the current file and the row counts.
type Header struct {
	data  HeaderData
	width int
}

// NewHeader creates a new Header component.
func NewHeader() *Header {
	return &Header{
		data: HeaderData{Title: "ROSTER"},
	}
}

// SetData updates the header data.
func (h *Header) SetData(data HeaderData) {
	if data.Title == "" {
		data.Title = h.data.Title
	}
	h.data = data
}

// SetFile sets the file name shown in the header.
func (h *Header) SetFile(path string) {
	h.data.File = path
}

// SetCounts sets the number of displayed and stored persons.
func (h *Header) SetCounts(shown, total int) {
	h.data.Shown = shown
	h.data.Total = total
}

// SetWidth sets the width for the header.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	sep := lipgloss.NewStyle().
		Foreground(styles.MutedLight).
		Render(" │ ")

	content := styles.TitleStyle.Render(h.data.Title)
	if h.data.File != "" {
		content += sep + styles.HeaderLabelStyle.Render("File: ") + styles.HeaderValueStyle.Render(h.data.File)
	}

	count := fmt.Sprintf("%d", h.data.Total)
	if h.data.Shown != h.data.Total {
		count = fmt.Sprintf("%d of %d", h.data.Shown, h.data.Total)
	}
	content += sep + styles.HeaderLabelStyle.Render("Persons: ") + styles.HeaderValueStyle.Render(count)

	headerStyle := lipgloss.NewStyle().
		Background(styles.Background).
		Foreground(styles.Foreground).
		Padding(0, 1)
	if h.width > 0 {
		headerStyle = headerStyle.Width(h.width)
	}
	return headerStyle.Render(content)
}
