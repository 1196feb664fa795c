package components

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/roster/internal/csvfile"
	"github.com/wexinc/roster/internal/tui/styles"
)

// PathPurpose says what the entered path will be used for.
type PathPurpose int

const (
	// PathImport reads persons from an existing file.
	PathImport PathPurpose = iota
	// PathExport writes the displayed rows to a file.
	PathExport
)

// String returns the purpose as a verb.
func (p PathPurpose) String() string {
	if p == PathExport {
		return "export"
	}
	return "import"
}

// PathSubmittedMsg is sent when the user accepts a path.
type PathSubmittedMsg struct {
	Purpose PathPurpose
	Path    string
	// Exists is set when an export target is already present.
	Exists bool
}

// PathCanceledMsg is sent when the user dismisses the prompt.
type PathCanceledMsg struct{}

// PathPrompt asks for a CSV file path for import or export. For imports it
// checks the file as the user types and previews what would be read.
type PathPrompt struct {
	input   textinput.Model
	purpose PathPurpose
	visible bool
	baseDir string
	width   int

	exists  bool
	problem string
	preview *csvfile.ImportResult
}

// NewPathPrompt creates a hidden prompt. Relative paths are resolved
// against baseDir; an empty baseDir means the working directory.
func NewPathPrompt(baseDir string) *PathPrompt {
	ti := textinput.New()
	ti.Placeholder = "roster.csv"
	ti.CharLimit = 512
	ti.Width = 50

	return &PathPrompt{
		input:   ti,
		baseDir: baseDir,
		width:   64,
	}
}

// SetWidth sets the component width.
func (f *PathPrompt) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 8
}

// Show opens the prompt for purpose, prefilled with initial.
func (f *PathPrompt) Show(purpose PathPurpose, initial string) tea.Cmd {
	f.purpose = purpose
	f.visible = true
	f.input.SetValue(initial)
	f.input.CursorEnd()
	f.validate()
	return f.input.Focus()
}

// Hide closes the prompt.
func (f *PathPrompt) Hide() {
	f.visible = false
	f.input.Blur()
}

// IsVisible returns whether the prompt is open.
func (f *PathPrompt) IsVisible() bool {
	return f.visible
}

// Purpose returns what the prompt was opened for.
func (f *PathPrompt) Purpose() PathPurpose {
	return f.purpose
}

// Value returns the entered path as typed.
func (f *PathPrompt) Value() string {
	return strings.TrimSpace(f.input.Value())
}

// SetValue replaces the entered path.
func (f *PathPrompt) SetValue(value string) {
	f.input.SetValue(value)
	f.validate()
}

// Resolved returns the entered path made absolute against the base directory.
func (f *PathPrompt) Resolved() string {
	path := f.Value()
	if path == "" || filepath.IsAbs(path) || f.baseDir == "" {
		return path
	}
	return filepath.Join(f.baseDir, path)
}

// Problem returns why the current path cannot be used, if it cannot.
func (f *PathPrompt) Problem() string {
	return f.problem
}

// Preview returns the dry-run result for an import path.
func (f *PathPrompt) Preview() *csvfile.ImportResult {
	return f.preview
}

func (f *PathPrompt) validate() {
	f.exists = false
	f.problem = ""
	f.preview = nil

	path := f.Resolved()
	if path == "" {
		f.problem = "Enter a file path"
		return
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		f.problem = "Path is a directory, not a file"
		return
	case err == nil:
		f.exists = true
	case f.purpose == PathImport:
		f.problem = "File not found"
		return
	}

	if f.purpose == PathExport {
		dir := filepath.Dir(path)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			f.problem = "Directory does not exist: " + dir
		}
		return
	}

	file, err := os.Open(path)
	if err != nil {
		f.problem = err.Error()
		return
	}
	defer file.Close()

	result, err := csvfile.Check(file)
	if err != nil {
		f.problem = err.Error()
		return
	}
	f.preview = result
}

// Update handles messages for the component.
func (f *PathPrompt) Update(msg tea.Msg) tea.Cmd {
	if !f.visible {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if f.problem != "" {
				return nil
			}
			submitted := PathSubmittedMsg{Purpose: f.purpose, Path: f.Resolved(), Exists: f.exists}
			f.Hide()
			return func() tea.Msg {
				return submitted
			}
		case "esc":
			f.Hide()
			return func() tea.Msg {
				return PathCanceledMsg{}
			}
		}
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.validate()
	}
	return cmd
}

// View renders the component.
func (f *PathPrompt) View() string {
	if !f.visible {
		return ""
	}

	var b strings.Builder

	title := "Import from CSV"
	subtitle := "Persons already in the roster are skipped."
	if f.purpose == PathExport {
		title = "Export to CSV"
		subtitle = "The rows currently displayed are written, in display order."
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedTextStyle.Render(subtitle))
	b.WriteString("\n\n")

	b.WriteString(f.input.View())
	b.WriteString("\n\n")

	switch {
	case f.problem != "":
		b.WriteString(styles.ErrorTextStyle.Render("⚠ " + f.problem))
	case f.preview != nil:
		line := fmt.Sprintf("✓ %d lines, %d readable", f.preview.Lines, f.preview.Accepted)
		if n := len(f.preview.Problems); n > 0 {
			b.WriteString(styles.WarningTextStyle.Render(fmt.Sprintf("%s, %d with problems", line, n)))
		} else {
			b.WriteString(styles.SuccessTextStyle.Render(line))
		}
	case f.exists:
		b.WriteString(styles.WarningTextStyle.Render("⚠ File exists and will be replaced"))
	default:
		b.WriteString(styles.SuccessTextStyle.Render("✓ New file"))
	}
	b.WriteString("\n\n")
	b.WriteString(NewShortcutBar(PathPromptShortcuts...).View())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary).
		Padding(1, 2).
		Width(f.width).
		Render(b.String())
}
